// internal/adapters/out/rawg/client.go
package rawg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gamestore/internal/domain/catalog"
)

const DefaultBaseURL = "https://api.rawg.io/api"

// Client implements catalog.Source against the RAWG games API.
// Responses are normalized at this boundary (catalog.Normalize) and a
// derived store price is attached; nothing downstream re-trusts the
// external shape.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	b := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if b == "" {
		b = DefaultBaseURL
	}
	return &Client{
		baseURL: b,
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// List returns one page of games ordered by ordering.
func (c *Client) List(ctx context.Context, page, pageSize int, ordering string) (*catalog.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("ordering", ordering)
	return c.fetchPage(ctx, q)
}

// Search returns one page of games matching query.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (*catalog.Page, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	return c.fetchPage(ctx, q)
}

func (c *Client) fetchPage(ctx context.Context, q url.Values) (*catalog.Page, error) {
	var body pageJSON
	if err := c.get(ctx, "/games", q, &body); err != nil {
		return nil, err
	}

	page := &catalog.Page{
		Count:    body.Count,
		Next:     body.Next,
		Previous: body.Previous,
	}
	for _, gj := range body.Results {
		g, err := catalog.Normalize(gj.toDomain())
		if err != nil {
			// skip malformed entries instead of failing the page
			continue
		}
		page.Results = append(page.Results, g)
	}
	return page, nil
}

// BySlug returns the full details for one game.
func (c *Client) BySlug(ctx context.Context, slug string) (*catalog.GameDetails, error) {
	s := strings.TrimSpace(slug)
	if s == "" {
		return nil, errors.New("rawg: slug is empty")
	}

	var body detailsJSON
	if err := c.get(ctx, "/games/"+url.PathEscape(s), nil, &body); err != nil {
		return nil, err
	}

	g, err := catalog.Normalize(body.gameJSON.toDomain())
	if err != nil {
		return nil, fmt.Errorf("rawg: game %s: %w", s, err)
	}

	d := &catalog.GameDetails{
		Game:        g,
		Description: strings.TrimSpace(body.DescriptionRaw),
		Website:     strings.TrimSpace(body.Website),
	}
	for _, v := range body.Developers {
		d.Developers = append(d.Developers, v.Name)
	}
	for _, v := range body.Publishers {
		d.Publishers = append(d.Publishers, v.Name)
	}
	for _, v := range body.Tags {
		d.Tags = append(d.Tags, v.Name)
	}
	for _, v := range body.Stores {
		d.Stores = append(d.Stores, v.Store.Name)
	}
	if body.ESRBRating != nil {
		d.ESRBRating = body.ESRBRating.Name
	}
	return d, nil
}

// Screenshots returns the screenshot set for one game.
func (c *Client) Screenshots(ctx context.Context, slug string) ([]catalog.Screenshot, error) {
	s := strings.TrimSpace(slug)
	if s == "" {
		return nil, errors.New("rawg: slug is empty")
	}

	var body struct {
		Results []struct {
			ID    int64  `json:"id"`
			Image string `json:"image"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/games/"+url.PathEscape(s)+"/screenshots", nil, &body); err != nil {
		return nil, err
	}

	out := make([]catalog.Screenshot, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, catalog.Screenshot{ID: r.ID, Image: r.Image})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, into any) error {
	if c == nil || c.http == nil {
		return errors.New("rawg: client is nil")
	}

	if q == nil {
		q = url.Values{}
	}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	u := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("rawg: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rawg: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rawg: GET %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("rawg: decode %s: %w", path, err)
	}
	return nil
}

// -----------------------------------------
// Wire shapes (RAWG JSON)
// -----------------------------------------

type pageJSON struct {
	Count    int        `json:"count"`
	Next     string     `json:"next"`
	Previous string     `json:"previous"`
	Results  []gameJSON `json:"results"`
}

type named struct {
	Name string `json:"name"`
}

type gameJSON struct {
	ID              int64   `json:"id"`
	Slug            string  `json:"slug"`
	Name            string  `json:"name"`
	Released        string  `json:"released"`
	BackgroundImage string  `json:"background_image"`
	Rating          float64 `json:"rating"`
	Metacritic      int     `json:"metacritic"`
	Genres          []named `json:"genres"`
	Platforms       []struct {
		Platform named `json:"platform"`
	} `json:"platforms"`
}

type detailsJSON struct {
	gameJSON

	DescriptionRaw string  `json:"description_raw"`
	Website        string  `json:"website"`
	Developers     []named `json:"developers"`
	Publishers     []named `json:"publishers"`
	ESRBRating     *named  `json:"esrb_rating"`
	Tags           []named `json:"tags"`
	Stores         []struct {
		Store named `json:"store"`
	} `json:"stores"`
}

// toDomain maps the wire shape onto the domain value. The price is left
// at zero so Normalize assigns the derived store price.
func (g gameJSON) toDomain() catalog.Game {
	out := catalog.Game{
		ID:              g.ID,
		Slug:            g.Slug,
		Name:            g.Name,
		Released:        g.Released,
		BackgroundImage: g.BackgroundImage,
		Rating:          g.Rating,
		Metacritic:      g.Metacritic,
	}
	for _, v := range g.Genres {
		out.Genres = append(out.Genres, v.Name)
	}
	for _, v := range g.Platforms {
		out.Platforms = append(out.Platforms, v.Platform.Name)
	}
	return out
}
