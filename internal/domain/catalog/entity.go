// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"strings"
)

var (
	ErrInvalidGame = errors.New("catalog: invalid game")
)

// Game is a catalog item as consumed from the external game-data API.
// It is normalized once at the boundary (Normalize) and treated as an
// immutable value afterwards. Identity is the numeric ID.
type Game struct {
	ID              int64    `json:"id" firestore:"id"`
	Slug            string   `json:"slug" firestore:"slug"`
	Name            string   `json:"name" firestore:"name"`
	Released        string   `json:"released,omitempty" firestore:"released"`
	BackgroundImage string   `json:"background_image,omitempty" firestore:"backgroundImage"`
	Rating          float64  `json:"rating" firestore:"rating"`
	Metacritic      int      `json:"metacritic,omitempty" firestore:"metacritic"`
	Genres          []string `json:"genres,omitempty" firestore:"genres"`
	Platforms       []string `json:"platforms,omitempty" firestore:"platforms"`

	// Price is assigned client-side for the store simulation.
	// It is NOT authoritative and never comes from the catalog API.
	Price float64 `json:"price" firestore:"price"`
}

// GameDetails is the full product sheet for a single game.
type GameDetails struct {
	Game

	Description string   `json:"description_raw,omitempty" firestore:"description"`
	Website     string   `json:"website,omitempty" firestore:"website"`
	Developers  []string `json:"developers,omitempty" firestore:"developers"`
	Publishers  []string `json:"publishers,omitempty" firestore:"publishers"`
	ESRBRating  string   `json:"esrb_rating,omitempty" firestore:"esrbRating"`
	Tags        []string `json:"tags,omitempty" firestore:"tags"`
	Stores      []string `json:"stores,omitempty" firestore:"stores"`
}

// Screenshot is a single screenshot reference for a game.
type Screenshot struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Normalize validates and normalizes a Game coming from the external API.
// The external shape is dynamic; after this point the rest of the system
// treats the value as trusted and immutable.
//
// Rules:
// - ID must be positive
// - Name must be non-empty (Slug falls back to a slugified Name)
// - Rating is clamped to [0, 5]
// - Price <= 0 is replaced by the derived price for the ID
func Normalize(g Game) (Game, error) {
	if g.ID <= 0 {
		return Game{}, ErrInvalidGame
	}

	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return Game{}, ErrInvalidGame
	}

	g.Slug = strings.TrimSpace(g.Slug)
	if g.Slug == "" {
		g.Slug = slugify(g.Name)
	}

	g.Released = strings.TrimSpace(g.Released)
	g.BackgroundImage = strings.TrimSpace(g.BackgroundImage)

	if g.Rating < 0 {
		g.Rating = 0
	}
	if g.Rating > 5 {
		g.Rating = 5
	}

	if g.Price <= 0 {
		g.Price = DerivePrice(g.ID)
	}

	g.Genres = trimAll(g.Genres)
	g.Platforms = trimAll(g.Platforms)

	return g, nil
}

// DerivePrice assigns the simulated store price for a game.
// The original storefront rolled a random price on every fetch; here the
// price is a deterministic function of the ID so that a cart total stays
// stable across loads. Range: 9.99 .. 59.99.
func DerivePrice(id int64) float64 {
	if id <= 0 {
		return 9.99
	}
	// Knuth multiplicative hash, folded into 0..5000 cents above the floor.
	h := uint64(id) * 2654435761
	cents := 999 + int64(h%5001)
	return float64(cents) / 100
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func trimAll(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	out := make([]string, 0, len(src))
	for _, s := range src {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
