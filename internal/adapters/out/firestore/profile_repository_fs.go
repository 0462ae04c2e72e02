// internal/adapters/out/firestore/profile_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
	profiledom "gamestore/internal/domain/profile"
)

// ProfileRepositoryFS implements profile.Store using Firestore.
//
// Collection design:
// - collection: users
// - docId: uid (docId is the source of truth)
// - fields: uid, displayName, email, createdAt, favorites([]game), cart([]line)
//
// Write granularity:
// - cart: whole-array field update (callers serialize their writes)
// - favorites: ArrayUnion / ArrayRemove of single elements
type ProfileRepositoryFS struct {
	Client *firestore.Client
}

func NewProfileRepositoryFS(client *firestore.Client) *ProfileRepositoryFS {
	return &ProfileRepositoryFS{Client: client}
}

func (r *ProfileRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

// GetByUID returns (nil, nil) if no document exists (nil policy).
func (r *ProfileRepositoryFS) GetByUID(ctx context.Context, uid string) (*profiledom.Profile, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("profile_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("profile_repository_fs: uid is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	p := doc.toDomain()
	// docId is the source of truth even if the uid field is missing
	p.UID = id
	return p, nil
}

// Create provisions the document. An already-existing document is left
// untouched (AlreadyExists is not an error).
func (r *ProfileRepositoryFS) Create(ctx context.Context, p *profiledom.Profile) error {
	if r == nil || r.Client == nil {
		return errors.New("profile_repository_fs: firestore client is nil")
	}
	if p == nil {
		return errors.New("profile_repository_fs: profile is nil")
	}

	id := strings.TrimSpace(p.UID)
	if id == "" {
		return errors.New("profile_repository_fs: Create requires profile.UID as docId")
	}

	_, err := r.col().Doc(id).Create(ctx, profileDocFromDomain(p))
	if err != nil && status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return err
}

// SetCart overwrites the cart field with the given lines.
func (r *ProfileRepositoryFS) SetCart(ctx context.Context, uid string, lines []cartdom.Line) error {
	if r == nil || r.Client == nil {
		return errors.New("profile_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("profile_repository_fs: uid is empty")
	}

	docs := make([]lineDoc, 0, len(lines))
	for _, l := range lines {
		docs = append(docs, lineDocFromDomain(l))
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "cart", Value: docs},
	})
	return err
}

// AddFavorite unions a single game onto the favorites array.
func (r *ProfileRepositoryFS) AddFavorite(ctx context.Context, uid string, game catalog.Game) error {
	if r == nil || r.Client == nil {
		return errors.New("profile_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("profile_repository_fs: uid is empty")
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "favorites", Value: firestore.ArrayUnion(gameDocFromDomain(game))},
	})
	return err
}

// RemoveFavorite removes the exact game value from the favorites array.
// Whole-element equality: the stored snapshot must match field for field,
// which holds because favorites are written and removed through the same
// normalized DTO.
func (r *ProfileRepositoryFS) RemoveFavorite(ctx context.Context, uid string, game catalog.Game) error {
	if r == nil || r.Client == nil {
		return errors.New("profile_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("profile_repository_fs: uid is empty")
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "favorites", Value: firestore.ArrayRemove(gameDocFromDomain(game))},
	})
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type profileDoc struct {
	UID         string    `firestore:"uid"`
	DisplayName string    `firestore:"displayName"`
	Email       string    `firestore:"email"`
	CreatedAt   time.Time `firestore:"createdAt"`
	Favorites   []gameDoc `firestore:"favorites"`
	Cart        []lineDoc `firestore:"cart"`
}

type gameDoc struct {
	ID              int64    `firestore:"id"`
	Slug            string   `firestore:"slug"`
	Name            string   `firestore:"name"`
	Released        string   `firestore:"released"`
	BackgroundImage string   `firestore:"backgroundImage"`
	Rating          float64  `firestore:"rating"`
	Metacritic      int      `firestore:"metacritic"`
	Genres          []string `firestore:"genres"`
	Platforms       []string `firestore:"platforms"`
	Price           float64  `firestore:"price"`
}

type lineDoc struct {
	gameDoc
	Quantity int `firestore:"quantity"`
}

func profileDocFromDomain(p *profiledom.Profile) profileDoc {
	doc := profileDoc{
		UID:         strings.TrimSpace(p.UID),
		DisplayName: strings.TrimSpace(p.DisplayName),
		Email:       strings.TrimSpace(p.Email),
		CreatedAt:   p.CreatedAt,
		Favorites:   []gameDoc{},
		Cart:        []lineDoc{},
	}
	for _, g := range p.Favorites {
		doc.Favorites = append(doc.Favorites, gameDocFromDomain(g))
	}
	for _, l := range p.Cart {
		doc.Cart = append(doc.Cart, lineDocFromDomain(l))
	}
	return doc
}

func gameDocFromDomain(g catalog.Game) gameDoc {
	return gameDoc{
		ID:              g.ID,
		Slug:            g.Slug,
		Name:            g.Name,
		Released:        g.Released,
		BackgroundImage: g.BackgroundImage,
		Rating:          g.Rating,
		Metacritic:      g.Metacritic,
		Genres:          g.Genres,
		Platforms:       g.Platforms,
		Price:           g.Price,
	}
}

func lineDocFromDomain(l cartdom.Line) lineDoc {
	return lineDoc{
		gameDoc:  gameDocFromDomain(l.Game),
		Quantity: l.Qty,
	}
}

func (d gameDoc) toDomain() catalog.Game {
	return catalog.Game{
		ID:              d.ID,
		Slug:            d.Slug,
		Name:            d.Name,
		Released:        d.Released,
		BackgroundImage: d.BackgroundImage,
		Rating:          d.Rating,
		Metacritic:      d.Metacritic,
		Genres:          d.Genres,
		Platforms:       d.Platforms,
		Price:           d.Price,
	}
}

func (d profileDoc) toDomain() *profiledom.Profile {
	p := &profiledom.Profile{
		UID:         strings.TrimSpace(d.UID),
		DisplayName: strings.TrimSpace(d.DisplayName),
		Email:       strings.TrimSpace(d.Email),
		CreatedAt:   d.CreatedAt,
		Favorites:   []catalog.Game{},
		Cart:        []cartdom.Line{},
	}
	for _, g := range d.Favorites {
		p.Favorites = append(p.Favorites, g.toDomain())
	}
	for _, l := range d.Cart {
		if l.Quantity <= 0 {
			continue
		}
		p.Cart = append(p.Cart, cartdom.Line{Game: l.gameDoc.toDomain(), Qty: l.Quantity})
	}
	return p
}
