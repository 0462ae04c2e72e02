// internal/adapters/out/firestore/profile_repository_fs_test.go
package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
	profiledom "gamestore/internal/domain/profile"
)

func sampleGame() catalog.Game {
	g, _ := catalog.Normalize(catalog.Game{
		ID: 3498, Slug: "gta-v", Name: "GTA V", Rating: 4.5,
		Genres: []string{"Action"}, Platforms: []string{"PC"}, Price: 29.99,
	})
	return g
}

func TestProfileDocRoundTrip(t *testing.T) {
	g := sampleGame()
	p, err := profiledom.New("u1", "Ada", "ada@example.com", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	p.Favorites = []catalog.Game{g}
	p.Cart = []cartdom.Line{{Game: g, Qty: 2}}

	doc := profileDocFromDomain(p)
	back := doc.toDomain()

	assert.Equal(t, p.UID, back.UID)
	assert.Equal(t, p.DisplayName, back.DisplayName)
	assert.Equal(t, p.Email, back.Email)
	assert.Equal(t, p.CreatedAt, back.CreatedAt)
	assert.Equal(t, p.Favorites, back.Favorites)
	assert.Equal(t, p.Cart, back.Cart)
}

func TestGameDocEqualityForArrayRemove(t *testing.T) {
	// ArrayRemove matches by whole-element equality, so the DTO written
	// on add must be identical to the DTO sent on remove for the same
	// normalized game value.
	g := sampleGame()
	assert.Equal(t, gameDocFromDomain(g), gameDocFromDomain(g))

	other := g
	other.Rating = 3
	assert.NotEqual(t, gameDocFromDomain(g), gameDocFromDomain(other))
}

func TestToDomainDropsNonPositiveQuantities(t *testing.T) {
	doc := profileDoc{
		UID: "u1",
		Cart: []lineDoc{
			{gameDoc: gameDocFromDomain(sampleGame()), Quantity: 2},
			{gameDoc: gameDocFromDomain(sampleGame()), Quantity: 0},
		},
	}

	p := doc.toDomain()
	require.Len(t, p.Cart, 1)
	assert.Equal(t, 2, p.Cart[0].Qty)
}

func TestNilClientGuards(t *testing.T) {
	var r *ProfileRepositoryFS

	_, err := r.GetByUID(t.Context(), "u1")
	assert.Error(t, err)
	assert.Error(t, r.Create(t.Context(), &profiledom.Profile{UID: "u1"}))
	assert.Error(t, r.SetCart(t.Context(), "u1", nil))
	assert.Error(t, r.AddFavorite(t.Context(), "u1", sampleGame()))
	assert.Error(t, r.RemoveFavorite(t.Context(), "u1", sampleGame()))
}
