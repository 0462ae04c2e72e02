// internal/domain/profile/store_port.go
package profile

import (
	"context"

	"gamestore/internal/domain/cart"
	"gamestore/internal/domain/catalog"
)

// Store is the persistence port for the remote profile document.
//
// Not-found policy: GetByUID returns (nil, nil) when no document exists
// for the UID; the application layer treats that as "first use" and
// provisions via Create.
//
// Write granularity mirrors what the backing document store offers:
// - SetCart overwrites the whole cart array (not commutative; callers
//   must serialize their writes)
// - AddFavorite/RemoveFavorite are element-level union/remove on the
//   favorites array (commutative, safe to interleave)
type Store interface {
	GetByUID(ctx context.Context, uid string) (*Profile, error)

	// Create provisions the document. Creating an already-existing
	// document must not clobber it.
	Create(ctx context.Context, p *Profile) error

	// SetCart replaces the cart field with the given lines.
	SetCart(ctx context.Context, uid string, lines []cart.Line) error

	// AddFavorite unions a single game onto the favorites array.
	AddFavorite(ctx context.Context, uid string, game catalog.Game) error

	// RemoveFavorite removes the exact game value from the favorites array.
	RemoveFavorite(ctx context.Context, uid string, game catalog.Game) error
}
