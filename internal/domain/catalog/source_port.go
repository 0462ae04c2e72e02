// internal/domain/catalog/source_port.go
package catalog

import "context"

// Page is one page of catalog results.
type Page struct {
	Results  []Game `json:"results"`
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// Source is a read-only port onto the external game catalog.
//
// Implementations must return already-normalized Games (see Normalize);
// callers treat results as trusted immutable values.
type Source interface {
	// List returns games ordered by the given ordering expression
	// (e.g. "-rating").
	List(ctx context.Context, page, pageSize int, ordering string) (*Page, error)

	// Search returns games matching the free-text query.
	Search(ctx context.Context, query string, page, pageSize int) (*Page, error)

	// BySlug returns the full details for one game.
	BySlug(ctx context.Context, slug string) (*GameDetails, error)

	// Screenshots returns the screenshot set for one game.
	Screenshots(ctx context.Context, slug string) ([]Screenshot, error)
}
