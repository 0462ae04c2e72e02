// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"gamestore/internal/domain/catalog"
)

var (
	ErrCatalogInvalidArgument = errors.New("catalog_usecase: invalid argument")
)

const (
	defaultPageSize = 20
	maxPageSize     = 40
	defaultOrdering = "-rating"
)

// CatalogUsecase fronts the external game catalog, clamping paging
// parameters before hitting the source.
type CatalogUsecase struct {
	source catalog.Source
}

func NewCatalogUsecase(source catalog.Source) *CatalogUsecase {
	return &CatalogUsecase{source: source}
}

// Browse lists games, or searches when query is non-empty.
func (uc *CatalogUsecase) Browse(ctx context.Context, query string, page, pageSize int, ordering string) (*catalog.Page, error) {
	if uc == nil || uc.source == nil {
		return nil, errors.New("catalog_usecase: source is nil")
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	q := strings.TrimSpace(query)
	if q != "" {
		return uc.source.Search(ctx, q, page, pageSize)
	}

	ord := strings.TrimSpace(ordering)
	if ord == "" {
		ord = defaultOrdering
	}
	return uc.source.List(ctx, page, pageSize, ord)
}

// Details returns the full product sheet for a slug.
func (uc *CatalogUsecase) Details(ctx context.Context, slug string) (*catalog.GameDetails, error) {
	if uc == nil || uc.source == nil {
		return nil, errors.New("catalog_usecase: source is nil")
	}
	s := strings.TrimSpace(slug)
	if s == "" {
		return nil, ErrCatalogInvalidArgument
	}
	return uc.source.BySlug(ctx, s)
}

// Screenshots returns the screenshot set for a slug.
func (uc *CatalogUsecase) Screenshots(ctx context.Context, slug string) ([]catalog.Screenshot, error) {
	if uc == nil || uc.source == nil {
		return nil, errors.New("catalog_usecase: source is nil")
	}
	s := strings.TrimSpace(slug)
	if s == "" {
		return nil, ErrCatalogInvalidArgument
	}
	return uc.source.Screenshots(ctx, s)
}
