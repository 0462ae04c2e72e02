// internal/application/usecase/catalog_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamestore/internal/domain/catalog"
)

// stubSource records the last call made to it.
type stubSource struct {
	lastOp       string
	lastQuery    string
	lastPage     int
	lastPageSize int
	lastOrdering string
	lastSlug     string
}

func (s *stubSource) List(_ context.Context, page, pageSize int, ordering string) (*catalog.Page, error) {
	s.lastOp, s.lastPage, s.lastPageSize, s.lastOrdering = "list", page, pageSize, ordering
	return &catalog.Page{}, nil
}

func (s *stubSource) Search(_ context.Context, query string, page, pageSize int) (*catalog.Page, error) {
	s.lastOp, s.lastQuery, s.lastPage, s.lastPageSize = "search", query, page, pageSize
	return &catalog.Page{}, nil
}

func (s *stubSource) BySlug(_ context.Context, slug string) (*catalog.GameDetails, error) {
	s.lastOp, s.lastSlug = "byslug", slug
	return &catalog.GameDetails{}, nil
}

func (s *stubSource) Screenshots(_ context.Context, slug string) ([]catalog.Screenshot, error) {
	s.lastOp, s.lastSlug = "screenshots", slug
	return nil, nil
}

func TestBrowseClampsPaging(t *testing.T) {
	src := &stubSource{}
	uc := NewCatalogUsecase(src)

	_, err := uc.Browse(context.Background(), "", -3, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "list", src.lastOp)
	assert.Equal(t, 1, src.lastPage)
	assert.Equal(t, 20, src.lastPageSize)
	assert.Equal(t, "-rating", src.lastOrdering)

	_, err = uc.Browse(context.Background(), "", 2, 500, "name")
	require.NoError(t, err)
	assert.Equal(t, 40, src.lastPageSize)
	assert.Equal(t, "name", src.lastOrdering)
}

func TestBrowseSearchesWhenQueryPresent(t *testing.T) {
	src := &stubSource{}
	uc := NewCatalogUsecase(src)

	_, err := uc.Browse(context.Background(), "  witcher  ", 1, 10, "-rating")
	require.NoError(t, err)
	assert.Equal(t, "search", src.lastOp)
	assert.Equal(t, "witcher", src.lastQuery)
}

func TestDetailsRequiresSlug(t *testing.T) {
	uc := NewCatalogUsecase(&stubSource{})

	_, err := uc.Details(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrCatalogInvalidArgument)

	src := &stubSource{}
	uc = NewCatalogUsecase(src)
	_, err = uc.Details(context.Background(), " portal-2 ")
	require.NoError(t, err)
	assert.Equal(t, "portal-2", src.lastSlug)
}

func TestScreenshotsRequiresSlug(t *testing.T) {
	uc := NewCatalogUsecase(&stubSource{})
	_, err := uc.Screenshots(context.Background(), "")
	assert.ErrorIs(t, err, ErrCatalogInvalidArgument)
}
