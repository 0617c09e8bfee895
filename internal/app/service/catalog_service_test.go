package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendamx/tienda-engine/internal/app/catalog"
	"github.com/tiendamx/tienda-engine/internal/app/model"
	apperrors "github.com/tiendamx/tienda-engine/internal/errors"
)

// stubFeed returns a fixed product list or a fixed error.
type stubFeed struct {
	products []model.Product
	err      error
}

func (s *stubFeed) Load(ctx context.Context) ([]model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func intPtr(n int) *int { return &n }

func fixtureProducts() []model.Product {
	return []model.Product{
		{ID: "1", Slug: "SKU-1", Name: "Anillo de oro", Price: 1200, CategoryName: "Joyería", Description: "Anillo 14k"},
		{ID: "2", Slug: "SKU-2", Name: "Collar de plata", Price: 350, CategoryName: "Joyería", Description: "¡Gran OFERTA de temporada!"},
		{ID: "3", Slug: "SKU-3", Name: "Taza", Price: 90, CategoryName: "Hogar", Description: "Promoción especial", Stock: intPtr(0)},
		{ID: "4", Slug: "SKU-4", Name: "Playera", Price: 150, CategoryName: "Ropa", Description: "Algodón, 20% de descuento"},
		{ID: "5", Slug: "SKU-5", Name: "Sartén", Price: 400, CategoryName: "Hogar", Description: "Antiadherente"},
		{ID: "6", Slug: "SKU-6", Name: "Misterioso", Price: 10, CategoryName: "", Description: ""},
	}
}

func setupCatalogServiceTest(t *testing.T) (CatalogService, *stubFeed, *recorder) {
	t.Helper()
	feed := &stubFeed{products: fixtureProducts()}
	rec := &recorder{}
	svc := NewCatalogService(feed, rec)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	return svc, feed, rec
}

func TestCatalogService_EmptyUntilFirstLoad(t *testing.T) {
	svc := NewCatalogService(&stubFeed{products: fixtureProducts()}, nil)
	assert.Len(t, svc.All(), 0)
	assert.Len(t, svc.DistinctCategories(), 0)
}

func TestCatalogService_LoadReplacesList(t *testing.T) {
	svc, feed, rec := setupCatalogServiceTest(t)
	assert.Len(t, svc.All(), 6)
	require.Len(t, rec.catalogs, 1)

	feed.products = fixtureProducts()[:2]
	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, svc.All(), 2)
	assert.Len(t, rec.catalogs, 2)
}

func TestCatalogService_FailedLoadKeepsPreviousList(t *testing.T) {
	svc, feed, rec := setupCatalogServiceTest(t)

	feed.err = catalog.ErrHTMLResponse
	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, catalog.ErrHTMLResponse)

	// Stale-while-revalidate: the previous list stays in place.
	assert.Len(t, svc.All(), 6)
	require.Len(t, rec.failures, 1)
	assert.Equal(t, apperrors.FeedHTMLResponse, rec.failures[0])
}

func TestCatalogService_FailureClassification(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{catalog.ErrHTMLResponse, apperrors.FeedHTMLResponse},
		{catalog.ErrEmptyFeed, apperrors.FeedEmpty},
		{catalog.ErrFeedUnavailable, apperrors.FeedUnavailable},
	}
	for _, tc := range cases {
		rec := &recorder{}
		svc := NewCatalogService(&stubFeed{err: tc.err}, rec)
		_, err := svc.Load(context.Background())
		assert.Error(t, err)
		require.Len(t, rec.failures, 1)
		assert.Equal(t, tc.code, rec.failures[0])
	}
}

func TestCatalogService_ByCategory_CaseInsensitive(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)

	hogar := svc.ByCategory("hogar")
	require.Len(t, hogar, 2)
	assert.Equal(t, "Taza", hogar[0].Name)
	assert.Equal(t, "Sartén", hogar[1].Name)

	assert.Len(t, svc.ByCategory("HOGAR"), 2)
	assert.Len(t, svc.ByCategory("no-existe"), 0)
}

func TestCatalogService_ByCategory_EmptyNameReturnsAll(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)
	assert.Len(t, svc.ByCategory(""), 6)
}

func TestCatalogService_ByCategory_OffersMatchesDescription(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)

	// "ofertas" ignores categoryName entirely and matches promotion
	// keywords in the description.
	offers := svc.ByCategory("ofertas")
	require.Len(t, offers, 3)
	ids := []string{offers[0].ID, offers[1].ID, offers[2].ID}
	assert.Equal(t, []string{"2", "3", "4"}, ids)

	assert.Len(t, svc.ByCategory("OFERTAS"), 3)
	assert.Len(t, svc.ByCategory("offers"), 3)
}

func TestCatalogService_Search(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)

	// Name match.
	results := svc.Search("anillo")
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)

	// Category match.
	results = svc.Search("joyer")
	assert.Len(t, results, 2)

	// Description does not participate in search.
	assert.Len(t, svc.Search("antiadherente"), 0)

	// Blank query returns everything.
	assert.Len(t, svc.Search("  "), 6)
}

func TestCatalogService_DistinctCategories(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)

	// Deduped, the empty label dropped, sorted with es collation.
	assert.Equal(t, []string{"Hogar", "Joyería", "Ropa"}, svc.DistinctCategories())
}

func TestCatalogService_DistinctCategories_Concurrent(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)
	want := []string{"Hogar", "Joyería", "Ropa"}

	// Handlers run concurrently, so concurrent reads must keep
	// returning the same correctly collated list.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got := svc.DistinctCategories()
				if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
					errs <- fmt.Errorf("unexpected category list: %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestCatalogService_ProductByID(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)

	p, ok := svc.ProductByID("3")
	require.True(t, ok)
	assert.Equal(t, "Taza", p.Name)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 0, *p.Stock)

	_, ok = svc.ProductByID("999")
	assert.False(t, ok)
}

func TestCatalogService_ProductBySlug(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)

	p, ok := svc.ProductBySlug("SKU-2")
	require.True(t, ok)
	assert.Equal(t, "Collar de plata", p.Name)

	_, ok = svc.ProductBySlug("SKU-999")
	assert.False(t, ok)
}

func TestCatalogService_UnitTotal(t *testing.T) {
	svc, _, _ := setupCatalogServiceTest(t)
	assert.Equal(t, 350.0, svc.UnitTotal(175, 2))
	assert.Equal(t, 0.0, svc.UnitTotal(0, 10))
}
