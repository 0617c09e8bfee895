package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/tiendamx/tienda-engine/internal/app/catalog"
	"github.com/tiendamx/tienda-engine/internal/app/model"
	apperrors "github.com/tiendamx/tienda-engine/internal/errors"
	"github.com/tiendamx/tienda-engine/internal/events"
	"github.com/tiendamx/tienda-engine/pkg/logger"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Reserved category: instead of matching categoryName it matches
// promotion keywords in the description, whatever category the
// product is filed under.
var offersPattern = regexp.MustCompile(`(?i)oferta|descuento|promo`)

func isOffersCategory(name string) bool {
	lower := strings.ToLower(name)
	return lower == "ofertas" || lower == "offers"
}

// FeedSource abstracts the feed loader for the catalog service.
type FeedSource interface {
	Load(ctx context.Context) ([]model.Product, error)
}

// CatalogService holds the last successfully loaded product list and
// exposes read-only projections over it. Projections are recomputed
// per call; catalogs are small enough that no index is worth keeping.
// It never touches the cart ledger or its store.
type CatalogService interface {
	// Load fetches the feed and swaps the product list on success.
	// On failure the previous list is retained untouched and the
	// classified error is both signalled and returned.
	Load(ctx context.Context) ([]model.Product, error)

	All() []model.Product
	ByCategory(name string) []model.Product
	Search(query string) []model.Product
	DistinctCategories() []string
	ProductByID(id string) (model.Product, bool)
	ProductBySlug(slug string) (model.Product, bool)

	// UnitTotal is the quantity-dialog helper: unit price times a
	// resolved quantity. The dialog itself lives outside the core.
	UnitTotal(price float64, qty int) float64
}

type catalogService struct {
	feed     FeedSource
	notifier events.Notifier

	// SortStrings mutates the collator's internal buffers, so it
	// needs its own lock; s.mu alone is not enough because the sort
	// happens outside the product-list critical section.
	collMu   sync.Mutex
	collator *collate.Collator

	mu       sync.RWMutex
	products []model.Product
}

func NewCatalogService(feed FeedSource, notifier events.Notifier) CatalogService {
	if notifier == nil {
		notifier = events.NopNotifier{}
	}
	return &catalogService{
		feed:     feed,
		notifier: notifier,
		collator: collate.New(language.Spanish),
		products: []model.Product{},
	}
}

func (s *catalogService) Load(ctx context.Context) ([]model.Product, error) {
	products, err := s.feed.Load(ctx)
	if err != nil {
		code, message := classifyFeedError(err)
		logger.Warn("Catalog load failed, keeping previous list", map[string]interface{}{
			"code":  code,
			"error": err.Error(),
		})
		s.notifier.FeedFailed(code, message)
		return nil, err
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	logger.Info("Catalog replaced", map[string]interface{}{
		"count": len(products),
	})
	s.notifier.CatalogChanged(products)
	return products, nil
}

func (s *catalogService) All() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *catalogService) ByCategory(name string) []model.Product {
	if name == "" {
		return s.All()
	}
	if isOffersCategory(name) {
		return s.filter(func(p model.Product) bool {
			return offersPattern.MatchString(p.Description)
		})
	}
	lower := strings.ToLower(name)
	return s.filter(func(p model.Product) bool {
		return strings.ToLower(p.CategoryName) == lower
	})
}

func (s *catalogService) Search(query string) []model.Product {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return s.All()
	}
	return s.filter(func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.CategoryName), term)
	})
}

// DistinctCategories returns the non-empty category labels, deduped
// and sorted with Spanish collation rules.
func (s *catalogService) DistinctCategories() []string {
	s.mu.RLock()
	seen := make(map[string]bool)
	categories := []string{}
	for _, p := range s.products {
		name := strings.TrimSpace(p.CategoryName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		categories = append(categories, name)
	}
	s.mu.RUnlock()

	s.collMu.Lock()
	s.collator.SortStrings(categories)
	s.collMu.Unlock()
	return categories
}

func (s *catalogService) ProductByID(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// ProductBySlug resolves the slug carried by an "add to cart" action.
func (s *catalogService) ProductBySlug(slug string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *catalogService) UnitTotal(price float64, qty int) float64 {
	return price * float64(qty)
}

func (s *catalogService) filter(keep func(model.Product) bool) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Product{}
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// classifyFeedError maps a loader error onto an error code and the
// inline message shown where the grid would render.
func classifyFeedError(err error) (string, string) {
	switch {
	case errors.Is(err, catalog.ErrHTMLResponse):
		return apperrors.FeedHTMLResponse, "La API devolvió HTML (¿redirección a login?)."
	case errors.Is(err, catalog.ErrEmptyFeed):
		return apperrors.FeedEmpty, "No llegaron productos."
	default:
		return apperrors.FeedUnavailable, "Error cargando productos."
	}
}
