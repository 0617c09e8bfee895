package service

import (
	"context"
	"sync"

	"github.com/tiendamx/tienda-engine/internal/app/model"
	"github.com/tiendamx/tienda-engine/internal/app/storage"
	"github.com/tiendamx/tienda-engine/internal/events"
	"github.com/tiendamx/tienda-engine/pkg/logger"
)

// CartService is the cart ledger. Line identity for merging is the
// (sku, price) pair, so the same sku at a new price opens a separate
// line and historic entries are never silently repriced. Removal
// deliberately matches by sku alone: users remove "a product", not a
// specific price point of it.
//
// Every mutation persists the full line list and emits a cart_changed
// signal. Quantity validation is the caller's job; AddItem trusts a
// positive qty.
type CartService interface {
	AddItem(ctx context.Context, sku, name string, price float64, qty int) model.Cart
	RemoveItem(ctx context.Context, sku string) model.Cart
	Clear(ctx context.Context) model.Cart
	Snapshot() model.Cart
}

type cartService struct {
	store    storage.CartStore
	notifier events.Notifier

	mu    sync.Mutex
	lines []model.CartLine
}

// NewCartService builds a ledger seeded from the persisted slot. A
// corrupted or absent slot starts the ledger empty.
func NewCartService(store storage.CartStore, notifier events.Notifier) CartService {
	if notifier == nil {
		notifier = events.NopNotifier{}
	}
	s := &cartService{
		store:    store,
		notifier: notifier,
	}
	s.lines = store.Load(context.Background())

	logger.Info("Cart ledger loaded", map[string]interface{}{
		"lines": len(s.lines),
	})
	return s
}

func (s *cartService) AddItem(ctx context.Context, sku, name string, price float64, qty int) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Debug("Adding cart line", map[string]interface{}{
		"sku":   sku,
		"price": price,
		"qty":   qty,
	})

	merged := false
	for i := range s.lines {
		if s.lines[i].SKU == sku && s.lines[i].Price == price {
			s.lines[i].Qty += qty
			s.lines[i].Subtotal = float64(s.lines[i].Qty) * s.lines[i].Price
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, model.CartLine{
			SKU:      sku,
			Name:     name,
			Price:    price,
			Qty:      qty,
			Subtotal: float64(qty) * price,
		})
	}

	return s.commit(ctx)
}

// RemoveItem drops every line with the sku, regardless of price. A
// miss is a no-op, the operation is idempotent.
func (s *cartService) RemoveItem(ctx context.Context, sku string) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.SKU != sku {
			kept = append(kept, line)
		}
	}
	s.lines = kept

	return s.commit(ctx)
}

func (s *cartService) Clear(ctx context.Context) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []model.CartLine{}
	return s.commit(ctx)
}

func (s *cartService) Snapshot() model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *cartService) snapshotLocked() model.Cart {
	lines := make([]model.CartLine, len(s.lines))
	copy(lines, s.lines)
	return model.BuildCart(lines)
}

// commit persists the line list and emits the cart_changed signal.
// The cart is a convenience, not a system of record: a failing store
// is logged and the session keeps its in-memory state (fail-open).
func (s *cartService) commit(ctx context.Context) model.Cart {
	if err := s.store.Save(ctx, s.lines); err != nil {
		logger.Warn("Cart not persisted, keeping in-memory state", map[string]interface{}{
			"lines": len(s.lines),
			"error": err.Error(),
		})
	}

	cart := s.snapshotLocked()
	s.notifier.CartChanged(cart)
	return cart
}
