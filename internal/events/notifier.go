package events

import "github.com/tiendamx/tienda-engine/internal/app/model"

// Event names pushed to subscribed renderers.
const (
	EventCartChanged    = "cart_changed"
	EventCatalogChanged = "catalog_changed"
	EventFeedFailed     = "feed_failed"
)

// Notifier receives the outbound signals the core emits for the
// rendering layer. The core never renders anything itself; it only
// hands over snapshots.
type Notifier interface {
	// CartChanged carries the full cart snapshot after a mutation.
	CartChanged(cart model.Cart)
	// CatalogChanged carries the current product list after a
	// successful feed load.
	CatalogChanged(products []model.Product)
	// FeedFailed carries a failure classification code and a
	// human-readable message for inline display.
	FeedFailed(code string, message string)
}

// NopNotifier discards all signals. Used when no renderer is attached.
type NopNotifier struct{}

func (NopNotifier) CartChanged(model.Cart)         {}
func (NopNotifier) CatalogChanged([]model.Product) {}
func (NopNotifier) FeedFailed(string, string)      {}
