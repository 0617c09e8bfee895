package storage

import (
	"context"

	"github.com/tiendamx/tienda-engine/internal/app/model"
)

// DefaultSlot is the slot name used when none is configured. The
// version suffix allows a future line format change to start clean
// instead of tripping over old payloads.
const DefaultSlot = "cart_items_v1"

// CartStore persists the full cart line list under a single named
// slot. It is the only corruption-recovery point in the system:
//
//   - Load returns the stored lines, or an empty list on absence,
//     malformed encoding, or a payload that is not a line sequence.
//     It never returns an error.
//   - Save overwrites the slot with the full list; from the caller's
//     perspective the write is atomic, no partial state is ever
//     observable. Save errors are reported for logging but callers
//     are expected to degrade fail-open rather than abort.
type CartStore interface {
	Load(ctx context.Context) []model.CartLine
	Save(ctx context.Context, lines []model.CartLine) error
}
