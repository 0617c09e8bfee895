package model

// PlaceholderName is the display name used when the upstream record
// carries no recognizable name field.
const PlaceholderName = "Producto"

// Product is the canonical product shape every upstream record is
// normalized into. Instances are rebuilt on every feed load; only the
// upstream id/slug carry identity across loads.
type Product struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	CategoryName string  `json:"category_name"`
	Image        string  `json:"image"`
	// Stock is nil when the feed omits it. That is not the same as 0,
	// which means out of stock.
	Stock *int `json:"stock"`
}
