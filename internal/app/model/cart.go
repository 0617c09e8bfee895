package model

// CartLine is one cart entry. Two additions merge into a single line
// only when both SKU and Price match; the same SKU at a different
// price stays a separate line so historic entries are never repriced.
type CartLine struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
	Subtotal float64 `json:"subtotal"`
}

// Cart is the aggregate handed to renderers. Count and Total are
// derived from Lines on every build and are never stored.
type Cart struct {
	Lines []CartLine `json:"lines"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

// BuildCart recomputes the derived totals from a line list.
func BuildCart(lines []CartLine) Cart {
	cart := Cart{Lines: lines}
	if cart.Lines == nil {
		cart.Lines = []CartLine{}
	}
	for _, line := range cart.Lines {
		cart.Count += line.Qty
		cart.Total += line.Subtotal
	}
	return cart
}
