package domain

// CartLine is a denormalized snapshot of a product taken at add-to-cart time.
// UnitPriceCents is the effective price at that moment and is never refreshed,
// even when the catalog price changes later.
type CartLine struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// CartTotals is derived from the current cart composition and never stored.
type CartTotals struct {
	TotalItems      int   `json:"totalItems"`
	SubtotalCents   int64 `json:"subtotalCents"`
	ShippingCents   int64 `json:"shippingCents"`
	GrandTotalCents int64 `json:"grandTotalCents"`
}
