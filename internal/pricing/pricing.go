// Package pricing derives effective unit prices and line totals. All amounts
// are integer cents.
package pricing

// EffectiveUnitPriceCents returns the unit price actually charged: the offer
// price when present and strictly lower than the base price, the base price
// otherwise.
func EffectiveUnitPriceCents(priceCents int64, offerPriceCents *int64) int64 {
	if offerPriceCents != nil && *offerPriceCents < priceCents {
		return *offerPriceCents
	}
	return priceCents
}

// LineTotalCents returns unit price times quantity. Negative inputs are a
// caller precondition violation.
func LineTotalCents(unitPriceCents int64, quantity int) int64 {
	return unitPriceCents * int64(quantity)
}
