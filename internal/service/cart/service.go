package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

// Catalog is the read side of the product catalog consumed by carts.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Cart holds one session's lines. All mutations serialize on the mutex; the
// catalog fetch in AddItem happens before the critical section, so a failed
// fetch leaves the cart untouched and two concurrent adds for the same product
// both land as a single merged line.
type Cart struct {
	catalog          Catalog
	shippingFeeCents int64
	mu               sync.Mutex
	lines            []domain.CartLine
}

func New(catalog Catalog, shippingFeeCents int64) *Cart {
	return &Cart{catalog: catalog, shippingFeeCents: shippingFeeCents}
}

// AddItem resolves the product and merges quantity into an existing line for
// that product, or appends a new line with the effective price snapshotted
// now. A merged line keeps its original price snapshot.
func (c *Cart) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	product, err := c.catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		return err
	}
	unitPrice := pricing.EffectiveUnitPriceCents(product.PriceCents, product.OfferPriceCents)

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, domain.CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		ImageURL:       product.ImageURL,
		UnitPriceCents: unitPrice,
		Quantity:       quantity,
	})
	return nil
}

// UpdateQuantity adjusts the line at index by delta. A resulting quantity
// below 1 removes the line, identical to RemoveLine.
func (c *Cart) UpdateQuantity(index, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("%w: line index %d out of range", domain.ErrValidation, index)
	}
	c.lines[index].Quantity += delta
	if c.lines[index].Quantity < 1 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)
	}
	return nil
}

// RemoveLine removes the line at index unconditionally.
func (c *Cart) RemoveLine(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("%w: line index %d out of range", domain.ErrValidation, index)
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Totals recomputes derived amounts from the current composition. Shipping is
// a flat fee applied only when the subtotal is positive.
func (c *Cart) Totals() domain.CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()
	var t domain.CartTotals
	for _, line := range c.lines {
		t.TotalItems += line.Quantity
		t.SubtotalCents += pricing.LineTotalCents(line.UnitPriceCents, line.Quantity)
	}
	if t.SubtotalCents > 0 {
		t.ShippingCents = c.shippingFeeCents
	}
	t.GrandTotalCents = t.SubtotalCents + t.ShippingCents
	return t
}
