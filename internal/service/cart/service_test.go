package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubCatalog struct {
	products map[string]*domain.Product
	err      error
	calls    int
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func centsPtr(v int64) *int64 { return &v }

func catalogWith(products ...*domain.Product) *stubCatalog {
	m := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubCatalog{products: m}
}

func TestAddItemSnapshotsOfferPrice(t *testing.T) {
	catalog := catalogWith(&domain.Product{ID: "p1", Name: "Headphones", PriceCents: 10000, OfferPriceCents: centsPtr(8000)})
	c := New(catalog, 5000)

	if err := c.AddItem(context.Background(), "p1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].UnitPriceCents != 8000 {
		t.Fatalf("expected snapshot of offer price 8000, got %d", lines[0].UnitPriceCents)
	}
}

func TestAddItemMergesIntoExistingLine(t *testing.T) {
	catalog := catalogWith(&domain.Product{ID: "p1", Name: "Headphones", PriceCents: 10000})
	c := New(catalog, 5000)

	if err := c.AddItem(context.Background(), "p1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddItem(context.Background(), "p1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAddItemMergeKeepsOriginalSnapshot(t *testing.T) {
	product := &domain.Product{ID: "p1", Name: "Headphones", PriceCents: 10000}
	catalog := catalogWith(product)
	c := New(catalog, 5000)

	if err := c.AddItem(context.Background(), "p1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	product.OfferPriceCents = centsPtr(8000)
	if err := c.AddItem(context.Background(), "p1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := c.Lines()
	if lines[0].UnitPriceCents != 10000 {
		t.Fatalf("expected original snapshot 10000 to survive the merge, got %d", lines[0].UnitPriceCents)
	}
}

func TestAddItemUnknownProductLeavesCartUnchanged(t *testing.T) {
	c := New(catalogWith(), 5000)

	err := c.AddItem(context.Background(), "missing", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(c.Lines()) != 0 {
		t.Fatalf("expected empty cart after failed add, got %d lines", len(c.Lines()))
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	catalog := catalogWith(&domain.Product{ID: "p1", PriceCents: 10000})
	c := New(catalog, 5000)

	err := c.AddItem(context.Background(), "p1", 0)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if catalog.calls != 0 {
		t.Fatalf("expected no catalog fetch for invalid quantity, got %d calls", catalog.calls)
	}
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	catalog := catalogWith(&domain.Product{ID: "p1", PriceCents: 10000})
	c := New(catalog, 5000)
	if err := c.AddItem(context.Background(), "p1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.UpdateQuantity(0, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Lines()) != 0 {
		t.Fatalf("expected line removed when quantity drops below 1, got %d lines", len(c.Lines()))
	}
}

func TestUpdateQuantityOutOfRange(t *testing.T) {
	c := New(catalogWith(), 5000)
	if err := c.UpdateQuantity(0, 1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty cart, got %v", err)
	}
}

func TestRemoveLine(t *testing.T) {
	catalog := catalogWith(
		&domain.Product{ID: "p1", PriceCents: 10000},
		&domain.Product{ID: "p2", PriceCents: 2000},
	)
	c := New(catalog, 5000)
	if err := c.AddItem(context.Background(), "p1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddItem(context.Background(), "p2", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.RemoveLine(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].ProductID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", lines)
	}
}

func TestTotalsEmptyCart(t *testing.T) {
	c := New(catalogWith(), 5000)
	totals := c.Totals()
	if totals.SubtotalCents != 0 || totals.ShippingCents != 0 || totals.GrandTotalCents != 0 || totals.TotalItems != 0 {
		t.Fatalf("expected all-zero totals for empty cart, got %+v", totals)
	}
}

func TestTotalsAppliesFlatShipping(t *testing.T) {
	catalog := catalogWith(
		&domain.Product{ID: "p1", PriceCents: 10000, OfferPriceCents: centsPtr(8000)},
		&domain.Product{ID: "p2", PriceCents: 2500},
	)
	c := New(catalog, 5000)
	if err := c.AddItem(context.Background(), "p1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddItem(context.Background(), "p2", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals := c.Totals()
	if totals.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", totals.TotalItems)
	}
	if totals.SubtotalCents != 18500 {
		t.Fatalf("expected subtotal 18500, got %d", totals.SubtotalCents)
	}
	if totals.ShippingCents != 5000 {
		t.Fatalf("expected shipping 5000, got %d", totals.ShippingCents)
	}
	if totals.GrandTotalCents != 23500 {
		t.Fatalf("expected grand total 23500, got %d", totals.GrandTotalCents)
	}
}

func TestClear(t *testing.T) {
	catalog := catalogWith(&domain.Product{ID: "p1", PriceCents: 10000})
	c := New(catalog, 5000)
	if err := c.AddItem(context.Background(), "p1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Clear()
	if len(c.Lines()) != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	if totals := c.Totals(); totals.GrandTotalCents != 0 {
		t.Fatalf("expected zero grand total after clear, got %d", totals.GrandTotalCents)
	}
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	catalog := catalogWith(&domain.Product{ID: "p1", PriceCents: 10000})
	m := NewManager(catalog, 5000)

	a := m.Open()
	b := m.Open()
	if a == b {
		t.Fatalf("expected distinct session ids")
	}

	if err := m.Get(a).AddItem(context.Background(), "p1", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Get(b).Lines()) != 0 {
		t.Fatalf("expected session b cart to stay empty")
	}

	m.Close(a)
	if m.Get(a) != nil {
		t.Fatalf("expected closed session to be gone")
	}
}
