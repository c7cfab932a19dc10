package pricing

import "testing"

func centsPtr(v int64) *int64 { return &v }

func TestEffectiveUnitPriceUsesLowerOffer(t *testing.T) {
	got := EffectiveUnitPriceCents(10000, centsPtr(8000))
	if got != 8000 {
		t.Fatalf("expected 8000, got %d", got)
	}
}

func TestEffectiveUnitPriceIgnoresHigherOffer(t *testing.T) {
	got := EffectiveUnitPriceCents(10000, centsPtr(12000))
	if got != 10000 {
		t.Fatalf("expected 10000, got %d", got)
	}
}

func TestEffectiveUnitPriceIgnoresEqualOffer(t *testing.T) {
	got := EffectiveUnitPriceCents(10000, centsPtr(10000))
	if got != 10000 {
		t.Fatalf("expected 10000, got %d", got)
	}
}

func TestEffectiveUnitPriceWithoutOffer(t *testing.T) {
	got := EffectiveUnitPriceCents(10000, nil)
	if got != 10000 {
		t.Fatalf("expected 10000, got %d", got)
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotalCents(2599, 3); got != 7797 {
		t.Fatalf("expected 7797, got %d", got)
	}
	if got := LineTotalCents(2599, 0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
