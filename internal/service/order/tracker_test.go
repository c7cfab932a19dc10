package order

import (
	"testing"

	"storefront/internal/domain"
)

func TestStatusIndex(t *testing.T) {
	cases := []struct {
		status string
		want   int
	}{
		{domain.StatusConfirmed, 0},
		{domain.StatusShipped, 1},
		{domain.StatusOutForDelivery, 2},
		{domain.StatusDelivered, 3},
		{"Lost In Transit", -1},
		{"", -1},
	}
	for _, c := range cases {
		if got := StatusIndex(c.status); got != c.want {
			t.Fatalf("StatusIndex(%q) = %d, want %d", c.status, got, c.want)
		}
	}
}

func TestTrackingStepsShipped(t *testing.T) {
	steps := TrackingSteps(domain.StatusShipped)
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}
	wantCompleted := []bool{true, true, false, false}
	for i, step := range steps {
		if step.Completed != wantCompleted[i] {
			t.Fatalf("step %d (%s): completed=%v, want %v", i, step.Status, step.Completed, wantCompleted[i])
		}
	}
}

func TestTrackingStepsDelivered(t *testing.T) {
	for _, step := range TrackingSteps(domain.StatusDelivered) {
		if !step.Completed {
			t.Fatalf("expected every step completed for delivered order, %s is not", step.Status)
		}
	}
}

func TestTrackingStepsUnknownStatus(t *testing.T) {
	for _, step := range TrackingSteps("Lost In Transit") {
		if step.Completed {
			t.Fatalf("expected no step completed for unknown status, %s is", step.Status)
		}
	}
}

func TestCanCancel(t *testing.T) {
	if !CanCancel(domain.StatusConfirmed) {
		t.Fatalf("expected confirmed order to be cancellable")
	}
	for _, status := range []string{domain.StatusShipped, domain.StatusOutForDelivery, domain.StatusDelivered, "Lost In Transit"} {
		if CanCancel(status) {
			t.Fatalf("expected %q not to be cancellable", status)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(domain.StatusDelivered) {
		t.Fatalf("expected delivered to be terminal")
	}
	if IsTerminal(domain.StatusOutForDelivery) {
		t.Fatalf("expected out-for-delivery not to be terminal")
	}
}
