package order

import "storefront/internal/domain"

// progression is the fixed forward-only status sequence an order moves
// through. Cancellation is not part of it; a cancelled order is deleted.
var progression = []string{
	domain.StatusConfirmed,
	domain.StatusShipped,
	domain.StatusOutForDelivery,
	domain.StatusDelivered,
}

// TrackingStep is one entry of the rendered tracking view.
type TrackingStep struct {
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
}

// StatusIndex returns the position of status in the progression, or -1 when
// the status is not a known progression entry.
func StatusIndex(status string) int {
	for i, s := range progression {
		if s == status {
			return i
		}
	}
	return -1
}

// TrackingSteps renders the four-step view for an order's status. A step is
// completed iff its position is at or before the order's position; an unknown
// status therefore renders every step incomplete rather than failing.
func TrackingSteps(status string) []TrackingStep {
	current := StatusIndex(status)
	steps := make([]TrackingStep, len(progression))
	for i, s := range progression {
		steps[i] = TrackingStep{Status: s, Completed: i <= current}
	}
	return steps
}

// CanCancel reports whether a buyer may still cancel: only before the order
// has left the first stage.
func CanCancel(status string) bool {
	return status == domain.StatusConfirmed
}

// IsTerminal reports whether no further transitions leave the status.
func IsTerminal(status string) bool {
	return status == domain.StatusDelivered
}
