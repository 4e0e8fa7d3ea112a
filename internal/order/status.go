package order

import "fmt"

// Status is the lifecycle stage of a placed order. Transitions are
// forward-only and owner-triggered; there is no cancellation state.
type Status string

const (
	StatusReceived  Status = "received"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusStarted, StatusCompleted:
		return true
	}
	return false
}

// Next returns the stage that follows s, or s itself when the order is
// already completed.
func Next(s Status) Status {
	switch s {
	case StatusReceived:
		return StatusStarted
	case StatusStarted:
		return StatusCompleted
	}
	return s
}

// CanTransition reports whether moving from one status to the next is
// allowed. Only the single forward step is; there is no going back and
// no skipping a stage.
func CanTransition(from, to Status) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("unknown order status %q -> %q", from, to)
	}
	if Next(from) != to || from == to {
		return fmt.Errorf("cannot move order from %q to %q", from, to)
	}
	return nil
}

// NotificationMessage is the customer-facing text sent when an order
// reaches the given stage.
func NotificationMessage(orderID string, s Status) string {
	switch s {
	case StatusStarted:
		return fmt.Sprintf("Your order %s is being prepared.", orderID)
	case StatusCompleted:
		return fmt.Sprintf("Your order %s is ready for pickup!", orderID)
	}
	return fmt.Sprintf("We received your order %s.", orderID)
}
