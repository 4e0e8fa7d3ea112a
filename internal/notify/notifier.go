// Package notify delivers customer-facing messages when an order moves
// through its lifecycle. Delivery is fire-and-forget: the caller never
// fails a transition because a message could not be sent.
package notify

import "context"

// Notifier sends one message to one phone number.
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, phone, message string) error

func (f Func) Send(ctx context.Context, phone, message string) error {
	return f(ctx, phone, message)
}

// Discard drops every message. Useful in tests.
var Discard = Func(func(context.Context, string, string) error { return nil })
