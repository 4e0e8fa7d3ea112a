// Package service holds the order business logic behind the HTTP
// handlers: placement validation and the status lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/cart"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/catalog"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/notify"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/order"
)

const defaultEstimatedMinutes = 20

// Errors returned by the order service.
var (
	ErrEmptyItems      = fmt.Errorf("%w: items are required", catalog.ErrValidation)
	ErrMissingPhone    = fmt.Errorf("%w: phone is required", catalog.ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be >= 1", catalog.ErrValidation)
	ErrInvalidTotal    = fmt.Errorf("%w: line total must be >= 0", catalog.ErrValidation)
)

// OrderStore defines the storage methods the service needs. Satisfied
// by *store.Postgres and *store.Memory.
type OrderStore interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
	GetOrder(ctx context.Context, orderID string) (order.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (order.Order, error)
}

// OrderService validates and places orders and advances their status.
type OrderService struct {
	store    OrderStore
	notifier notify.Notifier
	now      func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(store OrderStore, notifier notify.Notifier) *OrderService {
	return &OrderService{store: store, notifier: notifier, now: time.Now}
}

// PlaceOrderRequest is the validated input for placing an order.
type PlaceOrderRequest struct {
	Phone         string
	Items         []cart.Item
	Instructions  string
	EstimatedTime int
}

// Place validates the request, freezes the cart lines into an order and
// persists it. The order id and timestamp are assigned here, once; the
// timestamp never changes afterwards.
func (s *OrderService) Place(ctx context.Context, req PlaceOrderRequest) (order.Order, error) {
	if req.Phone == "" {
		return order.Order{}, ErrMissingPhone
	}
	if len(req.Items) == 0 {
		return order.Order{}, ErrEmptyItems
	}

	total := decimal.Zero
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return order.Order{}, ErrInvalidQuantity
		}
		if line.TotalPrice.IsNegative() {
			return order.Order{}, ErrInvalidTotal
		}
		total = total.Add(line.TotalPrice)
	}

	estimated := req.EstimatedTime
	if estimated <= 0 {
		estimated = defaultEstimatedMinutes
	}

	placed, err := s.store.CreateOrder(ctx, order.Order{
		Phone:         req.Phone,
		Items:         req.Items,
		Instructions:  req.Instructions,
		Total:         total,
		Status:        order.StatusReceived,
		Timestamp:     s.now(),
		EstimatedTime: estimated,
	})
	if err != nil {
		return order.Order{}, fmt.Errorf("place order: %w", err)
	}

	s.notifyAsync(placed)
	return placed, nil
}

// Advance moves an order one step forward in its lifecycle. The
// transition is validated against the current stored status; anything
// but the single forward step is a conflict. On success the customer is
// notified, fire and forget.
func (s *OrderService) Advance(ctx context.Context, orderID string, to order.Status) (order.Order, error) {
	current, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}
	if err := order.CanTransition(current.Status, to); err != nil {
		return order.Order{}, fmt.Errorf("%w: %v", catalog.ErrConflict, err)
	}

	updated, err := s.store.UpdateOrderStatus(ctx, orderID, to)
	if err != nil {
		return order.Order{}, fmt.Errorf("advance order %s: %w", orderID, err)
	}

	s.notifyAsync(updated)
	return updated, nil
}

// notifyAsync dispatches the stage message without blocking the caller.
// Delivery failure is logged, never surfaced: the transition already
// happened.
func (s *OrderService) notifyAsync(o order.Order) {
	if s.notifier == nil {
		return
	}
	msg := order.NotificationMessage(o.OrderID, o.Status)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.Send(ctx, o.Phone, msg); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("ERROR: notify %s for order %s: %v", o.Phone, o.OrderID, err)
		}
	}()
}
