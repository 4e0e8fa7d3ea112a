// Package catalog defines the service boundary the menu editor, cart
// and owner views talk to, together with the error taxonomy every
// implementation maps onto.
package catalog

import (
	"context"
	"errors"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/order"
)

// Failure classes. Implementations wrap these with detail via %w so
// callers can branch with errors.Is.
var (
	// ErrValidation marks a malformed or missing required field. Staged
	// edits survive it; the UI surfaces it inline.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an entity deleted by another session. Staged
	// edits for it are discarded; there is nothing to commit to.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an operation blocked by current state, e.g.
	// deleting a category that still has items.
	ErrConflict = errors.New("conflict")

	// ErrTransport marks a network or server failure. Retryable; staged
	// edits must be preserved.
	ErrTransport = errors.New("transport failure")
)

// Service is the catalog boundary: menu content, orders and settings.
// Updates carry the full merged record; the server replaces, it does
// not patch. Privileged operations (everything except the public list
// calls and CreateOrder) require owner authorization, which the
// environment provides — implementations do not authenticate.
type Service interface {
	ListCategories(ctx context.Context) ([]menu.Category, error)
	CreateCategory(ctx context.Context, c menu.Category) (menu.Category, error)
	UpdateCategory(ctx context.Context, id string, c menu.Category) (menu.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListMenuItems(ctx context.Context) ([]menu.MenuItem, error)
	CreateMenuItem(ctx context.Context, it menu.MenuItem) (menu.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, it menu.MenuItem) (menu.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error

	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (order.Order, error)
	SearchOrdersByPhone(ctx context.Context, substr string) ([]order.Order, error)

	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}
