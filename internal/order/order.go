// Package order holds the placed-order model and its status lifecycle.
package order

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/cart"
)

// Order is a placed order. Items are frozen copies of the cart lines at
// checkout; later menu edits never retroactively alter them. Only
// Status is mutable after creation, and only by the owner.
type Order struct {
	OrderID       string          `json:"orderId"`
	Phone         string          `json:"phone"`
	Items         []cart.Item     `json:"items"`
	Instructions  string          `json:"instructions,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Status        Status          `json:"status"`
	Timestamp     time.Time       `json:"timestamp"`
	EstimatedTime int             `json:"estimatedTime"`
}

// FilterCurrent returns every order still in progress (status other
// than completed), oldest first.
func FilterCurrent(orders []Order) []Order {
	var out []Order
	for _, o := range orders {
		if o.Status != StatusCompleted {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// FilterCompleted returns completed orders, newest first, capped to
// limit when limit > 0.
func FilterCompleted(orders []Order, limit int) []Order {
	var out []Order
	for _, o := range orders {
		if o.Status == StatusCompleted {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SearchByPhone matches orders whose stored phone contains the query as
// a case-sensitive substring. Formatting is significant; callers rely
// on partial-number lookup, so this is substring, not exact match.
func SearchByPhone(orders []Order, query string) []Order {
	var out []Order
	for _, o := range orders {
		if strings.Contains(o.Phone, query) {
			out = append(out, o)
		}
	}
	return out
}
