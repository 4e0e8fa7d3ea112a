package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/cart"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/order"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/service"
)

// OrderPlacer places and advances orders with business validation.
// Satisfied by *service.OrderService.
type OrderPlacer interface {
	Place(ctx context.Context, req service.PlaceOrderRequest) (order.Order, error)
	Advance(ctx context.Context, orderID string, to order.Status) (order.Order, error)
}

// OrderQueryStore defines the read methods for the owner dashboard.
type OrderQueryStore interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
	SearchOrdersByPhone(ctx context.Context, substr string) ([]order.Order, error)
}

// OrderHandler handles order placement and the owner's dashboard
// queries.
type OrderHandler struct {
	placer OrderPlacer
	store  OrderQueryStore
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(placer OrderPlacer, store OrderQueryStore) *OrderHandler {
	return &OrderHandler{placer: placer, store: store}
}

// RegisterPublicRoutes registers the customer-facing endpoint.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/", h.Create)
}

// RegisterOwnerRoutes registers the privileged dashboard endpoints.
func (h *OrderHandler) RegisterOwnerRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request types ---

type createOrderRequest struct {
	Phone         string      `json:"phone"`
	Items         []cart.Item `json:"items"`
	Instructions  string      `json:"instructions"`
	EstimatedTime int         `json:"estimatedTime"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// --- Handlers ---

// Create places a customer order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	placed, err := h.placer.Place(r.Context(), service.PlaceOrderRequest{
		Phone:         req.Phone,
		Items:         req.Items,
		Instructions:  req.Instructions,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		writeError(w, "create order", err)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

// List returns orders for the dashboard. With ?view=current only
// in-progress orders are returned; with ?view=completed the most
// recent completed ones, capped by ?limit (default 50).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		writeError(w, "list orders", err)
		return
	}

	switch r.URL.Query().Get("view") {
	case "current":
		orders = order.FilterCurrent(orders)
	case "completed":
		limit := 50
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
				return
			}
			limit = n
		}
		orders = order.FilterCompleted(orders, limit)
	}

	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// Search looks orders up by phone substring. The match is
// case-sensitive and formatting-significant so partial-number lookup
// works the way the dashboard expects.
func (h *OrderHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("phone")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "phone query is required"})
		return
	}

	orders, err := h.store.SearchOrdersByPhone(r.Context(), q)
	if err != nil {
		writeError(w, "search orders", err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus advances an order one lifecycle step.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	status := order.Status(req.Status)
	if !status.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	updated, err := h.placer.Advance(r.Context(), orderID, status)
	if err != nil {
		writeError(w, "update order status", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
