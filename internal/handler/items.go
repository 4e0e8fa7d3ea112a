package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
)

// MenuItemStore defines the catalog methods needed by menu item
// handlers. Satisfied by *store.Postgres and *store.Memory.
type MenuItemStore interface {
	ListMenuItems(ctx context.Context) ([]menu.MenuItem, error)
	CreateMenuItem(ctx context.Context, it menu.MenuItem) (menu.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, it menu.MenuItem) (menu.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

// MenuItemHandler handles menu item CRUD endpoints.
type MenuItemHandler struct {
	store MenuItemStore
}

// NewMenuItemHandler creates a new MenuItemHandler.
func NewMenuItemHandler(store MenuItemStore) *MenuItemHandler {
	return &MenuItemHandler{store: store}
}

// RegisterPublicRoutes registers the unauthenticated read endpoints.
func (h *MenuItemHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// RegisterOwnerRoutes registers the privileged mutation endpoints.
func (h *MenuItemHandler) RegisterOwnerRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List returns every menu item.
func (h *MenuItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMenuItems(r.Context())
	if err != nil {
		writeError(w, "list menu items", err)
		return
	}
	if items == nil {
		items = []menu.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create adds a menu item to an existing category.
func (h *MenuItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menu.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := h.store.CreateMenuItem(r.Context(), req)
	if err != nil {
		writeError(w, "create menu item", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces a menu item. The body carries the full merged record;
// staged diffs are merged client-side before the call.
func (h *MenuItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req menu.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := h.store.UpdateMenuItem(r.Context(), id, req)
	if err != nil {
		writeError(w, "update menu item", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a menu item.
func (h *MenuItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteMenuItem(r.Context(), id); err != nil {
		writeError(w, "delete menu item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
