package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
)

// CategoryStore defines the catalog methods needed by category
// handlers. Satisfied by *store.Postgres and *store.Memory; narrow
// interface for testability.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]menu.Category, error)
	CreateCategory(ctx context.Context, c menu.Category) (menu.Category, error)
	UpdateCategory(ctx context.Context, id string, c menu.Category) (menu.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryHandler handles category CRUD endpoints.
type CategoryHandler struct {
	store CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(store CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// RegisterPublicRoutes registers the unauthenticated read endpoints.
func (h *CategoryHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// RegisterOwnerRoutes registers the privileged mutation endpoints.
func (h *CategoryHandler) RegisterOwnerRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List returns every category in display order, ingredients included.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		writeError(w, "list categories", err)
		return
	}
	if categories == nil {
		categories = []menu.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Create adds a new category. The slug is derived server-side when the
// client does not send one.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menu.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := h.store.CreateCategory(r.Context(), req)
	if err != nil {
		writeError(w, "create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces a category's fields.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req menu.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := h.store.UpdateCategory(r.Context(), id, req)
	if err != nil {
		writeError(w, "update category", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an empty category. A category that still has items is
// a conflict, not a cascade.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, "delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
