package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/auth"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/catalog"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/store"
)

// OwnerStore defines the storage methods needed by the auth handler.
type OwnerStore interface {
	GetOwnerByUsername(ctx context.Context, username string) (store.Owner, error)
}

// AuthHandler handles owner login.
type AuthHandler struct {
	store     OwnerStore
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store OwnerStore, jwtSecret string) *AuthHandler {
	return &AuthHandler{store: store, jwtSecret: jwtSecret}
}

// RegisterRoutes registers the public auth endpoints.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login verifies owner credentials and issues a bearer token. Unknown
// usernames and bad passwords get the same answer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	owner, err := h.store.GetOwnerByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		writeError(w, "login", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, owner.ID, owner.Username)
	if err != nil {
		writeError(w, "generate token", err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: owner.Username})
}
