package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SettingsStore defines the opaque key-value methods for branding and
// theme settings.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}

// SettingsHandler handles the key-value settings endpoints.
type SettingsHandler struct {
	store SettingsStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// RegisterPublicRoutes registers the unauthenticated read endpoint;
// branding text is needed before login.
func (h *SettingsHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/{key}", h.Get)
}

// RegisterOwnerRoutes registers the privileged write endpoint.
func (h *SettingsHandler) RegisterOwnerRoutes(r chi.Router) {
	r.Put("/{key}", h.Put)
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type putSettingRequest struct {
	Value string `json:"value"`
}

// Get returns one setting by key.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.store.GetSetting(r.Context(), key)
	if err != nil {
		writeError(w, "get setting", err)
		return
	}
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

// Put creates or replaces one setting.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req putSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.store.PutSetting(r.Context(), key, req.Value); err != nil {
		writeError(w, "put setting", err)
		return
	}
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: req.Value})
}
