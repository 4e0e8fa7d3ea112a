package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/handler"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/store"
)

// The in-memory store mirrors the Postgres store's semantics, so it
// doubles as the mock for every handler test.

func setupCategoryRouter(mem *store.Memory) *chi.Mux {
	h := handler.NewCategoryHandler(mem)
	r := chi.NewRouter()
	r.Route("/categories", h.RegisterPublicRoutes)
	r.Route("/owner/categories", h.RegisterOwnerRoutes)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeObject(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func mustCreateCategory(t *testing.T, mem *store.Memory, translation, icon string) menu.Category {
	t.Helper()
	c, err := mem.CreateCategory(context.Background(), menu.Category{Translation: translation, Icon: icon})
	if err != nil {
		t.Fatalf("create category %q: %v", translation, err)
	}
	return c
}

// --- List tests ---

func TestCategoryList_Empty(t *testing.T) {
	router := setupCategoryRouter(store.NewMemory())

	rr := doRequest(t, router, "GET", "/categories", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if resp := decodeList(t, rr); len(resp) != 0 {
		t.Errorf("expected empty list, got %d items", len(resp))
	}
}

func TestCategoryList_SortedByOrder(t *testing.T) {
	mem := store.NewMemory()
	first := mustCreateCategory(t, mem, "Tacos", menu.IconFood)
	second := mustCreateCategory(t, mem, "Drinks", menu.IconDrink)
	first.Order = 1
	second.Order = 0
	if _, err := mem.UpdateCategory(context.Background(), first.ID, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := mem.UpdateCategory(context.Background(), second.ID, second); err != nil {
		t.Fatalf("update: %v", err)
	}

	router := setupCategoryRouter(mem)
	rr := doRequest(t, router, "GET", "/categories", nil)

	resp := decodeList(t, rr)
	if len(resp) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(resp))
	}
	if resp[0]["name"] != "drinks" || resp[1]["name"] != "tacos" {
		t.Errorf("order: got [%v %v], want [drinks tacos]", resp[0]["name"], resp[1]["name"])
	}
}

// --- Create tests ---

func TestCategoryCreate_DerivesSlug(t *testing.T) {
	mem := store.NewMemory()
	router := setupCategoryRouter(mem)

	rr := doRequest(t, router, "POST", "/owner/categories", map[string]interface{}{
		"translation": "Fresh Juices",
		"icon":        "drink",
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	resp := decodeObject(t, rr)
	if resp["name"] != "fresh_juices" {
		t.Errorf("name: got %v, want fresh_juices", resp["name"])
	}
	if resp["id"] == "" {
		t.Error("expected a generated id")
	}

	// A fresh category gets a placeholder item so it renders non-empty.
	items, err := mem.ListMenuItems(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].Category != "fresh_juices" {
		t.Errorf("placeholder items: got %+v", items)
	}
}

func TestCategoryCreate_MissingTranslation(t *testing.T) {
	router := setupCategoryRouter(store.NewMemory())

	rr := doRequest(t, router, "POST", "/owner/categories", map[string]interface{}{
		"icon": "food",
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d; body: %s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}
}

func TestCategoryCreate_UnknownIcon(t *testing.T) {
	router := setupCategoryRouter(store.NewMemory())

	rr := doRequest(t, router, "POST", "/owner/categories", map[string]interface{}{
		"translation": "Tacos",
		"icon":        "spaceship",
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCategoryCreate_DuplicateSlug(t *testing.T) {
	mem := store.NewMemory()
	mustCreateCategory(t, mem, "Tacos", menu.IconFood)
	router := setupCategoryRouter(mem)

	rr := doRequest(t, router, "POST", "/owner/categories", map[string]interface{}{
		"translation": "Tacos",
		"icon":        "food",
	})

	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d; body: %s", rr.Code, http.StatusConflict, rr.Body.String())
	}
}

func TestCategoryCreate_InvalidBody(t *testing.T) {
	router := setupCategoryRouter(store.NewMemory())

	rr := doRequest(t, router, "POST", "/owner/categories", "not json")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Update tests ---

func TestCategoryUpdate_Valid(t *testing.T) {
	mem := store.NewMemory()
	created := mustCreateCategory(t, mem, "Tacos", menu.IconFood)
	router := setupCategoryRouter(mem)

	rr := doRequest(t, router, "PUT", "/owner/categories/"+created.ID, map[string]interface{}{
		"name":        created.Name,
		"translation": "Street Tacos",
		"icon":        "food",
		"order":       3,
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeObject(t, rr)
	if resp["translation"] != "Street Tacos" {
		t.Errorf("translation: got %v, want 'Street Tacos'", resp["translation"])
	}
	if resp["order"] != float64(3) {
		t.Errorf("order: got %v, want 3", resp["order"])
	}
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	router := setupCategoryRouter(store.NewMemory())

	rr := doRequest(t, router, "PUT", "/owner/categories/no-such-id", map[string]interface{}{
		"translation": "Whatever",
	})

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

// --- Delete tests ---

func TestCategoryDelete_WithItemsIsConflict(t *testing.T) {
	mem := store.NewMemory()
	created := mustCreateCategory(t, mem, "Tacos", menu.IconFood)
	router := setupCategoryRouter(mem)

	rr := doRequest(t, router, "DELETE", "/owner/categories/"+created.ID, nil)

	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d; body: %s", rr.Code, http.StatusConflict, rr.Body.String())
	}
}

func TestCategoryDelete_Empty(t *testing.T) {
	mem := store.NewMemory()
	created := mustCreateCategory(t, mem, "Tacos", menu.IconFood)

	items, err := mem.ListMenuItems(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	for _, it := range items {
		if err := mem.DeleteMenuItem(context.Background(), it.ID); err != nil {
			t.Fatalf("delete item: %v", err)
		}
	}

	router := setupCategoryRouter(mem)
	rr := doRequest(t, router, "DELETE", "/owner/categories/"+created.ID, nil)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}

	cats, err := mem.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 0 {
		t.Errorf("expected no categories left, got %d", len(cats))
	}
}

func TestCategoryDelete_NotFound(t *testing.T) {
	router := setupCategoryRouter(store.NewMemory())

	rr := doRequest(t, router, "DELETE", "/owner/categories/no-such-id", nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}
