package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/catalog"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/order"
)

// Memory is a mutex-guarded in-memory implementation of the catalog
// boundary, used by tests and by dev mode. Semantics match the Postgres
// store: same sentinels, same uniqueness and conflict rules.
type Memory struct {
	mu         sync.Mutex
	categories map[string]menu.Category
	items      map[string]menu.MenuItem
	orders     map[string]order.Order
	settings   map[string]string
	owners     map[string]Owner
	orderSeq   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		categories: make(map[string]menu.Category),
		items:      make(map[string]menu.MenuItem),
		orders:     make(map[string]order.Order),
		settings:   make(map[string]string),
		owners:     make(map[string]Owner),
	}
}

var _ catalog.Service = (*Memory)(nil)

func (m *Memory) ListCategories(context.Context) ([]menu.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]menu.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) CreateCategory(_ context.Context, c menu.Category) (menu.Category, error) {
	if strings.TrimSpace(c.Translation) == "" {
		return menu.Category{}, fmt.Errorf("%w: translation is required", catalog.ErrValidation)
	}
	if !menu.ValidIcon(c.Icon) {
		return menu.Category{}, fmt.Errorf("%w: unknown icon %q", catalog.ErrValidation, c.Icon)
	}
	if c.Name == "" {
		c.Name = menu.Slugify(c.Translation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return menu.Category{}, fmt.Errorf("%w: slug %q already exists", catalog.ErrConflict, c.Name)
		}
	}

	c.ID = uuid.NewString()
	m.categories[c.ID] = c

	// A new category starts with a placeholder item so it renders
	// non-empty in the customer menu.
	placeholder := menu.MenuItem{
		ID:          uuid.NewString(),
		Category:    c.Name,
		Name:        "New item",
		Translation: "New item",
	}
	m.items[placeholder.ID] = placeholder

	return c, nil
}

func (m *Memory) UpdateCategory(_ context.Context, id string, c menu.Category) (menu.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.categories[id]
	if !ok {
		return menu.Category{}, fmt.Errorf("category %s: %w", id, catalog.ErrNotFound)
	}
	if c.Icon != "" && !menu.ValidIcon(c.Icon) {
		return menu.Category{}, fmt.Errorf("%w: unknown icon %q", catalog.ErrValidation, c.Icon)
	}

	// Same partial-update semantics as the SQL store's COALESCE/NULLIF:
	// empty strings keep the stored value, a nil ingredient list keeps
	// the stored list, the order is always replaced.
	c.ID = id
	if c.Name == "" {
		c.Name = existing.Name
	}
	if c.Translation == "" {
		c.Translation = existing.Translation
	}
	if c.Icon == "" {
		c.Icon = existing.Icon
	}
	if c.Ingredients == nil {
		c.Ingredients = existing.Ingredients
	}
	if c.Name != existing.Name {
		for _, other := range m.categories {
			if other.ID != id && other.Name == c.Name {
				return menu.Category{}, fmt.Errorf("%w: slug %q already exists", catalog.ErrConflict, c.Name)
			}
		}
	}
	m.categories[id] = c
	return c, nil
}

func (m *Memory) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.categories[id]
	if !ok {
		return fmt.Errorf("category %s: %w", id, catalog.ErrNotFound)
	}
	for _, it := range m.items {
		if it.Category == c.Name {
			return fmt.Errorf("%w: category %q still has items", catalog.ErrConflict, c.Name)
		}
	}
	delete(m.categories, id)
	return nil
}

func (m *Memory) ListMenuItems(context.Context) ([]menu.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]menu.MenuItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateMenuItem(_ context.Context, it menu.MenuItem) (menu.MenuItem, error) {
	if strings.TrimSpace(it.Name) == "" {
		return menu.MenuItem{}, fmt.Errorf("%w: name is required", catalog.ErrValidation)
	}
	if it.Price.IsNegative() {
		return menu.MenuItem{}, fmt.Errorf("%w: price must be >= 0", catalog.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.categoryNameExists(it.Category) {
		return menu.MenuItem{}, fmt.Errorf("%w: unknown category %q", catalog.ErrValidation, it.Category)
	}
	it.ID = uuid.NewString()
	m.items[it.ID] = it
	return it, nil
}

func (m *Memory) UpdateMenuItem(_ context.Context, id string, it menu.MenuItem) (menu.MenuItem, error) {
	if strings.TrimSpace(it.Name) == "" {
		return menu.MenuItem{}, fmt.Errorf("%w: name is required", catalog.ErrValidation)
	}
	if it.Price.IsNegative() {
		return menu.MenuItem{}, fmt.Errorf("%w: price must be >= 0", catalog.ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return menu.MenuItem{}, fmt.Errorf("menu item %s: %w", id, catalog.ErrNotFound)
	}
	if !m.categoryNameExists(it.Category) {
		return menu.MenuItem{}, fmt.Errorf("%w: unknown category %q", catalog.ErrValidation, it.Category)
	}
	it.ID = id
	m.items[id] = it
	return it, nil
}

func (m *Memory) DeleteMenuItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("menu item %s: %w", id, catalog.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func (m *Memory) categoryNameExists(name string) bool {
	for _, c := range m.categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (m *Memory) CreateOrder(_ context.Context, o order.Order) (order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if o.OrderID == "" {
		m.orderSeq++
		o.OrderID = fmt.Sprintf("TT-%d", m.orderSeq)
	}
	if _, ok := m.orders[o.OrderID]; ok {
		return order.Order{}, fmt.Errorf("%w: order %s already exists", catalog.ErrConflict, o.OrderID)
	}
	m.orders[o.OrderID] = o
	return o, nil
}

func (m *Memory) ListOrders(context.Context) ([]order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]order.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// GetOrder fetches one order by its id. Not part of the public catalog
// boundary; the status-transition service needs the current state.
func (m *Memory) GetOrder(_ context.Context, orderID string) (order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[orderID]
	if !ok {
		return order.Order{}, fmt.Errorf("order %s: %w", orderID, catalog.ErrNotFound)
	}
	return o, nil
}

func (m *Memory) UpdateOrderStatus(_ context.Context, orderID string, status order.Status) (order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[orderID]
	if !ok {
		return order.Order{}, fmt.Errorf("order %s: %w", orderID, catalog.ErrNotFound)
	}
	o.Status = status
	m.orders[orderID] = o
	return o, nil
}

func (m *Memory) SearchOrdersByPhone(ctx context.Context, substr string) ([]order.Order, error) {
	all, err := m.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return order.SearchByPhone(all, substr), nil
}

func (m *Memory) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.settings[key]
	if !ok {
		return "", fmt.Errorf("setting %q: %w", key, catalog.ErrNotFound)
	}
	return v, nil
}

func (m *Memory) PutSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings[key] = value
	return nil
}

func (m *Memory) GetOwnerByUsername(_ context.Context, username string) (Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.owners[username]
	if !ok {
		return Owner{}, fmt.Errorf("owner %q: %w", username, catalog.ErrNotFound)
	}
	return o, nil
}

func (m *Memory) CreateOwner(_ context.Context, username, passwordHash string) (Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.owners[username]; ok {
		return Owner{}, fmt.Errorf("%w: username %q taken", catalog.ErrConflict, username)
	}
	o := Owner{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash}
	m.owners[username] = o
	return o, nil
}
