// Package store provides the Postgres-backed implementation of the
// catalog boundary, plus an in-memory twin for tests and dev mode.
package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/catalog"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/order"
)

//go:embed schema.sql
var schema string

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Postgres implements the catalog boundary over a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ catalog.Service = (*Postgres)(nil)

// NewPostgres connects to the database and applies the schema.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Pool exposes the underlying pool for transactional callers.
func (p *Postgres) Pool() *pgxpool.Pool { return p.pool }

// Close releases the pool.
func (p *Postgres) Close() { p.pool.Close() }

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// --- Categories ---

func (p *Postgres) ListCategories(ctx context.Context) ([]menu.Category, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, translation, icon, ord
		FROM categories
		ORDER BY ord, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []menu.Category
	for rows.Next() {
		var c menu.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Translation, &c.Icon, &c.Order); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	for i := range out {
		ings, err := p.listIngredients(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Ingredients = ings
	}
	return out, nil
}

func (p *Postgres) listIngredients(ctx context.Context, categoryID string) ([]menu.Ingredient, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, is_default, price::text
		FROM ingredients
		WHERE category_id = $1
		ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var out []menu.Ingredient
	for rows.Next() {
		var ing menu.Ingredient
		var price string
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Default, &price); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		if ing.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("ingredient price %q: %w", price, err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

func (p *Postgres) CreateCategory(ctx context.Context, c menu.Category) (menu.Category, error) {
	if c.Translation == "" {
		return menu.Category{}, fmt.Errorf("%w: translation is required", catalog.ErrValidation)
	}
	if !menu.ValidIcon(c.Icon) {
		return menu.Category{}, fmt.Errorf("%w: unknown icon %q", catalog.ErrValidation, c.Icon)
	}
	if c.Name == "" {
		c.Name = menu.Slugify(c.Translation)
	}
	c.ID = uuid.NewString()

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return menu.Category{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO categories (id, name, translation, icon, ord)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Translation, c.Icon, c.Order)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return menu.Category{}, fmt.Errorf("%w: slug %q already exists", catalog.ErrConflict, c.Name)
		}
		return menu.Category{}, fmt.Errorf("create category: %w", err)
	}

	// Placeholder item so the new category renders non-empty.
	_, err = tx.Exec(ctx, `
		INSERT INTO menu_items (id, category, name, translation, price)
		VALUES ($1, $2, 'New item', 'New item', 0)`,
		uuid.NewString(), c.Name)
	if err != nil {
		return menu.Category{}, fmt.Errorf("create placeholder item: %w", err)
	}

	if err := p.replaceIngredients(ctx, tx, c.ID, c.Ingredients); err != nil {
		return menu.Category{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return menu.Category{}, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

func (p *Postgres) UpdateCategory(ctx context.Context, id string, c menu.Category) (menu.Category, error) {
	if c.Icon != "" && !menu.ValidIcon(c.Icon) {
		return menu.Category{}, fmt.Errorf("%w: unknown icon %q", catalog.ErrValidation, c.Icon)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return menu.Category{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE categories
		SET name = COALESCE(NULLIF($2, ''), name),
		    translation = COALESCE(NULLIF($3, ''), translation),
		    icon = COALESCE(NULLIF($4, ''), icon),
		    ord = $5
		WHERE id = $1
		RETURNING id, name, translation, icon, ord`,
		id, c.Name, c.Translation, c.Icon, c.Order)

	var updated menu.Category
	if err := row.Scan(&updated.ID, &updated.Name, &updated.Translation, &updated.Icon, &updated.Order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return menu.Category{}, fmt.Errorf("category %s: %w", id, catalog.ErrNotFound)
		}
		if pgErrCode(err) == pgUniqueViolation {
			return menu.Category{}, fmt.Errorf("%w: slug %q already exists", catalog.ErrConflict, c.Name)
		}
		return menu.Category{}, fmt.Errorf("update category: %w", err)
	}

	if c.Ingredients != nil {
		if err := p.replaceIngredients(ctx, tx, id, c.Ingredients); err != nil {
			return menu.Category{}, err
		}
		updated.Ingredients = c.Ingredients
	}
	if err := tx.Commit(ctx); err != nil {
		return menu.Category{}, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

// replaceIngredients rewrites a category's ingredient list wholesale;
// the list is small and owned exclusively by the category.
func (p *Postgres) replaceIngredients(ctx context.Context, tx pgx.Tx, categoryID string, ings []menu.Ingredient) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ingredients WHERE category_id = $1`, categoryID); err != nil {
		return fmt.Errorf("clear ingredients: %w", err)
	}
	for _, ing := range ings {
		if ing.ID == "" {
			ing.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO ingredients (id, category_id, name, is_default, price)
			VALUES ($1, $2, $3, $4, $5)`,
			ing.ID, categoryID, ing.Name, ing.Default, ing.Price.StringFixed(2))
		if err != nil {
			return fmt.Errorf("insert ingredient: %w", err)
		}
	}
	return nil
}

func (p *Postgres) DeleteCategory(ctx context.Context, id string) error {
	var name string
	err := p.pool.QueryRow(ctx, `SELECT name FROM categories WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("category %s: %w", id, catalog.ErrNotFound)
		}
		return fmt.Errorf("delete category: %w", err)
	}

	var count int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM menu_items WHERE category = $1`, name).Scan(&count); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: category %q still has items", catalog.ErrConflict, name)
	}

	_, err = p.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%w: category %q still has items", catalog.ErrConflict, name)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// --- Menu items ---

const menuItemColumns = `id, category, name, translation, price::text, description, image, meats, sizes, ingredients`

func scanMenuItem(row pgx.Row) (menu.MenuItem, error) {
	var it menu.MenuItem
	var price string
	err := row.Scan(&it.ID, &it.Category, &it.Name, &it.Translation, &price,
		&it.Description, &it.Image, &it.Meats, &it.Sizes, &it.Ingredients)
	if err != nil {
		return menu.MenuItem{}, err
	}
	if it.Price, err = decimal.NewFromString(price); err != nil {
		return menu.MenuItem{}, fmt.Errorf("item price %q: %w", price, err)
	}
	return it, nil
}

func (p *Postgres) ListMenuItems(ctx context.Context) ([]menu.MenuItem, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var out []menu.MenuItem
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (p *Postgres) CreateMenuItem(ctx context.Context, it menu.MenuItem) (menu.MenuItem, error) {
	if it.Name == "" {
		return menu.MenuItem{}, fmt.Errorf("%w: name is required", catalog.ErrValidation)
	}
	if it.Price.IsNegative() {
		return menu.MenuItem{}, fmt.Errorf("%w: price must be >= 0", catalog.ErrValidation)
	}
	it.ID = uuid.NewString()

	_, err := p.pool.Exec(ctx, `
		INSERT INTO menu_items (id, category, name, translation, price, description, image, meats, sizes, ingredients)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.Category, it.Name, it.Translation, it.Price.StringFixed(2),
		it.Description, it.Image, it.Meats, it.Sizes, it.Ingredients)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return menu.MenuItem{}, fmt.Errorf("%w: unknown category %q", catalog.ErrValidation, it.Category)
		}
		return menu.MenuItem{}, fmt.Errorf("create menu item: %w", err)
	}
	return it, nil
}

func (p *Postgres) UpdateMenuItem(ctx context.Context, id string, it menu.MenuItem) (menu.MenuItem, error) {
	if it.Name == "" {
		return menu.MenuItem{}, fmt.Errorf("%w: name is required", catalog.ErrValidation)
	}
	if it.Price.IsNegative() {
		return menu.MenuItem{}, fmt.Errorf("%w: price must be >= 0", catalog.ErrValidation)
	}

	row := p.pool.QueryRow(ctx, `
		UPDATE menu_items
		SET category = $2, name = $3, translation = $4, price = $5,
		    description = $6, image = $7, meats = $8, sizes = $9, ingredients = $10
		WHERE id = $1
		RETURNING `+menuItemColumns,
		id, it.Category, it.Name, it.Translation, it.Price.StringFixed(2),
		it.Description, it.Image, it.Meats, it.Sizes, it.Ingredients)

	updated, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return menu.MenuItem{}, fmt.Errorf("menu item %s: %w", id, catalog.ErrNotFound)
		}
		if pgErrCode(err) == pgForeignKeyViolation {
			return menu.MenuItem{}, fmt.Errorf("%w: unknown category %q", catalog.ErrValidation, it.Category)
		}
		return menu.MenuItem{}, fmt.Errorf("update menu item: %w", err)
	}
	return updated, nil
}

func (p *Postgres) DeleteMenuItem(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %s: %w", id, catalog.ErrNotFound)
	}
	return nil
}

// --- Orders ---

func (p *Postgres) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	if o.OrderID == "" {
		var n int64
		if err := p.pool.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&n); err != nil {
			return order.Order{}, fmt.Errorf("order number: %w", err)
		}
		o.OrderID = fmt.Sprintf("TT-%d", n)
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return order.Order{}, fmt.Errorf("marshal items: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO orders (order_id, phone, items, instructions, total, status, created_at, estimated_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.OrderID, o.Phone, items, o.Instructions, o.Total.StringFixed(2),
		string(o.Status), o.Timestamp, o.EstimatedTime)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return order.Order{}, fmt.Errorf("%w: order %s already exists", catalog.ErrConflict, o.OrderID)
		}
		return order.Order{}, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	var items []byte
	var total, status string
	err := row.Scan(&o.OrderID, &o.Phone, &items, &o.Instructions, &total,
		&status, &o.Timestamp, &o.EstimatedTime)
	if err != nil {
		return order.Order{}, err
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return order.Order{}, fmt.Errorf("order total %q: %w", total, err)
	}
	o.Status = order.Status(status)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("unmarshal items: %w", err)
	}
	return o, nil
}

const orderColumns = `order_id, phone, items, instructions, total::text, status, created_at, estimated_minutes`

func (p *Postgres) queryOrders(ctx context.Context, query string, args ...any) ([]order.Order, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (p *Postgres) ListOrders(ctx context.Context) ([]order.Order, error) {
	return p.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at`)
}

// GetOrder fetches one order by its id. Not part of the public catalog
// boundary; the status-transition service needs the current state.
func (p *Postgres) GetOrder(ctx context.Context, orderID string) (order.Order, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, fmt.Errorf("order %s: %w", orderID, catalog.ErrNotFound)
		}
		return order.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (p *Postgres) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (order.Order, error) {
	row := p.pool.QueryRow(ctx, `
		UPDATE orders SET status = $2 WHERE order_id = $1
		RETURNING `+orderColumns,
		orderID, string(status))

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, fmt.Errorf("order %s: %w", orderID, catalog.ErrNotFound)
		}
		return order.Order{}, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

// SearchOrdersByPhone matches the stored phone as a case-sensitive
// substring; formatting characters are significant.
func (p *Postgres) SearchOrdersByPhone(ctx context.Context, substr string) ([]order.Order, error) {
	pattern := "%" + escapeLike(substr) + "%"
	return p.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE phone LIKE $1
		ORDER BY created_at`, pattern)
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' || s[i] == '_' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// --- Settings ---

func (p *Postgres) GetSetting(ctx context.Context, key string) (string, error) {
	var v string
	err := p.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("setting %q: %w", key, catalog.ErrNotFound)
		}
		return "", fmt.Errorf("get setting: %w", err)
	}
	return v, nil
}

func (p *Postgres) PutSetting(ctx context.Context, key, value string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("put setting: %w", err)
	}
	return nil
}

// --- Owners ---

// Owner is an authenticated menu administrator.
type Owner struct {
	ID           string
	Username     string
	PasswordHash string
}

func (p *Postgres) GetOwnerByUsername(ctx context.Context, username string) (Owner, error) {
	var o Owner
	err := p.pool.QueryRow(ctx, `
		SELECT id, username, password_hash FROM owners WHERE username = $1`,
		username).Scan(&o.ID, &o.Username, &o.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Owner{}, fmt.Errorf("owner %q: %w", username, catalog.ErrNotFound)
		}
		return Owner{}, fmt.Errorf("get owner: %w", err)
	}
	return o, nil
}

func (p *Postgres) CreateOwner(ctx context.Context, username, passwordHash string) (Owner, error) {
	o := Owner{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO owners (id, username, password_hash) VALUES ($1, $2, $3)`,
		o.ID, o.Username, o.PasswordHash)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return Owner{}, fmt.Errorf("%w: username %q taken", catalog.ErrConflict, username)
		}
		return Owner{}, fmt.Errorf("create owner: %w", err)
	}
	return o, nil
}
