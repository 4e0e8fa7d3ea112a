// Package client is the HTTP implementation of the catalog boundary.
// The menu editor and owner dashboard run against it in production; in
// tests they run against an in-memory store instead.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/catalog"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/order"
)

// Client talks to the catalog REST API. Zero-value is not usable; call
// New.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

var _ catalog.Service = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithToken sets the owner bearer token sent on every request.
// Privileged endpoints reject requests without one.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorResponse struct {
	Error string `json:"error"`
}

// do performs one request and decodes the response into out (unless out
// is nil). Non-2xx statuses are mapped onto the catalog error classes:
// 400 validation, 404 not found, 409 conflict, everything else
// transport. Network failures are transport too, so staged editor state
// survives an unplugged cable the same way it survives a 502.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail := ""
		var er errorResponse
		if json.NewDecoder(resp.Body).Decode(&er) == nil {
			detail = er.Error
		}
		return fmt.Errorf("%w: %s %s: %s", classify(resp.StatusCode), method, path, detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", catalog.ErrTransport, err)
	}
	return nil
}

func classify(status int) error {
	switch status {
	case http.StatusBadRequest:
		return catalog.ErrValidation
	case http.StatusNotFound:
		return catalog.ErrNotFound
	case http.StatusConflict:
		return catalog.ErrConflict
	default:
		return catalog.ErrTransport
	}
}

// --- Categories ---

func (c *Client) ListCategories(ctx context.Context) ([]menu.Category, error) {
	var out []menu.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat menu.Category) (menu.Category, error) {
	var out menu.Category
	if err := c.do(ctx, http.MethodPost, "/owner/categories", cat, &out); err != nil {
		return menu.Category{}, err
	}
	return out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, cat menu.Category) (menu.Category, error) {
	var out menu.Category
	if err := c.do(ctx, http.MethodPut, "/owner/categories/"+url.PathEscape(id), cat, &out); err != nil {
		return menu.Category{}, err
	}
	return out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/owner/categories/"+url.PathEscape(id), nil, nil)
}

// --- Menu items ---

func (c *Client) ListMenuItems(ctx context.Context) ([]menu.MenuItem, error) {
	var out []menu.MenuItem
	if err := c.do(ctx, http.MethodGet, "/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, it menu.MenuItem) (menu.MenuItem, error) {
	var out menu.MenuItem
	if err := c.do(ctx, http.MethodPost, "/owner/items", it, &out); err != nil {
		return menu.MenuItem{}, err
	}
	return out, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, it menu.MenuItem) (menu.MenuItem, error) {
	var out menu.MenuItem
	if err := c.do(ctx, http.MethodPut, "/owner/items/"+url.PathEscape(id), it, &out); err != nil {
		return menu.MenuItem{}, err
	}
	return out, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/owner/items/"+url.PathEscape(id), nil, nil)
}

// --- Orders ---

func (c *Client) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	var out order.Order
	if err := c.do(ctx, http.MethodPost, "/orders", o, &out); err != nil {
		return order.Order{}, err
	}
	return out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	if err := c.do(ctx, http.MethodGet, "/owner/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type statusRequest struct {
	Status string `json:"status"`
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (order.Order, error) {
	var out order.Order
	path := "/owner/orders/" + url.PathEscape(orderID) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, statusRequest{Status: string(status)}, &out); err != nil {
		return order.Order{}, err
	}
	return out, nil
}

func (c *Client) SearchOrdersByPhone(ctx context.Context, substr string) ([]order.Order, error) {
	var out []order.Order
	path := "/owner/orders/search?phone=" + url.QueryEscape(substr)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Settings ---

type settingPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (c *Client) GetSetting(ctx context.Context, key string) (string, error) {
	var out settingPayload
	if err := c.do(ctx, http.MethodGet, "/settings/"+url.PathEscape(key), nil, &out); err != nil {
		return "", err
	}
	return out.Value, nil
}

func (c *Client) PutSetting(ctx context.Context, key, value string) error {
	body := struct {
		Value string `json:"value"`
	}{Value: value}
	return c.do(ctx, http.MethodPut, "/owner/settings/"+url.PathEscape(key), body, nil)
}

// Login exchanges owner credentials for a bearer token and stores it on
// the client for subsequent privileged calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}
