// Package cart models the customer's in-session cart: a sequence of
// configured menu item lines, each priced at the moment it was added.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
)

// Item is one cart line, derived from a MenuItem at customization time.
// Display fields are copied so later menu edits never alter the line.
// CartID is unique even across repeated additions of the same
// item+configuration; the cart is a sequence, not a set.
type Item struct {
	CartID      string          `json:"cartId"`
	ItemID      string          `json:"itemId"`
	Name        string          `json:"name"`
	Translation string          `json:"translation"`
	Image       string          `json:"image,omitempty"`
	Meat        string          `json:"meat,omitempty"`
	Size        string          `json:"size,omitempty"`
	Ingredients []string        `json:"ingredients,omitempty"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// Cart is an ordered list of lines.
type Cart struct {
	lines []Item
}

// New derives a cart line from a menu item and the customer's
// configuration, pricing it against the category's ingredient catalog.
func New(item menu.MenuItem, meat, size string, selected map[string]bool, catalog []menu.Ingredient, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}

	var names []string
	for _, ing := range catalog {
		if selected[ing.ID] {
			names = append(names, ing.Name)
		}
	}

	unit := menu.UnitPrice(item, selected, catalog)
	return Item{
		CartID:      uuid.NewString(),
		ItemID:      item.ID,
		Name:        item.Name,
		Translation: item.Translation,
		Image:       item.Image,
		Meat:        meat,
		Size:        size,
		Ingredients: names,
		Quantity:    quantity,
		TotalPrice:  unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Add appends a line to the cart.
func (c *Cart) Add(line Item) {
	c.lines = append(c.lines, line)
}

// Lines returns the cart's lines in order.
func (c *Cart) Lines() []Item {
	return c.lines
}

// Total sums every line's total price.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.TotalPrice)
	}
	return total
}

// SetQuantity changes a line's quantity, re-deriving its total from the
// line's own per-unit price rather than from the live catalog, so a
// price edit mid-session never reprices an already-added line. A
// quantity of zero (or less) removes the line.
func (c *Cart) SetQuantity(cartID string, quantity int) {
	for i, l := range c.lines {
		if l.CartID != cartID {
			continue
		}
		if quantity < 1 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
		unit := l.TotalPrice.Div(decimal.NewFromInt(int64(l.Quantity)))
		c.lines[i].Quantity = quantity
		c.lines[i].TotalPrice = unit.Mul(decimal.NewFromInt(int64(quantity)))
		return
	}
}

// Remove deletes a line by cart id. Unknown ids are a no-op.
func (c *Cart) Remove(cartID string) {
	for i, l := range c.lines {
		if l.CartID == cartID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart, e.g. after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}
