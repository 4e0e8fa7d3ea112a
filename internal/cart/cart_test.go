package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func testItem(t *testing.T) (menu.MenuItem, []menu.Ingredient) {
	t.Helper()
	item := menu.MenuItem{
		ID:          "item-1",
		Category:    "tacos",
		Name:        "Taco al Pastor",
		Translation: "Pork Taco",
		Price:       dec(t, "3.50"),
	}
	catalog := []menu.Ingredient{
		{ID: "a", Name: "Onions", Default: true, Price: decimal.Zero},
		{ID: "b", Name: "Queso", Default: false, Price: dec(t, "1.00")},
	}
	return item, catalog
}

func TestNew_SnapshotsAndPrices(t *testing.T) {
	item, catalog := testItem(t)

	line := New(item, "pastor", "", map[string]bool{"a": true, "b": true}, catalog, 2)

	if line.CartID == "" {
		t.Error("expected a cart id")
	}
	if line.ItemID != "item-1" || line.Name != "Taco al Pastor" {
		t.Errorf("display fields not copied: %+v", line)
	}
	if want := dec(t, "9.00"); !line.TotalPrice.Equal(want) {
		t.Errorf("total: got %s, want %s", line.TotalPrice, want)
	}
	if len(line.Ingredients) != 2 {
		t.Errorf("selected ingredient names: got %v", line.Ingredients)
	}
}

func TestNew_UniqueCartIDs(t *testing.T) {
	item, catalog := testItem(t)
	a := New(item, "", "", nil, catalog, 1)
	b := New(item, "", "", nil, catalog, 1)
	if a.CartID == b.CartID {
		t.Fatal("identical configurations must still get distinct cart ids")
	}
}

func TestSetQuantity_ProportionalReprice(t *testing.T) {
	item, catalog := testItem(t)

	var c Cart
	line := New(item, "", "", map[string]bool{"b": true}, catalog, 2) // 4.50/unit
	c.Add(line)

	// Catalog price changes mid-session must not affect the line.
	catalog[1].Price = dec(t, "5.00")

	c.SetQuantity(line.CartID, 3)
	got := c.Lines()[0]
	if got.Quantity != 3 {
		t.Fatalf("quantity: got %d", got.Quantity)
	}
	if want := dec(t, "13.50"); !got.TotalPrice.Equal(want) {
		t.Fatalf("total: got %s, want %s", got.TotalPrice, want)
	}
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	item, catalog := testItem(t)

	var c Cart
	line := New(item, "", "", nil, catalog, 1)
	c.Add(line)
	c.SetQuantity(line.CartID, 0)

	if len(c.Lines()) != 0 {
		t.Fatalf("line not removed at quantity 0: %d lines", len(c.Lines()))
	}
}

func TestTotalAndClear(t *testing.T) {
	item, catalog := testItem(t)

	var c Cart
	c.Add(New(item, "", "", nil, catalog, 1))
	c.Add(New(item, "", "", nil, catalog, 2))

	if want := dec(t, "10.50"); !c.Total().Equal(want) {
		t.Fatalf("cart total: got %s, want %s", c.Total(), want)
	}

	c.Clear()
	if len(c.Lines()) != 0 || !c.Total().Equal(decimal.Zero) {
		t.Fatal("clear did not empty the cart")
	}
}
