package menu

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddIngredient appends a new ingredient with a fresh id to the catalog
// and returns the extended slice. A name that is empty after trimming is
// rejected; the catalog is returned unchanged.
func AddIngredient(catalog []Ingredient, name string, price decimal.Decimal, isDefault bool) []Ingredient {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog
	}
	return append(catalog, Ingredient{
		ID:      uuid.NewString(),
		Name:    name,
		Default: isDefault,
		Price:   price,
	})
}

// RemoveIngredient filters the ingredient with the given id out of the
// catalog. Removing an id that is not present is a no-op.
func RemoveIngredient(catalog []Ingredient, id string) []Ingredient {
	out := make([]Ingredient, 0, len(catalog))
	for _, ing := range catalog {
		if ing.ID != id {
			out = append(out, ing)
		}
	}
	return out
}

// DefaultSelection seeds the selected set for a customization view:
// every default ingredient starts selected (included, free), every extra
// starts unselected. Selection wraps this and enforces that reseeding
// happens only when the catalog identity changes.
func DefaultSelection(catalog []Ingredient) map[string]bool {
	selected := make(map[string]bool)
	for _, ing := range catalog {
		if ing.Default {
			selected[ing.ID] = true
		}
	}
	return selected
}
