package menu

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Legacy free-text ingredients carry their surcharge as a trailing
// marker, e.g. "Extra cheese (+$1.50)".
var legacyPriceMarker = regexp.MustCompile(`\(\+\$(\d+(?:\.\d+)?)\)\s*$`)

// ExtraCost sums the prices of every selected non-default ingredient
// that exists in the catalog. Default ingredients contribute nothing
// whether selected or not; they are covered by the base price.
func ExtraCost(selected map[string]bool, catalog []Ingredient) decimal.Decimal {
	extra := decimal.Zero
	for _, ing := range catalog {
		if ing.Default || !selected[ing.ID] {
			continue
		}
		extra = extra.Add(ing.Price)
	}
	return extra
}

// LegacyExtraCost sums the (+$N) markers of free-text ingredient
// strings. The legacy form has no default/selected distinction: every
// marked string is additively priced.
func LegacyExtraCost(ingredients []string) decimal.Decimal {
	extra := decimal.Zero
	for _, s := range ingredients {
		m := legacyPriceMarker.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		d, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		extra = extra.Add(d)
	}
	return extra
}

// ComputePrice returns the total for quantity units of an item: the base
// price plus the extra cost of the selection, times the quantity.
func ComputePrice(basePrice decimal.Decimal, selected map[string]bool, catalog []Ingredient, quantity int) decimal.Decimal {
	unit := basePrice.Add(ExtraCost(selected, catalog))
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// UnitPrice prices one unit of an item against a category's ingredient
// catalog. The structured and legacy paths may coexist on the same item;
// their surcharges sum.
func UnitPrice(item MenuItem, selected map[string]bool, catalog []Ingredient) decimal.Decimal {
	return item.Price.
		Add(ExtraCost(selected, catalog)).
		Add(LegacyExtraCost(item.Ingredients))
}
