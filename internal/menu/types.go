package menu

import "github.com/shopspring/decimal"

// Category icon tags. Closed set, CHECK constrained in DB.
const (
	IconFood  = "food"
	IconDrink = "drink"
)

// Category groups menu items and owns its ingredient list.
// Name is the stable slug derived from Translation; Order defines the
// default display sequence and is not necessarily contiguous.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Translation string       `json:"translation"`
	Icon        string       `json:"icon"`
	Order       int          `json:"order"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Ingredient belongs to exactly one category. Default ingredients are
// included in the base price and always free; Price is meaningful only
// when Default is false.
type Ingredient struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Default bool            `json:"default"`
	Price   decimal.Decimal `json:"price"`
}

// MenuItem is a purchasable item. Category references Category.Name.
// Meats, Sizes and Ingredients (free-text legacy form) are optional.
type MenuItem struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Translation string          `json:"translation"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Meats       []string        `json:"meats,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Ingredients []string        `json:"ingredients,omitempty"`
}

// ValidIcon reports whether tag is one of the allowed category icons.
func ValidIcon(tag string) bool {
	return tag == IconFood || tag == IconDrink
}
