package menu

import "strings"

// Selection owns the selected-ingredient set for one customization
// session. It tracks which catalog it was seeded from: pointing it at
// the same catalog again (a re-render, a list refetch) leaves the
// customer's toggles alone, while a genuinely different catalog — a
// different item, or an edited ingredient list — reseeds from the
// defaults.
type Selection struct {
	catalogKey string
	selected   map[string]bool
}

// NewSelection creates a selection seeded from the given catalog.
func NewSelection(catalog []Ingredient) *Selection {
	s := &Selection{}
	s.SetCatalog(catalog)
	return s
}

// SetCatalog points the selection at an ingredient catalog, reseeding
// from the defaults only when the catalog's identity changed. A
// deselected default therefore survives a same-catalog refresh.
func (s *Selection) SetCatalog(catalog []Ingredient) {
	key := catalogIdentity(catalog)
	if key == s.catalogKey && s.selected != nil {
		return
	}
	s.catalogKey = key
	s.selected = DefaultSelection(catalog)
}

// Toggle flips one ingredient in or out of the selection.
func (s *Selection) Toggle(id string) {
	if s.selected[id] {
		delete(s.selected, id)
		return
	}
	s.selected[id] = true
}

// Selected reports whether the ingredient is currently selected.
func (s *Selection) Selected(id string) bool {
	return s.selected[id]
}

// Map exposes the selected set in the form the pricing engine takes.
func (s *Selection) Map() map[string]bool {
	return s.selected
}

// catalogIdentity derives a comparable key from the ordered ingredient
// ids. Two slices carrying the same ingredients are the same catalog;
// price or name edits alone do not reset the customer's choices.
func catalogIdentity(catalog []Ingredient) string {
	ids := make([]string, len(catalog))
	for i, ing := range catalog {
		ids[i] = ing.ID
	}
	return strings.Join(ids, "\x00")
}
