package menu

import "testing"

func TestSelection_SeedsFromDefaults(t *testing.T) {
	catalog := testCatalog(t)
	sel := NewSelection(catalog)

	if !sel.Selected("a") {
		t.Error("default ingredient not seeded selected")
	}
	if sel.Selected("b") || sel.Selected("c") {
		t.Error("extras must start unselected")
	}
}

func TestSelection_DeselectedDefaultSurvivesRefresh(t *testing.T) {
	catalog := testCatalog(t)
	sel := NewSelection(catalog)

	sel.Toggle("a") // hold the cilantro
	if sel.Selected("a") {
		t.Fatal("toggle off failed")
	}

	// A refetch hands back the same catalog; the choice must stick.
	sel.SetCatalog(catalog)
	if sel.Selected("a") {
		t.Fatal("deselected default reverted by a same-catalog refresh")
	}

	// So must an added extra.
	sel.Toggle("b")
	sel.SetCatalog(catalog)
	if !sel.Selected("b") {
		t.Fatal("selected extra lost on a same-catalog refresh")
	}
}

func TestSelection_ReseedsOnCatalogChange(t *testing.T) {
	catalog := testCatalog(t)
	sel := NewSelection(catalog)
	sel.Toggle("a")
	sel.Toggle("b")

	// An edited ingredient list is a different catalog: start over from
	// the new defaults.
	changed := RemoveIngredient(catalog, "c")
	sel.SetCatalog(changed)
	if !sel.Selected("a") {
		t.Error("reseed must restore the default selection")
	}
	if sel.Selected("b") {
		t.Error("reseed must drop prior extra selections")
	}
}

func TestSelection_PriceEditKeepsChoices(t *testing.T) {
	catalog := testCatalog(t)
	sel := NewSelection(catalog)
	sel.Toggle("b")

	// Same ingredients, new price: identity unchanged.
	repriced := make([]Ingredient, len(catalog))
	copy(repriced, catalog)
	repriced[1].Price = dec(t, "9.99")

	sel.SetCatalog(repriced)
	if !sel.Selected("b") {
		t.Error("price edit must not reset the selection")
	}
}
