package editor

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
)

func stagingItem() menu.MenuItem {
	return menu.MenuItem{
		ID:          "item-1",
		Category:    "tacos",
		Name:        "Taco al Pastor",
		Translation: "Pork Taco",
		Price:       decimal.RequireFromString("3.50"),
		Meats:       []string{"pastor", "asada"},
	}
}

func TestStageAndCurrentValue(t *testing.T) {
	s := NewStaging()
	it := stagingItem()

	// Before edit mode, staging is a no-op and reads pass through.
	s.StageField(it.ID, FieldName, "nope")
	if got := s.CurrentValue(it, FieldName); got != "Taco al Pastor" {
		t.Fatalf("inactive stage leaked: %v", got)
	}

	s.BeginEdit(it)
	s.StageField(it.ID, FieldName, "Taco Grande")

	if got := s.CurrentValue(it, FieldName); got != "Taco Grande" {
		t.Fatalf("staged value not visible: %v", got)
	}
	// Untouched fields still read the record.
	if got := s.CurrentValue(it, FieldTranslation); got != "Pork Taco" {
		t.Fatalf("unstaged field wrong: %v", got)
	}
}

func TestBeginEdit_Idempotent(t *testing.T) {
	s := NewStaging()
	it := stagingItem()

	s.BeginEdit(it)
	s.StageField(it.ID, FieldName, "Changed")

	// A second BeginEdit with a mutated record must not clobber the
	// snapshot or the staged edits.
	mutated := it
	mutated.Name = "Mutated Elsewhere"
	s.BeginEdit(mutated)

	orig, ok := s.Original(it.ID)
	if !ok || orig.Name != "Taco al Pastor" {
		t.Fatalf("snapshot overwritten: %+v", orig)
	}
	if got := s.CurrentValue(it, FieldName); got != "Changed" {
		t.Fatalf("pending lost: %v", got)
	}
}

func TestCancel_RestoresOriginal(t *testing.T) {
	s := NewStaging()
	it := stagingItem()

	s.BeginEdit(it)
	s.StageField(it.ID, FieldName, "Changed")
	s.StartInline(it.ID, FieldDescription, "")
	s.Cancel(it.ID)

	if s.Active(it.ID) {
		t.Fatal("edit mode still active after cancel")
	}
	if got := s.CurrentValue(it, FieldName); got != "Taco al Pastor" {
		t.Fatalf("cancel did not restore original: %v", got)
	}
	// Open inline drafts are discarded too, not left half-open.
	if _, ok := s.InlineDraft(it.ID, FieldDescription); ok {
		t.Fatal("inline draft survived cancel")
	}
}

func TestMerged_AppliesPendingOverRecord(t *testing.T) {
	s := NewStaging()
	it := stagingItem()

	s.BeginEdit(it)
	s.StageField(it.ID, FieldName, "Taco Grande")
	s.StageField(it.ID, FieldPrice, "4.25")
	s.StageField(it.ID, FieldMeats, "pollo, carnitas")

	m := s.Merged(it)
	if m.Name != "Taco Grande" {
		t.Errorf("name: %q", m.Name)
	}
	if !m.Price.Equal(decimal.RequireFromString("4.25")) {
		t.Errorf("price: %s", m.Price)
	}
	if len(m.Meats) != 2 || m.Meats[0] != "pollo" {
		t.Errorf("meats: %v", m.Meats)
	}
	if m.Translation != "Pork Taco" {
		t.Errorf("untouched field changed: %q", m.Translation)
	}
}

func TestInlineEdit_SaveAndDiscard(t *testing.T) {
	s := NewStaging()
	it := stagingItem()
	s.BeginEdit(it)

	// Escape discards.
	s.StartInline(it.ID, FieldName, "Taco al Pastor")
	s.SetInlineDraft(it.ID, FieldName, "Typo")
	s.StopInline(it, FieldName, false)
	if _, ok := s.Pending(it.ID)[FieldName]; ok {
		t.Fatal("discarded draft was staged")
	}

	// Enter/blur saves.
	s.StartInline(it.ID, FieldName, "Taco al Pastor")
	s.SetInlineDraft(it.ID, FieldName, "Taco Grande")
	s.StopInline(it, FieldName, true)
	if got := s.Pending(it.ID)[FieldName]; got != "Taco Grande" {
		t.Fatalf("saved draft not staged: %v", got)
	}

	// Buffer always cleared.
	if _, ok := s.InlineDraft(it.ID, FieldName); ok {
		t.Fatal("draft buffer not cleared")
	}
}

func TestInlineEdit_NoopWhenEqualToCommitted(t *testing.T) {
	s := NewStaging()
	it := stagingItem()
	s.BeginEdit(it)

	// Stage a change, then inline-edit the field back to the original.
	s.StageField(it.ID, FieldName, "Taco Grande")
	s.StartInline(it.ID, FieldName, "Taco Grande")
	s.SetInlineDraft(it.ID, FieldName, "Taco al Pastor")
	s.StopInline(it, FieldName, true)

	// The diff runs against the committed record, not the previous
	// pending value: a draft equal to the committed value is never
	// staged.
	if got, ok := s.Pending(it.ID)[FieldName]; ok && got == "Taco al Pastor" {
		t.Fatalf("no-op edit created a spurious pending entry: %v", got)
	}

	// Fresh session, no prior staged value: the no-op edit leaves the
	// pending set empty.
	s2 := NewStaging()
	s2.BeginEdit(it)
	s2.StartInline(it.ID, FieldName, "Taco al Pastor")
	s2.StopInline(it, FieldName, true)
	if len(s2.Pending(it.ID)) != 0 {
		t.Fatalf("unchanged draft staged: %v", s2.Pending(it.ID))
	}
}

func TestInlineEdit_RequiresActiveEdit(t *testing.T) {
	s := NewStaging()
	it := stagingItem()

	s.StartInline(it.ID, FieldName, "x")
	if _, ok := s.InlineDraft(it.ID, FieldName); ok {
		t.Fatal("inline edit opened without item-level edit mode")
	}
}
