package editor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/catalog"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
)

// Staging holds uncommitted menu item edits. For each item in edit mode
// it keeps a full snapshot of the committed record (read on cancel) and
// a partial field→value map of staged edits (read in full on commit).
// Nothing here touches the server; commit and cancel are the only ways
// out.
type Staging struct {
	originals map[string]menu.MenuItem
	pending   map[string]map[string]any
	drafts    map[string]string
}

// NewStaging creates an empty staging model.
func NewStaging() *Staging {
	return &Staging{
		originals: make(map[string]menu.MenuItem),
		pending:   make(map[string]map[string]any),
		drafts:    make(map[string]string),
	}
}

// BeginEdit enters edit mode for an item, snapshotting its committed
// state. Idempotent: a second call while the session is active must not
// overwrite the snapshot with a since-mutated record.
func (s *Staging) BeginEdit(item menu.MenuItem) {
	if _, ok := s.originals[item.ID]; ok {
		return
	}
	s.originals[item.ID] = item
	s.pending[item.ID] = map[string]any{}
}

// Active reports whether edit mode is on for the item.
func (s *Staging) Active(itemID string) bool {
	_, ok := s.originals[itemID]
	return ok
}

// StageField records a draft value for one field. A no-op unless edit
// mode is active for the item.
func (s *Staging) StageField(itemID, field string, value any) {
	p, ok := s.pending[itemID]
	if !ok {
		return
	}
	p[field] = value
}

// Pending returns a copy of the staged fields for the item.
func (s *Staging) Pending(itemID string) map[string]any {
	p, ok := s.pending[itemID]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Original returns the snapshot taken when edit mode was entered.
func (s *Staging) Original(itemID string) (menu.MenuItem, bool) {
	o, ok := s.originals[itemID]
	return o, ok
}

// CurrentValue reads a field through the staging layer: the staged
// value when one exists, the record's own value otherwise. Display code
// must use this, never the raw record, while edit mode is active.
func (s *Staging) CurrentValue(item menu.MenuItem, field string) any {
	if p, ok := s.pending[item.ID]; ok {
		if v, ok := p[field]; ok {
			return v
		}
	}
	return fieldValue(item, field)
}

// Cancel discards the staged edits and snapshot for the item, along
// with any inline draft still open for it. The server is not contacted.
func (s *Staging) Cancel(itemID string) {
	delete(s.originals, itemID)
	delete(s.pending, itemID)
	for key := range s.drafts {
		if strings.HasPrefix(key, itemID+"-") {
			delete(s.drafts, key)
		}
	}
}

// ClearCommitted drops the staged state after a successful commit. It
// must only be called once the server has accepted the update; a failed
// commit keeps everything so the owner can retry.
func (s *Staging) ClearCommitted(itemID string) {
	s.Cancel(itemID)
}

// PendingError reports a staged value that cannot be applied to the
// record, today an unparseable price string. Commit must check this
// before contacting the server: a malformed field is surfaced as a
// validation error and the staged state kept, never silently dropped.
func (s *Staging) PendingError(itemID string) error {
	p, ok := s.pending[itemID]
	if !ok {
		return nil
	}
	if v, ok := p[FieldPrice]; ok {
		if raw, ok := v.(string); ok {
			if _, err := parsePrice(raw); err != nil {
				return fmt.Errorf("%w: price %q is not a number", catalog.ErrValidation, raw)
			}
		}
	}
	return nil
}

// Merged applies the staged fields over the committed record, producing
// the payload for a single update call.
func (s *Staging) Merged(item menu.MenuItem) menu.MenuItem {
	p, ok := s.pending[item.ID]
	if !ok {
		return item
	}
	out := item
	for field, v := range p {
		applyField(&out, field, v)
	}
	return out
}

// --- Inline field editing ---

// Inline editing is a sub-state inside an active item edit: a single
// text field held in a draft buffer until the owner saves (Enter, blur)
// or discards (Escape) it.

func draftKey(itemID, field string) string {
	return itemID + "-" + field
}

// StartInline opens an inline edit session for one field, seeding the
// draft buffer with the currently displayed value.
func (s *Staging) StartInline(itemID, field, current string) {
	if !s.Active(itemID) {
		return
	}
	s.drafts[draftKey(itemID, field)] = current
}

// SetInlineDraft replaces the draft as the owner types.
func (s *Staging) SetInlineDraft(itemID, field, value string) {
	key := draftKey(itemID, field)
	if _, ok := s.drafts[key]; !ok {
		return
	}
	s.drafts[key] = value
}

// InlineDraft returns the open draft for a field, if any.
func (s *Staging) InlineDraft(itemID, field string) (string, bool) {
	v, ok := s.drafts[draftKey(itemID, field)]
	return v, ok
}

// StopInline closes an inline edit session. With save, the draft is
// promoted to a staged edit — unless it equals the committed value, in
// which case no pending entry is created; the comparison is against the
// record itself, not a previous pending value, so a field staged and
// then typed back to its original leaves no spurious diff. Without
// save, the draft is discarded. Either way the buffer is cleared.
func (s *Staging) StopInline(item menu.MenuItem, field string, save bool) {
	key := draftKey(item.ID, field)
	draft, ok := s.drafts[key]
	delete(s.drafts, key)
	if !ok || !save {
		return
	}
	if draft == fieldString(item, field) {
		return
	}
	s.StageField(item.ID, field, draft)
}

// --- Field access ---

// Menu item fields addressable by staged edits.
const (
	FieldName        = "name"
	FieldTranslation = "translation"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldCategory    = "category"
	FieldMeats       = "meats"
	FieldSizes       = "sizes"
	FieldIngredients = "ingredients"
)

func fieldValue(item menu.MenuItem, field string) any {
	switch field {
	case FieldName:
		return item.Name
	case FieldTranslation:
		return item.Translation
	case FieldPrice:
		return item.Price
	case FieldDescription:
		return item.Description
	case FieldImage:
		return item.Image
	case FieldCategory:
		return item.Category
	case FieldMeats:
		return item.Meats
	case FieldSizes:
		return item.Sizes
	case FieldIngredients:
		return item.Ingredients
	}
	return nil
}

// fieldString renders a field the way an inline text input shows it.
func fieldString(item menu.MenuItem, field string) string {
	switch field {
	case FieldPrice:
		return item.Price.String()
	case FieldMeats:
		return strings.Join(item.Meats, ", ")
	case FieldSizes:
		return strings.Join(item.Sizes, ", ")
	case FieldIngredients:
		return strings.Join(item.Ingredients, ", ")
	default:
		if v, ok := fieldValue(item, field).(string); ok {
			return v
		}
	}
	return ""
}

func applyField(item *menu.MenuItem, field string, value any) {
	switch field {
	case FieldName:
		if v, ok := value.(string); ok {
			item.Name = v
		}
	case FieldTranslation:
		if v, ok := value.(string); ok {
			item.Translation = v
		}
	case FieldPrice:
		switch v := value.(type) {
		case decimal.Decimal:
			item.Price = v
		case string:
			if d, err := parsePrice(v); err == nil {
				item.Price = d
			}
		}
	case FieldDescription:
		if v, ok := value.(string); ok {
			item.Description = v
		}
	case FieldImage:
		if v, ok := value.(string); ok {
			item.Image = v
		}
	case FieldCategory:
		if v, ok := value.(string); ok {
			item.Category = v
		}
	case FieldMeats:
		item.Meats = toList(value)
	case FieldSizes:
		item.Sizes = toList(value)
	case FieldIngredients:
		item.Ingredients = toList(value)
	}
}

// parsePrice reads the form an inline price input produces: an optional
// leading dollar sign around a plain decimal.
func parsePrice(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
}

// toList accepts either a staged []string or the comma-separated form
// an inline text edit produces.
func toList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}
