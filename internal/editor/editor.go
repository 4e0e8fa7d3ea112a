// Package editor implements the owner's menu-management session: the
// pending-change staging model, the category and item ordering models,
// and the commit/cancel flow that moves staged state through the
// catalog service. All state here is in-memory and owned by a single
// session; mutations are synchronous and atomic, and a failed server
// call leaves every model exactly as it was.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davislcruz/taco-truck-web-app-sub000/internal/catalog"
	"github.com/davislcruz/taco-truck-web-app-sub000/internal/menu"
)

// Draft is the in-progress new category: fields for the marker element
// at the head of the category order.
type Draft struct {
	Translation string
	Icon        string
}

// Editor is one owner's menu-management session.
type Editor struct {
	svc catalog.Service

	categories map[string]menu.Category // by id
	items      map[string]menu.MenuItem // by id

	catOrder  *Sequence
	itemOrder map[string]*Sequence // by category name

	staging *Staging
	draft   Draft
}

// New creates an empty session over the given catalog service.
func New(svc catalog.Service) *Editor {
	return &Editor{
		svc:        svc,
		categories: make(map[string]menu.Category),
		items:      make(map[string]menu.MenuItem),
		catOrder:   NewSequence(),
		itemOrder:  make(map[string]*Sequence),
		staging:    NewStaging(),
	}
}

// Load fetches the committed catalog and rebuilds the caches and
// ordering sequences. Explicitly ordered entities keep their sequence;
// anything new is appended via the ascending-id fallback.
func (e *Editor) Load(ctx context.Context) error {
	cats, err := e.svc.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	items, err := e.svc.ListMenuItems(ctx)
	if err != nil {
		return fmt.Errorf("load menu items: %w", err)
	}

	e.categories = make(map[string]menu.Category, len(cats))
	catIDs := make([]string, 0, len(cats))
	for _, c := range cats {
		e.categories[c.ID] = c
		catIDs = append(catIDs, c.ID)
	}
	e.catOrder.Normalize(catIDs)
	e.pruneSequence(e.catOrder, e.categoryExists)

	e.items = make(map[string]menu.MenuItem, len(items))
	byCategory := make(map[string][]string)
	for _, it := range items {
		e.items[it.ID] = it
		byCategory[it.Category] = append(byCategory[it.Category], it.ID)
	}
	for name, ids := range byCategory {
		e.ItemOrder(name).Normalize(ids)
	}
	// Prune every sequence, not just the repopulated ones: a category
	// whose items all vanished between loads still holds stale entries.
	for _, seq := range e.itemOrder {
		e.pruneSequence(seq, e.itemExists)
	}
	return nil
}

func (e *Editor) categoryExists(id string) bool { _, ok := e.categories[id]; return ok }
func (e *Editor) itemExists(id string) bool     { _, ok := e.items[id]; return ok }

// pruneSequence drops references to entities deleted by another
// session; the marker survives.
func (e *Editor) pruneSequence(seq *Sequence, exists func(string) bool) {
	for _, entry := range seq.Entries() {
		if !entry.IsNew && !exists(entry.ID) {
			seq.Remove(entry.ID)
		}
	}
}

// Category returns a committed category by id.
func (e *Editor) Category(id string) (menu.Category, bool) {
	c, ok := e.categories[id]
	return c, ok
}

// Item returns a committed menu item by id.
func (e *Editor) Item(id string) (menu.MenuItem, bool) {
	it, ok := e.items[id]
	return it, ok
}

// CategoryOrder exposes the category ordering sequence.
func (e *Editor) CategoryOrder() *Sequence { return e.catOrder }

// ItemOrder exposes the item ordering sequence for a category, creating
// an empty one on first use.
func (e *Editor) ItemOrder(categoryName string) *Sequence {
	seq, ok := e.itemOrder[categoryName]
	if !ok {
		seq = NewSequence()
		e.itemOrder[categoryName] = seq
	}
	return seq
}

// --- Staged item editing ---

// BeginEdit enters edit mode for an item. Unknown ids are ignored.
func (e *Editor) BeginEdit(itemID string) {
	if it, ok := e.items[itemID]; ok {
		e.staging.BeginEdit(it)
	}
}

// StageField stages one field edit for an item in edit mode.
func (e *Editor) StageField(itemID, field string, value any) {
	e.staging.StageField(itemID, field, value)
}

// CurrentValue reads an item field through the staging layer.
func (e *Editor) CurrentValue(itemID, field string) any {
	it, ok := e.items[itemID]
	if !ok {
		return nil
	}
	return e.staging.CurrentValue(it, field)
}

// StartInline opens an inline edit for one field, seeded from the
// currently displayed (staged or committed) value.
func (e *Editor) StartInline(itemID, field string) {
	it, ok := e.items[itemID]
	if !ok {
		return
	}
	e.staging.StartInline(itemID, field, fieldString(e.staging.Merged(it), field))
}

// TypeInline updates the open draft for a field.
func (e *Editor) TypeInline(itemID, field, value string) {
	e.staging.SetInlineDraft(itemID, field, value)
}

// StopInline closes an inline edit, promoting the draft to a staged
// edit when save is true.
func (e *Editor) StopInline(itemID, field string, save bool) {
	it, ok := e.items[itemID]
	if !ok {
		return
	}
	e.staging.StopInline(it, field, save)
}

// Staging exposes the staging model for read access.
func (e *Editor) Staging() *Staging { return e.staging }

// CommitItem sends the item's staged edits to the catalog as a single
// update. Empty pending sets just leave edit mode. On success the
// staged state is cleared and the cache updated; on a transport or
// validation failure everything is preserved for retry. When the item
// was deleted by another session there is nothing to commit to, so the
// staged state is discarded and the item excised locally.
func (e *Editor) CommitItem(ctx context.Context, itemID string) error {
	it, ok := e.items[itemID]
	if !ok || !e.staging.Active(itemID) {
		return nil
	}
	if len(e.staging.Pending(itemID)) == 0 {
		e.staging.Cancel(itemID)
		return nil
	}
	if err := e.staging.PendingError(itemID); err != nil {
		return fmt.Errorf("commit item %s: %w", itemID, err)
	}

	merged := e.staging.Merged(it)
	updated, err := e.svc.UpdateMenuItem(ctx, itemID, merged)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			e.staging.Cancel(itemID)
			e.dropItem(itemID)
		}
		return fmt.Errorf("commit item %s: %w", itemID, err)
	}

	e.items[itemID] = updated
	e.staging.ClearCommitted(itemID)
	return nil
}

// CommitCategory commits every item of a category that has staged
// edits. The first failure stops the walk and is returned; already
// committed items stay committed (last-write-wins, no rollback across
// items).
func (e *Editor) CommitCategory(ctx context.Context, categoryName string) error {
	for _, id := range e.ItemOrder(categoryName).IDs() {
		if err := e.CommitItem(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// CancelItem discards the item's staged edits and open inline drafts,
// restoring the committed view. The server is not contacted.
func (e *Editor) CancelItem(itemID string) {
	e.staging.Cancel(itemID)
}

// CancelCategory cancels edit mode for every item of a category.
func (e *Editor) CancelCategory(categoryName string) {
	for _, id := range e.ItemOrder(categoryName).IDs() {
		e.staging.Cancel(id)
	}
}

// --- Category draft (marker element) ---

// SetDraft updates the new-category draft. An empty translation removes
// the marker from the order list entirely; a non-empty one inserts a
// fresh marker at the head, unless one already exists, in which case
// only its fields change and its position is preserved.
func (e *Editor) SetDraft(translation, icon string) {
	e.draft = Draft{Translation: translation, Icon: icon}
	if strings.TrimSpace(translation) == "" {
		e.catOrder.ClearMarker()
		return
	}
	e.catOrder.UpsertMarker()
}

// DraftState returns the current draft fields.
func (e *Editor) DraftState() Draft { return e.draft }

// SaveDraft persists the draft category. Its committed order is its
// current index in the in-memory sequence — the visual order at save
// time is the saved order. On success the marker is replaced in place
// by the real entity.
func (e *Editor) SaveDraft(ctx context.Context) (menu.Category, error) {
	idx := e.catOrder.MarkerIndex()
	if idx < 0 || strings.TrimSpace(e.draft.Translation) == "" {
		return menu.Category{}, fmt.Errorf("%w: category name is required", catalog.ErrValidation)
	}

	icon := e.draft.Icon
	if icon == "" {
		icon = menu.IconFood
	}

	created, err := e.svc.CreateCategory(ctx, menu.Category{
		Name:        menu.Slugify(e.draft.Translation),
		Translation: strings.TrimSpace(e.draft.Translation),
		Icon:        icon,
		Order:       idx,
	})
	if err != nil {
		return menu.Category{}, fmt.Errorf("save category: %w", err)
	}

	e.categories[created.ID] = created
	e.catOrder.entries[idx] = Entry{ID: created.ID}
	e.draft = Draft{}
	return created, nil
}

// --- Ordering operations ---

// MoveCategoryUp swaps a category with its predecessor.
func (e *Editor) MoveCategoryUp(index int) { e.catOrder.MoveUp(index) }

// MoveCategoryDown swaps a category with its successor.
func (e *Editor) MoveCategoryDown(index int) { e.catOrder.MoveDown(index) }

// ReorderCategories applies a drag-and-drop move.
func (e *Editor) ReorderCategories(fromID, toID string) { e.catOrder.Reorder(fromID, toID) }

// SaveCategoryOrder persists the current in-memory category sequence:
// each category's committed order becomes its index. The walk stops at
// the first failure; already saved positions stay saved.
func (e *Editor) SaveCategoryOrder(ctx context.Context) error {
	for idx, entry := range e.catOrder.Entries() {
		if entry.IsNew {
			continue
		}
		c, ok := e.categories[entry.ID]
		if !ok || c.Order == idx {
			continue
		}
		c.Order = idx
		updated, err := e.svc.UpdateCategory(ctx, c.ID, c)
		if err != nil {
			return fmt.Errorf("save order for category %s: %w", c.ID, err)
		}
		e.categories[c.ID] = updated
	}
	return nil
}

// CreateItemAt creates a menu item and inserts it into its category's
// sequence immediately after afterIndex (-1 for the head).
func (e *Editor) CreateItemAt(ctx context.Context, it menu.MenuItem, afterIndex int) (menu.MenuItem, error) {
	created, err := e.svc.CreateMenuItem(ctx, it)
	if err != nil {
		return menu.MenuItem{}, fmt.Errorf("create item: %w", err)
	}
	e.items[created.ID] = created
	e.ItemOrder(created.Category).InsertAt(created.ID, afterIndex)
	return created, nil
}

// DeleteItem removes a menu item from the catalog and excises it from
// every sequence that references it.
func (e *Editor) DeleteItem(ctx context.Context, itemID string) error {
	if err := e.svc.DeleteMenuItem(ctx, itemID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			// Already gone; still purge the local view.
			e.staging.Cancel(itemID)
			e.dropItem(itemID)
		}
		return fmt.Errorf("delete item %s: %w", itemID, err)
	}
	e.staging.Cancel(itemID)
	e.dropItem(itemID)
	return nil
}

func (e *Editor) dropItem(itemID string) {
	delete(e.items, itemID)
	for _, seq := range e.itemOrder {
		seq.Remove(itemID)
	}
}

// DeleteCategory removes an empty category. Deleting a category whose
// name is still referenced by menu items is a conflict, checked here
// before the server is asked, and again by the server.
func (e *Editor) DeleteCategory(ctx context.Context, categoryID string) error {
	c, ok := e.categories[categoryID]
	if !ok {
		return fmt.Errorf("category %s: %w", categoryID, catalog.ErrNotFound)
	}
	for _, it := range e.items {
		if it.Category == c.Name {
			return fmt.Errorf("category %q still has items: %w", c.Name, catalog.ErrConflict)
		}
	}
	if err := e.svc.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("delete category %s: %w", categoryID, err)
	}
	delete(e.categories, categoryID)
	e.catOrder.Remove(categoryID)
	delete(e.itemOrder, c.Name)
	return nil
}
