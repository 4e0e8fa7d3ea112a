package editor

import "sort"

// markerID is the reserved sequence id of the draft marker element, the
// placeholder for an entity that is being created but not yet persisted.
const markerID = "__new__"

// Entry is one element of an ordering sequence: a reference to a
// persisted entity, or the single draft marker.
type Entry struct {
	ID    string
	IsNew bool
}

// Sequence is an explicit, user-controlled ordering of entities. It is
// used twice, structurally identically: once for categories and once
// for the items inside a category. The order lives here, in memory, so
// in-progress reordering (including an uncommitted draft) can be shown
// before anything is persisted.
type Sequence struct {
	entries []Entry
}

// NewSequence builds a sequence from ids already in display order.
func NewSequence(ids ...string) *Sequence {
	s := &Sequence{entries: make([]Entry, 0, len(ids))}
	for _, id := range ids {
		s.entries = append(s.entries, Entry{ID: id})
	}
	return s
}

// Len returns the number of entries, marker included.
func (s *Sequence) Len() int { return len(s.entries) }

// IDs returns the current order, marker included.
func (s *Sequence) IDs() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.ID
	}
	return out
}

// Entries returns a copy of the sequence.
func (s *Sequence) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// IndexOf returns the position of id, or -1.
func (s *Sequence) IndexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// MoveUp swaps the entry at index with its predecessor. Index 0 (and
// out-of-range indexes) are a no-op; the list never wraps.
func (s *Sequence) MoveUp(index int) {
	if index <= 0 || index >= len(s.entries) {
		return
	}
	s.entries[index-1], s.entries[index] = s.entries[index], s.entries[index-1]
}

// MoveDown swaps the entry at index with its successor. The last index
// (and out-of-range indexes) are a no-op.
func (s *Sequence) MoveDown(index int) {
	if index < 0 || index >= len(s.entries)-1 {
		return
	}
	s.entries[index], s.entries[index+1] = s.entries[index+1], s.entries[index]
}

// Reorder removes the entry identified by fromID and reinserts it at
// toID's position, shifting the entries in between by one. Dropping an
// entry on itself, or naming an unknown id, is a no-op.
func (s *Sequence) Reorder(fromID, toID string) {
	if fromID == toID {
		return
	}
	from := s.IndexOf(fromID)
	to := s.IndexOf(toID)
	if from < 0 || to < 0 {
		return
	}
	moved := s.entries[from]
	s.entries = append(s.entries[:from], s.entries[from+1:]...)
	s.entries = append(s.entries[:to], append([]Entry{moved}, s.entries[to:]...)...)
}

// InsertAt inserts a new entry immediately after the entry currently at
// afterIndex. An afterIndex of -1 inserts at the head; anything at or
// past the end appends. One rule serves the "+" control between any two
// entries, before the first, and after the last.
func (s *Sequence) InsertAt(id string, afterIndex int) {
	pos := afterIndex + 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.entries) {
		pos = len(s.entries)
	}
	s.entries = append(s.entries[:pos], append([]Entry{{ID: id}}, s.entries[pos:]...)...)
}

// Remove excises id from the sequence. Unknown ids are a no-op.
func (s *Sequence) Remove(id string) {
	i := s.IndexOf(id)
	if i < 0 {
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
}

// UpsertMarker ensures the single draft marker exists. If absent it is
// inserted at the head; if already present its position is preserved so
// edits to the draft do not bounce it around the list.
func (s *Sequence) UpsertMarker() {
	if s.IndexOf(markerID) >= 0 {
		return
	}
	s.entries = append([]Entry{{ID: markerID, IsNew: true}}, s.entries...)
}

// ClearMarker removes the draft marker entirely. It is removed, not
// hidden: the sequence has no memory of where it was.
func (s *Sequence) ClearMarker() {
	s.Remove(markerID)
}

// HasMarker reports whether the draft marker is present.
func (s *Sequence) HasMarker() bool {
	return s.IndexOf(markerID) >= 0
}

// MarkerIndex returns the marker's position, or -1.
func (s *Sequence) MarkerIndex() int {
	return s.IndexOf(markerID)
}

// Normalize appends every id in known that the sequence does not yet
// reference, sorted ascending, after all explicitly ordered entries.
// Entities never reordered by the owner thus get a stable, deterministic
// fallback position.
func (s *Sequence) Normalize(known []string) {
	missing := make([]string, 0, len(known))
	for _, id := range known {
		if s.IndexOf(id) < 0 {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	for _, id := range missing {
		s.entries = append(s.entries, Entry{ID: id})
	}
}
