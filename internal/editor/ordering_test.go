package editor

import (
	"reflect"
	"testing"
)

func TestMoveUpDown(t *testing.T) {
	s := NewSequence("tacos", "burritos", "drinks")

	s.MoveDown(0)
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"burritos", "tacos", "drinks"}) {
		t.Fatalf("after MoveDown(0): %v", got)
	}

	s.MoveUp(0) // boundary: no-op, no wrap
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"burritos", "tacos", "drinks"}) {
		t.Fatalf("MoveUp(0) must be a no-op: %v", got)
	}

	s.MoveUp(1)
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"tacos", "burritos", "drinks"}) {
		t.Fatalf("after MoveUp(1): %v", got)
	}

	s.MoveDown(2) // boundary: no-op
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"tacos", "burritos", "drinks"}) {
		t.Fatalf("MoveDown(last) must be a no-op: %v", got)
	}

	// Out-of-range indexes must not panic.
	s.MoveUp(-1)
	s.MoveDown(99)
}

func TestReorder(t *testing.T) {
	s := NewSequence("a", "b", "c", "d")

	s.Reorder("a", "c") // drag a onto c
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"b", "c", "a", "d"}) {
		t.Fatalf("after drag a->c: %v", got)
	}

	s.Reorder("d", "b") // drag d up onto b
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"d", "b", "c", "a"}) {
		t.Fatalf("after drag d->b: %v", got)
	}

	s.Reorder("b", "b") // self-drop: no-op
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"d", "b", "c", "a"}) {
		t.Fatalf("self drop must be a no-op: %v", got)
	}

	s.Reorder("ghost", "b") // unknown id: no-op
	if s.Len() != 4 {
		t.Fatalf("unknown from id changed the list: %v", s.IDs())
	}
}

func TestInsertAt(t *testing.T) {
	s := NewSequence("a", "b", "c")

	s.InsertAt("head", -1)
	if got := s.IDs()[0]; got != "head" {
		t.Fatalf("InsertAt(-1) must insert at index 0, got head=%s", got)
	}

	s.InsertAt("tail", s.Len()-1)
	if got := s.IDs()[s.Len()-1]; got != "tail" {
		t.Fatalf("InsertAt(lastIndex) must append, got tail=%s", got)
	}

	s.InsertAt("mid", 1) // after entry at index 1
	if got := s.IDs()[2]; got != "mid" {
		t.Fatalf("InsertAt(1) must land at index 2, got %v", s.IDs())
	}

	// Past-the-end indexes clamp to append.
	s.InsertAt("clamped", 99)
	if got := s.IDs()[s.Len()-1]; got != "clamped" {
		t.Fatalf("oversized afterIndex must append, got %v", s.IDs())
	}
}

func TestRemove_ThenIndexOpsDoNotThrow(t *testing.T) {
	s := NewSequence("a", "b", "c")
	s.Remove("b")

	if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("after remove: %v", got)
	}

	// Stale indexes from before the removal stay safe.
	s.MoveUp(2)
	s.MoveDown(2)
	s.InsertAt("x", 2)
	if s.Len() != 3 {
		t.Fatalf("insert after stale index: %v", s.IDs())
	}

	s.Remove("ghost") // no-op
	if s.Len() != 3 {
		t.Fatalf("removing unknown id changed the list: %v", s.IDs())
	}
}

func TestMarkerLifecycle(t *testing.T) {
	s := NewSequence("a", "b")

	s.UpsertMarker()
	if !s.HasMarker() || s.MarkerIndex() != 0 {
		t.Fatalf("marker must be inserted at the head: %v", s.IDs())
	}

	// Moving the marker, then editing the draft, keeps its position.
	s.MoveDown(0)
	s.UpsertMarker()
	if s.MarkerIndex() != 1 {
		t.Fatalf("second upsert must preserve position, got %d", s.MarkerIndex())
	}

	// Only one marker ever exists.
	count := 0
	for _, e := range s.Entries() {
		if e.IsNew {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one marker, got %d", count)
	}

	s.ClearMarker()
	if s.HasMarker() || s.Len() != 2 {
		t.Fatalf("marker must be removed entirely: %v", s.IDs())
	}
}

func TestNormalize_AppendsMissingSortedByID(t *testing.T) {
	s := NewSequence("z")
	s.Normalize([]string{"z", "b", "a", "c"})

	if got := s.IDs(); !reflect.DeepEqual(got, []string{"z", "a", "b", "c"}) {
		t.Fatalf("fallback order must append ascending by id: %v", got)
	}

	// Idempotent.
	s.Normalize([]string{"z", "b", "a", "c"})
	if s.Len() != 4 {
		t.Fatalf("normalize must not duplicate: %v", s.IDs())
	}
}
