package invidx

import "testing"

// sliceIterator is a minimal DocIterator[DocIDItem] backed by a plain slice,
// used to exercise Conjunction/Disjunction independent of posting storage.
type sliceIterator struct {
	ids []uint32
	idx int
}

func newSliceIterator(ids ...uint32) *sliceIterator {
	return &sliceIterator{ids: ids}
}

func (s *sliceIterator) Next() (DocIDItem, bool) {
	if s.idx >= len(s.ids) {
		return DocIDItem{}, false
	}
	id := s.ids[s.idx]
	s.idx++
	return DocIDItem{DocID: id}, true
}

// ═══════════════════════════════════════════════════════════════════════════════
// CONJUNCTION: intersection
// ═══════════════════════════════════════════════════════════════════════════════

func TestConjunction_Intersection(t *testing.T) {
	a := newSliceIterator(1, 2, 3, 5, 8)
	b := newSliceIterator(2, 3, 4, 8, 9)

	conj := NewConjunction[DocIDItem](a, b)

	var got []uint32
	for {
		item, ok := conj.Next()
		if !ok {
			break
		}
		got = append(got, item.DocID)
	}

	want := []uint32{2, 3, 8}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("item %d = %d, want %d", i, got[i], w)
		}
	}
}

func TestConjunction_EmptyWhenOneStreamEmpty(t *testing.T) {
	a := newSliceIterator(1, 2, 3)
	b := newSliceIterator()

	conj := NewConjunction[DocIDItem](a, b)
	if _, ok := conj.Next(); ok {
		t.Fatal("expected no matches when one stream is empty")
	}
}

func TestConjunction_ThreeStreams(t *testing.T) {
	a := newSliceIterator(1, 2, 3, 4, 5)
	b := newSliceIterator(2, 4, 5)
	c := newSliceIterator(0, 2, 5, 6)

	conj := NewConjunction[DocIDItem](a, b, c)

	var got []uint32
	for {
		item, ok := conj.Next()
		if !ok {
			break
		}
		got = append(got, item.DocID)
	}
	want := []uint32{2, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("item %d = %d, want %d", i, got[i], w)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// DISJUNCTION: union, deduplicated
// ═══════════════════════════════════════════════════════════════════════════════

func TestDisjunction_Union(t *testing.T) {
	a := newSliceIterator(1, 3, 5)
	b := newSliceIterator(2, 3, 6)

	disj := NewDisjunction[DocIDItem](a, b)

	var got []uint32
	for {
		item, ok := disj.Next()
		if !ok {
			break
		}
		got = append(got, item.DocID)
	}

	want := []uint32{1, 2, 3, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("item %d = %d, want %d", i, got[i], w)
		}
	}
}

func TestDisjunction_SingleStreamPassesThrough(t *testing.T) {
	a := newSliceIterator(1, 2, 3)
	disj := NewDisjunction[DocIDItem](a)

	for _, want := range []uint32{1, 2, 3} {
		item, ok := disj.Next()
		if !ok || item.DocID != want {
			t.Fatalf("got %+v, %v; want %d", item, ok, want)
		}
	}
	if _, ok := disj.Next(); ok {
		t.Fatal("expected exhaustion")
	}
}

func TestDisjunction_AdvanceSkipsForward(t *testing.T) {
	a := newSliceIterator(1, 3, 5, 9)
	b := newSliceIterator(2, 4, 6)

	disj := NewDisjunction[DocIDItem](a, b)

	item, matched, ok := Advance[DocIDItem](disj, 5)
	if !ok || !matched || item.DocID != 5 {
		t.Fatalf("Advance(5) = %+v, matched=%v, ok=%v", item, matched, ok)
	}

	item, ok = disj.Next()
	if !ok || item.DocID != 6 {
		t.Fatalf("next after Advance(5) = %+v, %v; want DocID=6", item, ok)
	}
}
