// ═══════════════════════════════════════════════════════════════════════════════
// DOC-ITERATOR ALGEBRA
// ═══════════════════════════════════════════════════════════════════════════════
// Every posting or query result is, underneath, a lazy stream of items in
// ascending doc-id order. Two generic primitives work over any such stream:
//
//   Advance(it, target) — skip forward to the first item with doc-id >= target
//   Conjunction         — intersect N streams in lock-step
//   Disjunction         — union N streams, deduplicated
//
// Conjunction and Disjunction never materialize an intermediate list: each
// call to Next pulls items from the input streams only until the next
// doc-id to yield is known.
// ═══════════════════════════════════════════════════════════════════════════════
package invidx

// DocItem is implemented by every item a doc iterator can yield.
type DocItem interface {
	GetDocID() uint32
}

// DocIterator is a lazy, doc-id-ascending sequence of items.
type DocIterator[T DocItem] interface {
	Next() (T, bool)
}

// Advancer is an optional capability: a doc iterator that can seek forward
// to a target doc-id faster than repeated Next calls (e.g. a roaring
// bitmap's compressed AdvanceIfNeeded).
type Advancer[T DocItem] interface {
	DocIterator[T]
	Advance(target uint32) (item T, matched bool, ok bool)
}

// Advance consumes items from it until the first one with doc-id >= target.
// ok is false on exhaustion; matched is true iff the returned item's doc-id
// equals target exactly.
func Advance[T DocItem](it DocIterator[T], target uint32) (item T, matched bool, ok bool) {
	if a, isAdvancer := it.(Advancer[T]); isAdvancer {
		return a.Advance(target)
	}
	for {
		next, more := it.Next()
		if !more {
			var zero T
			return zero, false, false
		}
		id := next.GetDocID()
		if id == target {
			return next, true, true
		}
		if id > target {
			return next, false, true
		}
	}
}

type emptyIterator[T DocItem] struct{}

func (emptyIterator[T]) Next() (T, bool) {
	var zero T
	return zero, false
}

// ConjunctionItem is the item yielded by a Conjunction: the shared doc-id and
// the per-input item that matched it, in input order.
type ConjunctionItem[T DocItem] struct {
	DocID uint32
	Items []T
}

func (c ConjunctionItem[T]) GetDocID() uint32 { return c.DocID }

// Conjunction intersects N non-empty doc iterators, yielding only doc-ids
// present in every one of them, in strictly increasing order.
type Conjunction[T DocItem] struct {
	iters []DocIterator[T]
}

func NewConjunction[T DocItem](iters ...DocIterator[T]) *Conjunction[T] {
	return &Conjunction[T]{iters: iters}
}

func (c *Conjunction[T]) Next() (ConjunctionItem[T], bool) {
	if len(c.iters) == 0 {
		var zero ConjunctionItem[T]
		return zero, false
	}

	items := make([]T, len(c.iters))
	var maxID uint32
	for i, it := range c.iters {
		item, more := it.Next()
		if !more {
			var zero ConjunctionItem[T]
			return zero, false
		}
		items[i] = item
		if id := item.GetDocID(); id > maxID {
			maxID = id
		}
	}

	for {
		matched := true
		for i := range items {
			if items[i].GetDocID() == maxID {
				continue
			}
			item, ok, more := Advance(c.iters[i], maxID)
			if !more {
				var zero ConjunctionItem[T]
				return zero, false
			}
			items[i] = item
			if !ok {
				maxID = item.GetDocID()
				matched = false
				break
			}
		}
		if matched {
			return ConjunctionItem[T]{DocID: maxID, Items: items}, true
		}
	}
}

// Disjunction unions N doc iterators, yielding each distinct doc-id present
// in any of them exactly once, in ascending order.
type Disjunction[T DocItem] struct {
	iters   []DocIterator[T]
	heads   []T
	has     []bool
	started bool
}

func NewDisjunction[T DocItem](iters ...DocIterator[T]) *Disjunction[T] {
	return &Disjunction[T]{
		iters: iters,
		heads: make([]T, len(iters)),
		has:   make([]bool, len(iters)),
	}
}

func (d *Disjunction[T]) ensureStarted() {
	if d.started {
		return
	}
	d.started = true
	for i, it := range d.iters {
		item, more := it.Next()
		d.heads[i] = item
		d.has[i] = more
	}
}

func (d *Disjunction[T]) Next() (T, bool) {
	d.ensureStarted()

	var minID uint32
	any := false
	for i := range d.iters {
		if !d.has[i] {
			continue
		}
		id := d.heads[i].GetDocID()
		if !any || id < minID {
			minID = id
			any = true
		}
	}
	if !any {
		var zero T
		return zero, false
	}

	var result T
	resultSet := false
	for i := range d.iters {
		if !d.has[i] || d.heads[i].GetDocID() != minID {
			continue
		}
		if !resultSet {
			result = d.heads[i]
			resultSet = true
		}
		item, more := d.iters[i].Next()
		d.heads[i] = item
		d.has[i] = more
	}
	return result, true
}
