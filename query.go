// ═══════════════════════════════════════════════════════════════════════════════
// QUERY ENGINE
// ═══════════════════════════════════════════════════════════════════════════════
// Three query variants compile to a doc iterator over SearchHit:
//
//   TermQuery    — the doc-only stream of one posting
//   PhraseQuery  — a position-aware conjunction, filtered by a slop test
//   BooleanQuery — a conjunction of "must" results with a "must-not"
//                  disjunction subtracted out
//
// An unknown field or term is not an error: GetPostingsList hands back the
// shared empty posting, which contributes zero matches and collapses
// through conjunction to an empty result — exactly like any other term.
// ═══════════════════════════════════════════════════════════════════════════════
package invidx

// SearchHit names one matching document. It is the item type every query
// iterator yields, and itself satisfies DocItem so query results can be
// nested inside another Conjunction/Disjunction.
type SearchHit struct {
	DocID uint32
}

func (h SearchHit) GetDocID() uint32 { return h.DocID }

// HitIterator is the result stream of any Query.
type HitIterator = DocIterator[SearchHit]

// IndexSearcher gives read-only query access to an Index.
type IndexSearcher struct {
	index *Index
}

func NewIndexSearcher(index *Index) *IndexSearcher {
	return &IndexSearcher{index: index}
}

// Search compiles q against the searcher's index and returns its lazy
// result stream.
func (s *IndexSearcher) Search(q Query) HitIterator {
	return q.Execute(s)
}

// Query is the shared contract of every query variant.
type Query interface {
	Execute(s *IndexSearcher) HitIterator
}

// mapIterator adapts a DocIterator[S] to a DocIterator[T] by applying f to
// every item as it is pulled — used to turn a posting's doc-only stream
// into a SearchHit stream without copying anything eagerly.
type mapIterator[S DocItem, T DocItem] struct {
	inner DocIterator[S]
	f     func(S) T
}

func (m *mapIterator[S, T]) Next() (T, bool) {
	item, ok := m.inner.Next()
	if !ok {
		var zero T
		return zero, false
	}
	return m.f(item), true
}

// TermQuery matches every document whose field contains term, in ascending
// doc-id order with no duplicates.
type TermQuery struct {
	Field string
	Term  string
}

func NewTermQuery(field, term string) *TermQuery {
	return &TermQuery{Field: field, Term: term}
}

func (q *TermQuery) Execute(s *IndexSearcher) HitIterator {
	posting := s.index.GetPostingsList(q.Field + ":" + q.Term)
	return &mapIterator[DocIDItem, SearchHit]{
		inner: posting.IterDocs(),
		f:     func(d DocIDItem) SearchHit { return SearchHit{DocID: d.DocID} },
	}
}

// DefaultSlop is the phrase slop used when a PhraseQuery is built with
// NewPhraseQuery and never given an explicit one.
const DefaultSlop = 1

// PhraseQuery matches documents where some unordered choice of one position
// per term, all distinct, links up within Slop: each chosen position lies
// within Slop of at least one other chosen position.
type PhraseQuery struct {
	Field string
	Terms []string
	Slop  uint32
}

// NewPhraseQuery returns a phrase query over terms with the default slop.
func NewPhraseQuery(field string, terms []string) *PhraseQuery {
	return &PhraseQuery{Field: field, Terms: terms, Slop: DefaultSlop}
}

func (q *PhraseQuery) Execute(s *IndexSearcher) HitIterator {
	if len(q.Terms) == 0 {
		return emptyIterator[SearchHit]{}
	}

	iters := make([]DocIterator[DocIDPosItem], len(q.Terms))
	for i, term := range q.Terms {
		posting := s.index.GetPostingsList(q.Field + ":" + term)
		iters[i] = posting.IterDocsPos()
	}

	return &phraseHitIterator{
		conj: NewConjunction(iters...),
		slop: q.Slop,
	}
}

type phraseHitIterator struct {
	conj *Conjunction[DocIDPosItem]
	slop uint32
}

func (p *phraseHitIterator) Next() (SearchHit, bool) {
	for {
		item, ok := p.conj.Next()
		if !ok {
			return SearchHit{}, false
		}
		if matchesSlop(item.Items, p.slop) {
			return SearchHit{DocID: item.DocID}, true
		}
	}
}

// matchesSlop decides whether some unordered tuple of distinct positions,
// one drawn from each term's positions, can be built so that every member
// added after the anchor is within slop of some member already chosen.
//
// Reference procedure (spec §4.6): for each candidate anchor position from
// the first term, grow a working set by repeatedly picking, from each
// remaining term in turn, the first not-yet-used position that sits within
// slop of some position already in the set — until the set covers every
// term or a full pass adds nothing. Positions within one term are ascending,
// so a term's scan can stop once it has passed every member of the set.
func matchesSlop(items []DocIDPosItem, slop uint32) bool {
	k := len(items)
	if k == 0 {
		return false
	}
	if k == 1 {
		return len(items[0].Positions) > 0
	}

	first := items[0].Positions
	rest := items[1:]

	working := make([]uint32, 0, k)
	placed := make([]bool, len(rest))
	for _, anchor := range first {
		working = working[:0]
		working = append(working, anchor)
		clear(placed)

		for {
			grew := false
			for i, term := range rest {
				if placed[i] {
					continue
				}
				q, found := firstFittingPosition(term.Positions, working, slop)
				if found {
					working = append(working, q)
					placed[i] = true
					grew = true
				}
				if len(working) == k {
					return true
				}
			}
			if !grew {
				break
			}
		}
	}
	return false
}

// firstFittingPosition returns the smallest position in positions that is
// not already in working and sits within slop of some member of working.
func firstFittingPosition(positions []uint32, working []uint32, slop uint32) (uint32, bool) {
	for _, q := range positions {
		if containsPosition(working, q) {
			continue
		}
		fits := false
		pastAll := true
		for _, w := range working {
			diff := absDiff(q, w)
			if diff <= slop {
				fits = true
			}
			if q <= w {
				pastAll = false
			}
		}
		if fits {
			return q, true
		}
		if pastAll {
			break
		}
	}
	return 0, false
}

func containsPosition(positions []uint32, q uint32) bool {
	for _, p := range positions {
		if p == q {
			return true
		}
	}
	return false
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// BooleanQuery matches documents satisfying every Must sub-query and none
// of the MustNot sub-queries. With no Must sub-query it matches nothing.
type BooleanQuery struct {
	Must    []Query
	MustNot []Query
}

func NewBooleanQuery() *BooleanQuery {
	return &BooleanQuery{}
}

func (b *BooleanQuery) AddMust(q Query) *BooleanQuery {
	b.Must = append(b.Must, q)
	return b
}

func (b *BooleanQuery) AddMustNot(q Query) *BooleanQuery {
	b.MustNot = append(b.MustNot, q)
	return b
}

func (b *BooleanQuery) Execute(s *IndexSearcher) HitIterator {
	if len(b.Must) == 0 {
		return emptyIterator[SearchHit]{}
	}

	mustIters := make([]DocIterator[SearchHit], len(b.Must))
	for i, q := range b.Must {
		mustIters[i] = q.Execute(s)
	}
	conj := NewConjunction(mustIters...)

	if len(b.MustNot) == 0 {
		return &mapIterator[ConjunctionItem[SearchHit], SearchHit]{
			inner: conj,
			f:     func(c ConjunctionItem[SearchHit]) SearchHit { return SearchHit{DocID: c.DocID} },
		}
	}

	mustNotIters := make([]DocIterator[SearchHit], len(b.MustNot))
	for i, q := range b.MustNot {
		mustNotIters[i] = q.Execute(s)
	}

	return &booleanHitIterator{
		conj:    conj,
		mustNot: NewDisjunction(mustNotIters...),
	}
}

// booleanHitIterator walks the must-conjunction in order, keeping a single
// cursor over the must-not disjunction, per the algorithm in spec §4.6.
type booleanHitIterator struct {
	conj    *Conjunction[SearchHit]
	mustNot DocIterator[SearchHit]

	cursor      SearchHit
	cursorValid bool
	exhausted   bool
}

func (b *booleanHitIterator) primeCursor() {
	if b.cursorValid || b.exhausted {
		return
	}
	item, ok := b.mustNot.Next()
	if !ok {
		b.exhausted = true
		return
	}
	b.cursor = item
	b.cursorValid = true
}

func (b *booleanHitIterator) Next() (SearchHit, bool) {
	for {
		cand, ok := b.conj.Next()
		if !ok {
			return SearchHit{}, false
		}
		d := cand.DocID

		b.primeCursor()
		if b.exhausted {
			return SearchHit{DocID: d}, true
		}

		switch {
		case b.cursor.DocID == d:
			// drop d, leave the cursor where it is
			continue
		case b.cursor.DocID < d:
			item, matched, more := Advance(b.mustNot, d)
			if !more {
				b.exhausted = true
				return SearchHit{DocID: d}, true
			}
			b.cursor = item
			if matched {
				continue // drop d
			}
			return SearchHit{DocID: d}, true
		default:
			// cursor is ahead of d
			return SearchHit{DocID: d}, true
		}
	}
}

// QueryBuilder is a fluent convenience over the Query tree for a single
// field: Term/Phrase add a must clause, Not flips the next clause into a
// must-not. It compiles to the same Query values Execute understands and
// carries no ranking semantics.
type QueryBuilder struct {
	field   string
	must    []Query
	mustNot []Query
	negate  bool
}

func NewQueryBuilder(field string) *QueryBuilder {
	return &QueryBuilder{field: field}
}

func (qb *QueryBuilder) Term(term string) *QueryBuilder {
	return qb.add(NewTermQuery(qb.field, term))
}

func (qb *QueryBuilder) Phrase(terms ...string) *QueryBuilder {
	return qb.add(NewPhraseQuery(qb.field, terms))
}

func (qb *QueryBuilder) PhraseSlop(slop uint32, terms ...string) *QueryBuilder {
	pq := NewPhraseQuery(qb.field, terms)
	pq.Slop = slop
	return qb.add(pq)
}

// Not flips whichever clause is added next into a must-not clause.
func (qb *QueryBuilder) Not() *QueryBuilder {
	qb.negate = true
	return qb
}

func (qb *QueryBuilder) add(q Query) *QueryBuilder {
	if qb.negate {
		qb.mustNot = append(qb.mustNot, q)
		qb.negate = false
	} else {
		qb.must = append(qb.must, q)
	}
	return qb
}

// Build returns the BooleanQuery assembled so far.
func (qb *QueryBuilder) Build() *BooleanQuery {
	return &BooleanQuery{Must: qb.must, MustNot: qb.mustNot}
}
