// ═══════════════════════════════════════════════════════════════════════════════
// POSTING LIST: HYBRID STORAGE
// ═══════════════════════════════════════════════════════════════════════════════
// A posting list must answer two different questions cheaply:
//
//  1. "Which documents contain this term?" — doc-only iteration, used by
//     conjunction/disjunction over many terms at once.
//  2. "Where, exactly, does this term occur in one document?" — doc+position
//     iteration, used by phrase matching.
//
// We store both views side by side:
//
//   bitmap    *roaring.Bitmap  →  the set of doc-ids, for fast doc-only
//                                  streaming and Advance via AdvanceIfNeeded
//   docs      []DocEntry       →  doc-id, term-frequency, and an offset into
//   positions []uint32             the flat positions buffer, for the
//                                  position-aware view
//
// Keeping the bitmap gives the doc-only iterator an O(1)-ish compressed
// advance instead of a linear scan over docs; the flat positions buffer
// keeps the position-aware view allocation-free per document.
// ═══════════════════════════════════════════════════════════════════════════════
package invidx

import "github.com/RoaringBitmap/roaring"

// DocEntry is the per-document record inside one posting: which document,
// how many times the term occurs in it, and where its positions begin in
// the posting's flat positions buffer.
type DocEntry struct {
	DocID           uint32
	Freq            uint32
	PositionsOffset uint32
}

// DocIDItem is the doc-only item yielded by Posting.IterDocs.
type DocIDItem struct {
	DocID uint32
}

func (d DocIDItem) GetDocID() uint32 { return d.DocID }

// DocIDPosItem is the doc+position item yielded by Posting.IterDocsPos.
// Positions is a read-only view into the posting's flat positions buffer.
type DocIDPosItem struct {
	DocID     uint32
	Positions []uint32
}

func (d DocIDPosItem) GetDocID() uint32 { return d.DocID }

// Posting is the per-term record: a sorted, doc-id-increasing list of
// document entries, each with a term frequency and a slice range into a
// flat positions vector.
type Posting interface {
	Len() int
	AddToken(docID, position uint32)
	IterDocs() DocIterator[DocIDItem]
	IterDocsPos() DocIterator[DocIDPosItem]
}

// newPosting returns an empty, writable posting.
func newPosting() Posting {
	return &postingImpl{bitmap: roaring.NewBitmap()}
}

type postingImpl struct {
	docs      []DocEntry
	positions []uint32
	bitmap    *roaring.Bitmap
}

func (p *postingImpl) Len() int { return len(p.docs) }

// AddToken appends one occurrence. Precondition: docID is greater than or
// equal to the doc-id of the last entry, if any — upheld by the index,
// which only ever advances its doc-id counter.
func (p *postingImpl) AddToken(docID, position uint32) {
	if len(p.docs) == 0 || p.docs[len(p.docs)-1].DocID != docID {
		p.docs = append(p.docs, DocEntry{
			DocID:           docID,
			PositionsOffset: uint32(len(p.positions)),
		})
		p.bitmap.Add(docID)
	}
	last := &p.docs[len(p.docs)-1]
	last.Freq++
	p.positions = append(p.positions, position)
}

func (p *postingImpl) IterDocs() DocIterator[DocIDItem] {
	return &bitmapDocIterator{it: p.bitmap.Iterator()}
}

func (p *postingImpl) IterDocsPos() DocIterator[DocIDPosItem] {
	return &sliceDocPosIterator{docs: p.docs, positions: p.positions}
}

// emptyPosting is a singleton read-only posting returned by the index for
// unknown term keys, so call sites never need a null check before
// iterating. Its AddToken is a no-op; the index never calls it, since it
// only ever obtains a writable posting via newPosting.
type emptyPosting struct{}

var emptyPostingSingleton Posting = emptyPosting{}

func (emptyPosting) Len() int                              { return 0 }
func (emptyPosting) AddToken(docID, position uint32)       {}
func (emptyPosting) IterDocs() DocIterator[DocIDItem]       { return emptyIterator[DocIDItem]{} }
func (emptyPosting) IterDocsPos() DocIterator[DocIDPosItem] { return emptyIterator[DocIDPosItem]{} }

// bitmapDocIterator walks a posting's roaring bitmap in ascending doc-id
// order. It implements Advancer so the generic Advance helper can exploit
// the bitmap's compressed AdvanceIfNeeded instead of a linear scan.
type bitmapDocIterator struct {
	it roaring.IntPeekable
}

func (b *bitmapDocIterator) Next() (DocIDItem, bool) {
	if !b.it.HasNext() {
		return DocIDItem{}, false
	}
	return DocIDItem{DocID: b.it.Next()}, true
}

func (b *bitmapDocIterator) Advance(target uint32) (DocIDItem, bool, bool) {
	if !b.it.HasNext() {
		return DocIDItem{}, false, false
	}
	b.it.AdvanceIfNeeded(target)
	if !b.it.HasNext() {
		return DocIDItem{}, false, false
	}
	v := b.it.Next()
	return DocIDItem{DocID: v}, v == target, true
}

// sliceDocPosIterator walks a posting's DocEntry slice directly, so that
// positions remain attached to each yielded item.
type sliceDocPosIterator struct {
	docs      []DocEntry
	positions []uint32
	idx       int
}

func (s *sliceDocPosIterator) item(d DocEntry) DocIDPosItem {
	start := d.PositionsOffset
	end := d.PositionsOffset + d.Freq
	return DocIDPosItem{DocID: d.DocID, Positions: s.positions[start:end]}
}

func (s *sliceDocPosIterator) Next() (DocIDPosItem, bool) {
	if s.idx >= len(s.docs) {
		return DocIDPosItem{}, false
	}
	d := s.docs[s.idx]
	s.idx++
	return s.item(d), true
}

func (s *sliceDocPosIterator) Advance(target uint32) (DocIDPosItem, bool, bool) {
	for s.idx < len(s.docs) {
		d := s.docs[s.idx]
		if d.DocID >= target {
			s.idx++
			return s.item(d), d.DocID == target, true
		}
		s.idx++
	}
	return DocIDPosItem{}, false, false
}
