// ═══════════════════════════════════════════════════════════════════════════════
// INDEX: field mappings + the postings dictionary
// ═══════════════════════════════════════════════════════════════════════════════
// An Index owns a field→tokenizer mapping table and a global postings
// dictionary keyed by "field:term". Documents are appended one at a time;
// each field value is fed through its registered tokenizer, and every
// resulting token is folded into the posting for its "field:term" key.
//
// AddDoc validates every field's mapping before mutating any posting, so a
// document that names an unmapped field leaves no partial trace behind and
// the doc-id counter does not advance.
// ═══════════════════════════════════════════════════════════════════════════════
package invidx

import "log/slog"

// Index holds field→tokenizer mappings, the postings dictionary, and the
// next doc-id to assign. It is not safe for concurrent writers, and no
// query iterator derived from it remains valid once the index is mutated.
type Index struct {
	nextDocID uint32
	mappings  map[string]Tokenizer
	postings  map[string]Posting
	logger    *slog.Logger
}

// NewIndex returns an empty index with no field mappings.
func NewIndex() *Index {
	return &Index{
		mappings: make(map[string]Tokenizer),
		postings: make(map[string]Posting),
		logger:   slog.Default(),
	}
}

// SetMapping registers the tokenizer to use for a field. Fails if the field
// already has one; the existing tokenizer is left in place.
func (idx *Index) SetMapping(field string, tokenizer Tokenizer) error {
	if _, exists := idx.mappings[field]; exists {
		return &MappingError{Field: field}
	}
	idx.mappings[field] = tokenizer
	idx.logger.Debug("registered field mapping", "field", field)
	return nil
}

// AddDoc tokenizes every (field, value) pair in doc and folds the resulting
// tokens into the postings keyed by "field:term". The document's doc-id is
// the index's next-doc-id counter, assigned only if the whole document
// indexes successfully.
func (idx *Index) AddDoc(doc *Document) error {
	for fv := range doc.Fields() {
		if _, ok := idx.mappings[fv.Field]; !ok {
			return &MissingMappingError{Field: fv.Field}
		}
	}

	docID := idx.nextDocID
	for fv := range doc.Fields() {
		tokenizer := idx.mappings[fv.Field]
		for tok := range tokenizer.Tokenize(fv.Value) {
			key := fv.Field + ":" + tok.Text
			posting, ok := idx.postings[key]
			if !ok {
				posting = newPosting()
				idx.postings[key] = posting
			}
			posting.AddToken(docID, tok.Position)
		}
	}
	idx.nextDocID++
	idx.logger.Debug("indexed document", "doc_id", docID, "fields", doc.Len())
	return nil
}

// GetPostingsList returns the posting for the exact key "field:term", or a
// shared empty posting if no term has been indexed under that key. The key
// is caller-assembled; GetPostingsList does not re-tokenize anything.
func (idx *Index) GetPostingsList(key string) Posting {
	if p, ok := idx.postings[key]; ok {
		return p
	}
	return emptyPostingSingleton
}
