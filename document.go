package invidx

import "iter"

// Document is a multi-valued mapping from field name to an ordered list of
// raw string values. The same field may be added more than once; every
// value is retained in add-order. Order across distinct fields is
// unspecified — the caller must not depend on it.
type Document struct {
	fields map[string][]string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{fields: make(map[string][]string)}
}

// FieldValue is one (field, value) pair emitted by Document.Fields.
type FieldValue struct {
	Field string
	Value string
}

func (d *Document) AddField(field, value string) {
	d.fields[field] = append(d.fields[field], value)
}

func (d *Document) Clear() {
	d.fields = make(map[string][]string)
}

func (d *Document) IsEmpty() bool {
	return len(d.fields) == 0
}

// Len returns the number of distinct fields, not the number of values.
func (d *Document) Len() int {
	return len(d.fields)
}

// Fields lazily yields every (field, value) pair exactly once. Values of one
// field are yielded in insertion order; the order in which fields themselves
// are visited is unspecified.
func (d *Document) Fields() iter.Seq[FieldValue] {
	return func(yield func(FieldValue) bool) {
		for field, values := range d.fields {
			for _, v := range values {
				if !yield(FieldValue{Field: field, Value: v}) {
					return
				}
			}
		}
	}
}
