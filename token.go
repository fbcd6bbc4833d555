// Package invidx implements a small in-memory positional inverted index and
// a lazy doc-iterator query algebra over it.
//
// ═══════════════════════════════════════════════════════════════════════════════
// TOKENIZATION PIPELINE
// ═══════════════════════════════════════════════════════════════════════════════
// A Tokenizer turns one raw field value into a lazy sequence of Tokens, each
// carrying a 1-based position. Filters mutate a Token in place, in the order
// they were registered — the only bundled filter lower-cases the surface
// text; the only bundled tokenizer splits on Unicode whitespace.
//
// Position numbering starts at 1, reserving 0 as an unassigned/sentinel
// value for callers that need one.
// ═══════════════════════════════════════════════════════════════════════════════
package invidx

import (
	"iter"
	"strings"
)

// Token is a single split-and-filtered unit produced by a Tokenizer.
type Token struct {
	Position uint32
	Text     string
}

// Filter mutates a single Token in place.
type Filter interface {
	Apply(tok *Token)
}

// LowerCaseFilter folds a token's text to lower case.
type LowerCaseFilter struct{}

func (LowerCaseFilter) Apply(tok *Token) {
	tok.Text = strings.ToLower(tok.Text)
}

// Tokenizer exposes split-then-filter: Splits breaks an input string into
// raw parts, Tokenize numbers those parts starting at 1 and runs the
// registered filter chain over each in turn.
type Tokenizer interface {
	Splits(input string) iter.Seq[string]
	AddFilter(f Filter)
	Tokenize(input string) iter.Seq[Token]
}

// WhitespaceTokenizer splits on any maximal run of Unicode whitespace,
// skipping leading and trailing whitespace.
type WhitespaceTokenizer struct {
	filters []Filter
}

// NewWhitespaceTokenizer returns a tokenizer with no filters registered.
func NewWhitespaceTokenizer() *WhitespaceTokenizer {
	return &WhitespaceTokenizer{}
}

func (t *WhitespaceTokenizer) AddFilter(f Filter) {
	t.filters = append(t.filters, f)
}

func (t *WhitespaceTokenizer) Splits(input string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, part := range strings.Fields(input) {
			if !yield(part) {
				return
			}
		}
	}
}

// Tokenize numbers the parts of input starting at 1 and applies the filter
// chain, in registration order, to each token before it is emitted.
func (t *WhitespaceTokenizer) Tokenize(input string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		pos := uint32(1)
		for part := range t.Splits(input) {
			tok := Token{Position: pos, Text: part}
			for _, f := range t.filters {
				f.Apply(&tok)
			}
			pos++
			if !yield(tok) {
				return
			}
		}
	}
}
