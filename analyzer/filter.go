package analyzer

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// TokenFilter transforms a TokenStream into another TokenStream: lower-
// casing, stemming, stop-word removal, and so on. Filters chain in the
// order an Analyzer lists them.
type TokenFilter interface {
	Wrap(TokenStream) TokenStream
	// Clone returns an independent copy, for filters holding per-use state.
	Clone() TokenFilter
}

// mapFilter applies fn to every token's Term, leaving offsets/position
// untouched; most filters in this package are one of these.
type mapFilter struct {
	fn func(string) string
}

func (f mapFilter) Wrap(ts TokenStream) TokenStream {
	return &mapTokenStream{inner: ts, fn: f.fn}
}

func (f mapFilter) Clone() TokenFilter { return f }

type mapTokenStream struct {
	inner TokenStream
	fn    func(string) string
	cur   Token
}

func (m *mapTokenStream) Advance() bool {
	if !m.inner.Advance() {
		return false
	}
	m.cur = m.inner.Token()
	m.cur.Term = m.fn(m.cur.Term)
	return true
}

func (m *mapTokenStream) Token() Token { return m.cur }

// LowerCaseFilter folds every term to lower case.
func LowerCaseFilter() TokenFilter {
	return mapFilter{fn: strings.ToLower}
}

// EnStemFilter reduces English terms to their Porter stem.
func EnStemFilter() TokenFilter {
	return mapFilter{fn: func(s string) string {
		return porterstemmer.StemString(s)
	}}
}

// removeLongFilter drops tokens whose Term exceeds limit runes, the way
// RemoveLongFilter::limit does: unlike mapFilter, it can remove tokens
// outright rather than just rewriting them, so it wraps the inner stream
// directly instead of going through mapTokenStream.
type removeLongFilter struct {
	limit int
}

func (f removeLongFilter) Wrap(ts TokenStream) TokenStream {
	return &removeLongTokenStream{inner: ts, limit: f.limit}
}

func (f removeLongFilter) Clone() TokenFilter { return f }

type removeLongTokenStream struct {
	inner TokenStream
	limit int
	cur   Token
}

func (r *removeLongTokenStream) Advance() bool {
	for r.inner.Advance() {
		tok := r.inner.Token()
		if len([]rune(tok.Term)) <= r.limit {
			r.cur = tok
			return true
		}
	}
	return false
}

func (r *removeLongTokenStream) Token() Token { return r.cur }

// RemoveLongFilter drops any token longer than limit runes, the way
// tantivy's RemoveLongFilter::limit(n) keeps pathological tokens (e.g. a
// run-on string with no word boundaries) out of the index.
func RemoveLongFilter(limit int) TokenFilter {
	return removeLongFilter{limit: limit}
}
