// Package docset implements the set-algebraic combinators over ordered
// doc-id iterators (C4), plus the shared seek/advance contract that
// postings.SegmentPostings also satisfies.
package docset

import "github.com/Dylan-DPC/tantivy/postings"

// SkipResult re-exports postings.SkipResult so docset implementations
// never need to import postings just to name their return type's values.
type SkipResult = postings.SkipResult

const (
	Reached  = postings.Reached
	OverStep = postings.OverStep
	End      = postings.End
)

// DocSet is the ordered, seekable iterator contract shared by
// postings.SegmentPostings and every combinator in this package:
// doc() values after a successful Advance/SkipNext are strictly
// increasing, deleted docs never surface, and SizeHint is an upper bound
// on the number of docs (never discounted for deletes).
type DocSet interface {
	Advance() bool
	SkipNext(target uint32) SkipResult
	Doc() uint32
	SizeHint() int
}
