// Package segment defines the reader-side surface a query runs against:
// a segment's inverted index, fieldnorms, and delete state (§6).
package segment

import (
	"github.com/Dylan-DPC/tantivy/postings"
	"github.com/Dylan-DPC/tantivy/termdict"
)

// IndexingOptions selects how much a field's posting lists carry, mirroring
// how much was written at index time.
type IndexingOptions int

const (
	// Basic postings carry doc ids only (Freqs() always yields 1s).
	Basic IndexingOptions = iota
	// Freq postings additionally carry per-doc term frequencies.
	Freq
	// FreqAndPositions postings carry frequencies and position deltas.
	FreqAndPositions
)

func (o IndexingOptions) hasFreq() bool { return o == Freq || o == FreqAndPositions }

// FieldnormsReader exposes a field's per-doc length, used by TermScorer's
// fieldnorm factor (§5).
type FieldnormsReader interface {
	FieldNorm(doc uint32) uint32
}

// InvertedIndex is one field's term dictionary together with the postings
// factory that resolves a TermInfo into a live cursor.
type InvertedIndex interface {
	// Terms returns the field's term dictionary.
	Terms() *termdict.Dictionary
	// ReadPostings builds a document-level postings cursor for info, honouring
	// options (positions are only decoded when both the caller asks for them
	// and the field was indexed with FreqAndPositions).
	ReadPostings(info termdict.TermInfo, options IndexingOptions) (*postings.SegmentPostings, error)
	// ReadBlockPostings builds the block-level cursor (C2) for info directly,
	// with no deletion filtering and no position state — the form range
	// queries iterate, since they only need doc ids, never per-doc scoring.
	ReadBlockPostings(info termdict.TermInfo) (*postings.BlockSegmentPostings, error)
}

// Reader is a single segment's read-only view: the unit a Weight resolves
// a query against.
type Reader interface {
	// MaxDoc returns one past the largest doc id ever assigned in this
	// segment, including deleted docs.
	MaxDoc() uint32
	// InvertedIndex returns the named field's inverted index, or an error if
	// the field does not exist or was not indexed.
	InvertedIndex(field string) (InvertedIndex, error)
	// FieldnormsReader returns the named field's fieldnorms, or an error if
	// none were recorded for it.
	FieldnormsReader(field string) (FieldnormsReader, error)
	// DeleteBitSet returns the segment's tombstones, or nil if none exist.
	DeleteBitSet() postings.DeleteBitSet
}
