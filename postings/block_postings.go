// Package postings implements the two-level posting-list cursor: C2
// (block-level) and C3 (document-level) from the query-execution core.
package postings

import "github.com/Dylan-DPC/tantivy/block"

// BlockSegmentPostings is the block-level cursor over one term's posting
// list (C2). It owns its decode buffers so repeated advance() calls, and
// reset() onto a different posting list, never reallocate them.
type BlockSegmentPostings struct {
	data []byte

	docs  [block.BlockSize]uint32
	freqs [block.BlockSize]uint32
	n     int // number of valid entries in docs/freqs after the last advance

	docOffset uint32 // last doc id of the previous block (delta base)

	remainingFullBlocks int
	remainingTailDocs    int
	docFreq              int
	hasFreq              bool
}

// NewBlockSegmentPostings builds a cursor over the encoded posting list
// for a term with the given document frequency. hasFreq selects whether a
// parallel frequency block/tail is interleaved after each doc block/tail;
// when false, Freqs() always yields 1s without touching data.
func NewBlockSegmentPostings(data []byte, docFreq int, hasFreq bool) *BlockSegmentPostings {
	p := &BlockSegmentPostings{}
	p.Reset(data, docFreq, hasFreq)
	return p
}

// Empty constructs a zero-length cursor whose first Advance returns false,
// for use as a default.
func Empty() *BlockSegmentPostings {
	return &BlockSegmentPostings{}
}

// Reset rebinds this cursor to a new posting list without discarding the
// decode buffers. Per spec, this does NOT reset any position state held
// by an owning SegmentPostings — callers must clear that separately (see
// SegmentPostings.Reset).
func (p *BlockSegmentPostings) Reset(data []byte, docFreq int, hasFreq bool) {
	p.data = data
	p.docOffset = 0
	p.n = 0
	p.docFreq = docFreq
	p.hasFreq = hasFreq
	p.remainingFullBlocks = docFreq / block.BlockSize
	p.remainingTailDocs = docFreq % block.BlockSize
}

// DocFreq returns the total number of documents in the posting list,
// independent of how many blocks have been consumed.
func (p *BlockSegmentPostings) DocFreq() int { return p.docFreq }

// Advance decodes the next block: a full 128-entry block if any remain,
// else the tail if any remain, else returns false.
func (p *BlockSegmentPostings) Advance() bool {
	switch {
	case p.remainingFullBlocks > 0:
		p.data = block.DecodeDocBlock(p.data, p.docOffset, p.docs[:])
		if p.hasFreq {
			p.data = block.DecodeFreqBlock(p.data, p.freqs[:])
		} else {
			for i := 0; i < block.BlockSize; i++ {
				p.freqs[i] = 1
			}
		}
		p.n = block.BlockSize
		p.docOffset = p.docs[p.n-1]
		p.remainingFullBlocks--
		return true
	case p.remainingTailDocs > 0:
		n := p.remainingTailDocs
		p.data = block.DecodeDocTail(p.data, p.docOffset, n, p.docs[:])
		if p.hasFreq {
			p.data = block.DecodeFreqTail(p.data, n, p.freqs[:])
		} else {
			for i := 0; i < n; i++ {
				p.freqs[i] = 1
			}
		}
		p.n = n
		p.docOffset = p.docs[p.n-1]
		p.remainingTailDocs = 0
		return true
	default:
		p.n = 0
		return false
	}
}

// Docs returns the doc ids decoded by the most recent successful Advance.
func (p *BlockSegmentPostings) Docs() []uint32 { return p.docs[:p.n] }

// Freqs returns the term frequencies decoded by the most recent successful
// Advance, aligned index-for-index with Docs().
func (p *BlockSegmentPostings) Freqs() []uint32 { return p.freqs[:p.n] }

// Doc returns the i-th doc id of the current block.
func (p *BlockSegmentPostings) Doc(i int) uint32 { return p.docs[i] }

// Freq returns the i-th term frequency of the current block.
func (p *BlockSegmentPostings) Freq(i int) uint32 { return p.freqs[i] }

// BlockLen returns the number of valid entries in the current block: 0
// before the first Advance, 128 for a full block, 1-127 for the tail.
func (p *BlockSegmentPostings) BlockLen() int { return p.n }

// Next is an iterator-style wrapper: it calls Advance and returns Docs()
// until the cursor is exhausted (nil slice signals end).
func (p *BlockSegmentPostings) Next() []uint32 {
	if !p.Advance() {
		return nil
	}
	return p.Docs()
}
