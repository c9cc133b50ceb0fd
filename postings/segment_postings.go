package postings

// DeleteBitSet reports whether a doc id has been tombstoned. A nil
// DeleteBitSet is treated as "nothing deleted".
type DeleteBitSet interface {
	Deleted(doc uint32) bool
}

// SkipResult is the three-way outcome of SegmentPostings.SkipNext, per §4.3.2.
type SkipResult int

const (
	// Reached means a live doc equal to the target is now current.
	Reached SkipResult = iota
	// OverStep means a live doc strictly greater than the target is now current.
	OverStep
	// End means no live doc >= target exists; the cursor is terminal.
	End
)

func (r SkipResult) String() string {
	switch r {
	case Reached:
		return "Reached"
	case OverStep:
		return "OverStep"
	default:
		return "End"
	}
}

// SegmentPostings is the document-level iterator (C3): per-doc advance,
// forward seek, deletion filtering, and lazy position materialisation.
type SegmentPostings struct {
	block *BlockSegmentPostings
	cur   int // index into the current block; blockSizeSentinel before the first Advance

	deletes DeleteBitSet
	pos     *positionComputer
	posRead bool // whether Positions()/DeltaPositions() was already called for the doc at cur
}

// NewSegmentPostings wraps a block cursor as a document-level iterator.
// deletes may be nil. positions may be nil when the posting list was
// opened without position data.
func NewSegmentPostings(bc *BlockSegmentPostings, deletes DeleteBitSet, positions PositionReader) *SegmentPostings {
	return &SegmentPostings{
		block:   bc,
		cur:     blockSizeSentinel,
		deletes: deletes,
		pos:     newPositionComputer(positions),
	}
}

// blockSizeSentinel forces a block load on the first Advance; it must be
// >= any real block length (<=128), matching §4.3's "cur = 128 before the
// first advance" convention.
const blockSizeSentinel = 1 << 30

// Reset rebinds this cursor onto a new posting list and clears the
// position-skip state the lower-level BlockSegmentPostings.Reset
// deliberately leaves untouched (§9 Open Question 3).
func (s *SegmentPostings) Reset(data []byte, docFreq int, hasFreq bool, positions PositionReader) {
	s.block.Reset(data, docFreq, hasFreq)
	s.cur = blockSizeSentinel
	s.posRead = false
	s.pos.reset(positions)
}

// foldSkip folds doc i's term freq into the pending position-stream skip,
// unless i is the doc we are sitting on and its positions were already
// read (in which case the position reader has already advanced past it,
// and only the cached buffers are marked stale).
func (s *SegmentPostings) foldSkip(i int) {
	if i == s.cur && s.posRead {
		s.pos.loadedFor = -1
		return
	}
	s.pos.skip(int(s.block.Freq(i)))
}

// Advance moves to the next live (non-deleted) doc, returning false once
// both the intra-block and block-level sequences are exhausted.
func (s *SegmentPostings) Advance() bool {
	for {
		if s.cur < s.block.BlockLen() {
			// Leaving the current doc: its positions are never visited
			// again, so fold its term freq into the pending position-
			// stream skip now, while the block holding it is still current.
			s.foldSkip(s.cur)
		}
		s.cur++
		s.posRead = false
		if s.cur >= s.block.BlockLen() {
			if !s.block.Advance() {
				return false
			}
			s.cur = 0
		}
		if s.deletes == nil || !s.deletes.Deleted(s.block.Doc(s.cur)) {
			return true
		}
	}
}

// Doc returns the current doc id. Valid only after Advance/SkipNext
// returned true/Reached/OverStep.
func (s *SegmentPostings) Doc() uint32 { return s.block.Doc(s.cur) }

// TermFreq returns the term frequency of the current doc.
func (s *SegmentPostings) TermFreq() uint32 { return s.block.Freq(s.cur) }

// DocFreq returns the posting list's stored document frequency: a tight
// upper bound that does not discount deletions (§4.3.4).
func (s *SegmentPostings) DocFreq() int { return s.block.DocFreq() }

// SizeHint is an alias for DocFreq, matching the docset contract.
func (s *SegmentPostings) SizeHint() int { return s.DocFreq() }

// Positions returns the absolute cumulative positions of the current doc
// (length == TermFreq()), decoding lazily. Empty if opened without
// positions.
func (s *SegmentPostings) Positions() []uint32 {
	s.posRead = true
	return s.pos.positions(int(s.TermFreq()))
}

// DeltaPositions returns the raw position deltas of the current doc,
// without the prefix-sum step.
func (s *SegmentPostings) DeltaPositions() []uint32 {
	s.posRead = true
	return s.pos.deltaPositions(int(s.TermFreq()))
}

// SkipNext advances to the smallest live doc d >= target (§4.3.2).
func (s *SegmentPostings) SkipNext(target uint32) SkipResult {
	if !s.Advance() {
		return End
	}

	for s.block.Doc(s.block.BlockLen()-1) < target {
		for i := s.cur; i < s.block.BlockLen(); i++ {
			s.foldSkip(i)
		}
		if !s.block.Advance() {
			s.cur = s.block.BlockLen()
			return End
		}
		s.cur = 0
		s.posRead = false
	}

	if target < s.block.Doc(s.cur) {
		return OverStep
	}

	i := s.expBinarySearch(target)
	for j := s.cur; j < i; j++ {
		s.foldSkip(j)
	}
	s.cur = i
	s.posRead = false

	if s.deletes == nil || !s.deletes.Deleted(s.block.Doc(i)) {
		if s.block.Doc(i) == target {
			return Reached
		}
		return OverStep
	}

	if s.Advance() {
		return OverStep
	}
	return End
}

// expBinarySearch finds the leftmost index i in [cur, blockLen) such that
// docs[i] >= target, via exponential search followed by a narrowed binary
// search, per §4.3.2 step 4.
func (s *SegmentPostings) expBinarySearch(target uint32) int {
	blockLen := s.block.BlockLen()
	lo := s.cur
	count := 1
	hi := lo
	for {
		next := lo + count
		if next >= blockLen || s.block.Doc(next) >= target {
			hi = next
			if hi > blockLen {
				hi = blockLen
			}
			break
		}
		lo = next
		count *= 2
	}
	// Binary search [lo, hi) for the lower bound, keeping lo as a
	// known-too-small index
	// (docs[lo] < target, established by the exponential phase except on
	// the very first iteration where lo == s.cur and may already satisfy
	// the predicate).
	left, right := lo, hi
	if s.block.Doc(left) >= target {
		return left
	}
	left++
	for left < right {
		mid := left + (right-left)/2
		if s.block.Doc(mid) >= target {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}
