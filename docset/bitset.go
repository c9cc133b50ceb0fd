package docset

import "github.com/RoaringBitmap/roaring"

// BitsetDocSet iterates the set bits of a roaring bitmap in ascending
// order. It is the materialised result of a range query (§4.4, §4.5):
// RangeWeight inserts every matching doc into a per-segment bitmap and
// wraps it in a BitsetDocSet rather than multi-way merging term postings
// at query time.
type BitsetDocSet struct {
	bitmap   *roaring.Bitmap
	iter     roaring.IntPeekable
	cur      uint32
	hasValue bool
}

// NewBitsetDocSet wraps bitmap for ordered, seekable traversal.
func NewBitsetDocSet(bitmap *roaring.Bitmap) *BitsetDocSet {
	return &BitsetDocSet{bitmap: bitmap, iter: bitmap.Iterator()}
}

func (b *BitsetDocSet) Advance() bool {
	if !b.iter.HasNext() {
		b.hasValue = false
		return false
	}
	b.cur = b.iter.Next()
	b.hasValue = true
	return true
}

// SkipNext advances to the next set bit at or after target.
func (b *BitsetDocSet) SkipNext(target uint32) SkipResult {
	b.iter.AdvanceIfNeeded(target)
	if !b.iter.HasNext() {
		b.hasValue = false
		return End
	}
	b.cur = b.iter.Next()
	b.hasValue = true
	if b.cur == target {
		return Reached
	}
	return OverStep
}

func (b *BitsetDocSet) Doc() uint32 { return b.cur }

// SizeHint returns the bitmap's cardinality: an exact count here, since a
// materialised range-query bitmap already excludes whatever the caller
// chose not to insert (it is not further discounted for deletes, matching
// every other docset in this package).
func (b *BitsetDocSet) SizeHint() int { return int(b.bitmap.GetCardinality()) }

// ConstScorer pairs any DocSet with a fixed score of 1.0. It is the
// scorer produced for range queries, which carry no per-document ranking
// signal beyond membership (§4.4).
type ConstScorer struct {
	DocSet
	score float32
}

// NewConstScorer wraps ds with a constant score of 1.0.
func NewConstScorer(ds DocSet) *ConstScorer {
	return &ConstScorer{DocSet: ds, score: 1.0}
}

// Score always returns 1.0.
func (c *ConstScorer) Score() float32 { return c.score }
