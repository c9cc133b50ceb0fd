package postings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockSegmentPostingsTailOnly(t *testing.T) {
	docs := []uint32{10, 20, 30}
	freqs := []uint32{2, 3, 1}
	data := EncodePostingList(docs, freqs, true)

	bc := NewBlockSegmentPostings(data, len(docs), true)
	require.True(t, bc.Advance())
	require.Equal(t, docs, bc.Docs())
	require.Equal(t, freqs, bc.Freqs())
	require.False(t, bc.Advance())
}

func TestSegmentPostingsIterationAndDeletes(t *testing.T) {
	docs := []uint32{1, 2, 3, 4, 5}
	freqs := []uint32{1, 1, 1, 1, 1}
	data := EncodePostingList(docs, freqs, true)

	deletes := fakeDeletes{3: true}
	bc := NewBlockSegmentPostings(data, len(docs), true)
	sp := NewSegmentPostings(bc, deletes, nil)

	var seen []uint32
	for sp.Advance() {
		seen = append(seen, sp.Doc())
	}
	require.Equal(t, []uint32{1, 2, 4, 5}, seen)
}

type fakeDeletes map[uint32]bool

func (d fakeDeletes) Deleted(doc uint32) bool { return d[doc] }

func buildLargePostings(n int) (*BlockSegmentPostings, []uint32) {
	docs := make([]uint32, n)
	freqs := make([]uint32, n)
	for i := 0; i < n; i++ {
		docs[i] = uint32(i * 2)
		freqs[i] = 1
	}
	data := EncodePostingList(docs, freqs, true)
	return NewBlockSegmentPostings(data, n, true), docs
}

func TestSegmentPostingsSkipNextAcrossBlockBoundary(t *testing.T) {
	const n = 100000
	bc, docs := buildLargePostings(n)
	sp := NewSegmentPostings(bc, nil, nil)

	// Doc id 256 (= 2*128) is the first doc of the second 128-doc block.
	result := sp.SkipNext(256)
	require.Equal(t, Reached, result)
	require.Equal(t, uint32(256), sp.Doc())

	// An id between two real doc ids lands OverStep on the next one.
	result = sp.SkipNext(257)
	require.Equal(t, OverStep, result)
	require.Equal(t, uint32(258), sp.Doc())

	// Skipping past the final doc ends the cursor.
	result = sp.SkipNext(docs[n-1] + 1)
	require.Equal(t, End, result)
}

func TestSegmentPostingsResetReusesBlockCursor(t *testing.T) {
	bcA, docsA := buildLargePostings(300)
	sp := NewSegmentPostings(bcA, nil, nil)
	require.True(t, sp.Advance())
	require.Equal(t, docsA[0], sp.Doc())

	docsB := []uint32{7, 9, 11}
	freqsB := []uint32{1, 1, 1}
	dataB := EncodePostingList(docsB, freqsB, true)

	// Reset rebinds the same BlockSegmentPostings (no new allocation) and
	// clears cursor/position state.
	sp.Reset(dataB, len(docsB), true, nil)
	require.True(t, sp.Advance())
	require.Equal(t, uint32(7), sp.Doc())
	require.True(t, sp.Advance())
	require.Equal(t, uint32(9), sp.Doc())
}

func TestSegmentPostingsPositions(t *testing.T) {
	docs := []uint32{10, 20, 30}
	freqs := []uint32{2, 3, 1}
	data := EncodePostingList(docs, freqs, true)
	bc := NewBlockSegmentPostings(data, len(docs), true)

	deltas := []uint32{1, 4, 2, 1, 5, 7}
	posData := EncodePositions(deltas)
	sp := NewSegmentPostings(bc, nil, NewBytePositionReader(posData))

	require.True(t, sp.Advance())
	require.Equal(t, uint32(10), sp.Doc())

	require.True(t, sp.Advance())
	require.Equal(t, uint32(20), sp.Doc())
	require.Equal(t, []uint32{2, 3, 8}, sp.Positions())

	require.True(t, sp.Advance())
	require.Equal(t, uint32(30), sp.Doc())
	require.Equal(t, []uint32{7}, sp.Positions())

	require.False(t, sp.Advance())
}

func TestSegmentPostingsPositionsSkipUnread(t *testing.T) {
	docs := []uint32{1, 2, 3}
	freqs := []uint32{2, 3, 1}
	data := EncodePostingList(docs, freqs, true)
	bc := NewBlockSegmentPostings(data, len(docs), true)

	deltas := []uint32{1, 4, 2, 1, 5, 7}
	posData := EncodePositions(deltas)
	sp := NewSegmentPostings(bc, nil, NewBytePositionReader(posData))

	// Never reading doc 1's positions must not desynchronise doc 3's.
	require.Equal(t, Reached, sp.SkipNext(3))
	require.Equal(t, []uint32{7}, sp.Positions())
}
