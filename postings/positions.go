package postings

import "encoding/binary"

// PositionReader streams variable-int-coded position deltas for one
// field's positions file. Implementations must support fast-forwarding
// past units this cursor never materialises (lazy position skip, §4.3.3).
type PositionReader interface {
	// Skip advances past n delta values without decoding them.
	Skip(n int)
	// ReadDeltas decodes exactly n delta values into out[:n].
	ReadDeltas(n int, out []uint32)
}

// BytePositionReader is the reference PositionReader: a flat byte slice
// of varint-coded deltas, as produced by a single-segment positions file.
type BytePositionReader struct {
	data []byte
}

// NewBytePositionReader wraps data as a PositionReader starting at its
// first byte.
func NewBytePositionReader(data []byte) *BytePositionReader {
	return &BytePositionReader{data: data}
}

func (r *BytePositionReader) Skip(n int) {
	for i := 0; i < n; i++ {
		_, width := binary.Uvarint(r.data)
		r.data = r.data[width:]
	}
}

func (r *BytePositionReader) ReadDeltas(n int, out []uint32) {
	for i := 0; i < n; i++ {
		v, width := binary.Uvarint(r.data)
		r.data = r.data[width:]
		out[i] = uint32(v)
	}
}

// EncodePositions varint-encodes a sequence of position deltas, for use by
// test fixtures and segment/memseg.
func EncodePositions(deltas []uint32) []byte {
	out := make([]byte, 0, len(deltas)*2)
	buf := make([]byte, binary.MaxVarintLen64)
	for _, d := range deltas {
		n := binary.PutUvarint(buf, uint64(d))
		out = append(out, buf[:n]...)
	}
	return out
}

// positionComputer is the lazy position-materialisation state attached to
// a SegmentPostings cursor (§4.3.3). It defers decompression until
// Positions()/DeltaPositions() is called, accumulating a skip count as the
// cursor advances past documents whose positions are never read.
type positionComputer struct {
	reader PositionReader

	pendingSkip int // term-freq units not yet skipped in the stream

	deltaBuf    []uint32 // reused delta buffer
	positionBuf []uint32 // reused absolute-position buffer, grows monotonically
	loadedFor   int       // term_freq() this buffer was last loaded for, -1 if stale
}

func newPositionComputer(reader PositionReader) *positionComputer {
	return &positionComputer{reader: reader, loadedFor: -1}
}

// skip records that termFreq more position-stream units must be
// fast-forwarded past before the next read.
func (c *positionComputer) skip(termFreq int) {
	c.pendingSkip += termFreq
	c.loadedFor = -1
}

// reset clears all accumulated skip state and marks the (kept) buffers
// stale, used when a
// SegmentPostings is rebound onto a different term's postings.
func (c *positionComputer) reset(reader PositionReader) {
	c.reader = reader
	c.pendingSkip = 0
	c.loadedFor = -1
}

func (c *positionComputer) ensureLoaded(termFreq int) {
	if c.reader == nil {
		return
	}
	if c.loadedFor == termFreq && c.pendingSkip == 0 {
		return
	}
	if c.pendingSkip > 0 {
		c.reader.Skip(c.pendingSkip)
		c.pendingSkip = 0
	}
	if cap(c.deltaBuf) < termFreq {
		c.deltaBuf = make([]uint32, termFreq)
	}
	if cap(c.positionBuf) < termFreq {
		c.positionBuf = make([]uint32, termFreq)
	}
	c.deltaBuf = c.deltaBuf[:termFreq]
	c.positionBuf = c.positionBuf[:termFreq]
	c.reader.ReadDeltas(termFreq, c.deltaBuf)
	var sum uint32
	for i, d := range c.deltaBuf {
		sum += d
		c.positionBuf[i] = sum
	}
	c.loadedFor = termFreq
}

// positions returns the absolute cumulative positions for the current
// document (length == termFreq), decoding lazily on first call.
func (c *positionComputer) positions(termFreq int) []uint32 {
	if c.reader == nil {
		return nil
	}
	c.ensureLoaded(termFreq)
	return c.positionBuf[:termFreq]
}

// deltaPositions returns the raw deltas for the current document, without
// the prefix-sum step.
func (c *positionComputer) deltaPositions(termFreq int) []uint32 {
	if c.reader == nil {
		return nil
	}
	c.ensureLoaded(termFreq)
	return c.deltaBuf[:termFreq]
}
