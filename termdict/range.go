package termdict

// RangeBuilder narrows a Dictionary to a bounded sub-range of its
// keyspace before streaming (§4.6). Each bound call moves start/end
// independently, so Ge/Gt and Le/Lt may be combined in either order.
type RangeBuilder struct {
	dict     *Dictionary
	start    int
	startKey []byte
	end      int
}

// Ge restricts the range to keys >= bound.
func (b *RangeBuilder) Ge(bound []byte) *RangeBuilder {
	b.startKey, b.start = b.dict.firstGE(bound)
	return b
}

// Gt restricts the range to keys > bound.
func (b *RangeBuilder) Gt(bound []byte) *RangeBuilder {
	b.startKey, b.start = b.dict.firstGT(bound)
	return b
}

// Le restricts the range to keys <= bound.
func (b *RangeBuilder) Le(bound []byte) *RangeBuilder {
	_, b.end = b.dict.firstGT(bound)
	return b
}

// Lt restricts the range to keys < bound.
func (b *RangeBuilder) Lt(bound []byte) *RangeBuilder {
	_, b.end = b.dict.firstGE(bound)
	return b
}

// IntoStream finalises the range and returns a Streamer positioned so
// that its first Advance lands on the first in-range key.
func (b *RangeBuilder) IntoStream() *Streamer {
	end := b.end
	if end > len(b.dict.data) {
		end = len(b.dict.data)
	}
	start := b.start
	if start > end {
		start = end
	}
	return &Streamer{
		data:       b.dict.data[start:end],
		currentKey: append([]byte{}, b.startKey...),
	}
}

// Streamer pulls (key, value) entries out of a finalised range in
// ascending order.
type Streamer struct {
	data         []byte
	currentKey   []byte
	currentValue TermInfo
}

// Advance decodes the next entry in the range, reporting whether one
// was available.
func (s *Streamer) Advance() bool {
	if len(s.data) == 0 {
		return false
	}
	newKey, rest, info := decodeEntry(s.data, s.currentKey)
	s.currentKey = newKey
	s.data = rest
	s.currentValue = info
	return true
}

// Key returns the current entry's key.
func (s *Streamer) Key() []byte { return s.currentKey }

// Value returns the current entry's TermInfo.
func (s *Streamer) Value() TermInfo { return s.currentValue }
