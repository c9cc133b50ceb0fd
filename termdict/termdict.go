// Package termdict implements the prefix-compressed, ordered term
// dictionary stream and its bounded range builder (C5).
package termdict

import (
	"bytes"
	"encoding/binary"
)

// TermInfo locates a single term's posting list within a segment (§3).
type TermInfo struct {
	Offset          int64
	DocFreq         int
	HasPositions    bool
	PositionsOffset int64
}

// EncodeTermInfo serialises a TermInfo as the wire format an entry's
// value occupies after its key: offset, doc frequency, an optional-value
// flag, and the positions offset when present.
func EncodeTermInfo(info TermInfo) []byte {
	buf := make([]byte, 0, 24)
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(info.Offset))
	buf = append(buf, tmp[:n]...)
	n = binary.PutUvarint(tmp[:], uint64(info.DocFreq))
	buf = append(buf, tmp[:n]...)
	if info.HasPositions {
		buf = append(buf, 1)
		n = binary.PutUvarint(tmp[:], uint64(info.PositionsOffset))
		buf = append(buf, tmp[:n]...)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

// decodeTermInfo reads a TermInfo from the front of data, returning it
// along with the unconsumed suffix.
func decodeTermInfo(data []byte) (TermInfo, []byte) {
	offset, n := binary.Uvarint(data)
	data = data[n:]
	docFreq, n := binary.Uvarint(data)
	data = data[n:]
	hasPositions := data[0] == 1
	data = data[1:]
	var posOffset uint64
	if hasPositions {
		posOffset, n = binary.Uvarint(data)
		data = data[n:]
	}
	return TermInfo{
		Offset:          int64(offset),
		DocFreq:         int(docFreq),
		HasPositions:    hasPositions,
		PositionsOffset: int64(posOffset),
	}, data
}

// EncodeEntry front-codes one (key, value) dictionary entry against
// prevKey: common_prefix_len, suffix_len, suffix bytes, serialised
// TermInfo (§3).
func EncodeEntry(prevKey, key []byte, info TermInfo) []byte {
	cp := commonPrefixLen(prevKey, key)
	suffix := key[cp:]

	var tmp [binary.MaxVarintLen64]byte
	out := make([]byte, 0, len(suffix)+16)
	n := binary.PutUvarint(tmp[:], uint64(cp))
	out = append(out, tmp[:n]...)
	n = binary.PutUvarint(tmp[:], uint64(len(suffix)))
	out = append(out, tmp[:n]...)
	out = append(out, suffix...)
	out = append(out, EncodeTermInfo(info)...)
	return out
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// decodeEntry decodes one entry from the front of data given the
// previously decoded key, returning the new key, the unconsumed suffix,
// and the entry's value.
func decodeEntry(data []byte, prevKey []byte) (newKey []byte, rest []byte, info TermInfo) {
	cp, n := binary.Uvarint(data)
	data = data[n:]
	suffixLen, n := binary.Uvarint(data)
	data = data[n:]
	suffix := data[:suffixLen]
	data = data[suffixLen:]

	newKey = make([]byte, int(cp)+len(suffix))
	copy(newKey, prevKey[:cp])
	copy(newKey[cp:], suffix)

	info, data = decodeTermInfo(data)
	return newKey, data, info
}

// checkpointStride bounds how far strictlyPreviousKey must linear-scan
// before finding its answer.
const checkpointStride = 64

type checkpoint struct {
	offset int
	key    []byte
}

// Dictionary is an in-memory, ordered, front-coded term dictionary: the
// producer of C5 range streams and of exact term lookups.
type Dictionary struct {
	data        []byte
	checkpoints []checkpoint
}

// NewDictionary wraps a front-coded byte stream (ascending keys) and
// builds the sparse checkpoint index strictlyPreviousKey searches.
func NewDictionary(data []byte) *Dictionary {
	d := &Dictionary{data: data}
	d.buildCheckpoints()
	return d
}

func (d *Dictionary) buildCheckpoints() {
	curKey := []byte{}
	offset := 0
	idx := 0
	for offset < len(d.data) {
		if idx%checkpointStride == 0 {
			d.checkpoints = append(d.checkpoints, checkpoint{offset: offset, key: append([]byte{}, curKey...)})
		}
		newKey, rest, _ := decodeEntry(d.data[offset:], curKey)
		offset = len(d.data) - len(rest)
		curKey = newKey
		idx++
	}
}

// floorCheckpoint returns the rightmost checkpoint whose key < bound.
func (d *Dictionary) floorCheckpoint(bound []byte) checkpoint {
	lo, hi := 0, len(d.checkpoints)-1
	best := d.checkpoints[0]
	for lo <= hi {
		mid := (lo + hi) / 2
		if bytes.Compare(d.checkpoints[mid].key, bound) < 0 {
			best = d.checkpoints[mid]
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// strictlyPreviousKey returns the largest key strictly less than bound
// and the byte offset of the entry that follows it (the first entry with
// key >= bound), per §4.6's builder contract.
func (d *Dictionary) strictlyPreviousKey(bound []byte) (key []byte, offset int) {
	cp := d.floorCheckpoint(bound)
	curKey, curOffset := cp.key, cp.offset
	for curOffset < len(d.data) {
		newKey, rest, _ := decodeEntry(d.data[curOffset:], curKey)
		if bytes.Compare(newKey, bound) >= 0 {
			return curKey, curOffset
		}
		curKey = newKey
		curOffset = len(d.data) - len(rest)
	}
	return curKey, curOffset
}

// firstGE returns the key just before, and the offset of, the first entry
// with key >= bound.
func (d *Dictionary) firstGE(bound []byte) (key []byte, offset int) {
	return d.strictlyPreviousKey(bound)
}

// firstGT returns the key just before, and the offset of, the first entry
// with key > bound (skipping past an entry exactly equal to bound, of
// which the dictionary holds at most one).
func (d *Dictionary) firstGT(bound []byte) (key []byte, offset int) {
	key, offset = d.strictlyPreviousKey(bound)
	for offset < len(d.data) {
		newKey, rest, _ := decodeEntry(d.data[offset:], key)
		if !bytes.Equal(newKey, bound) {
			break
		}
		key = newKey
		offset = len(d.data) - len(rest)
	}
	return key, offset
}

// Get performs an exact lookup, decoding sequentially from the nearest
// checkpoint.
func (d *Dictionary) Get(key []byte) (TermInfo, bool) {
	cp := d.floorCheckpoint(key)
	curKey, curOffset := cp.key, cp.offset
	for curOffset < len(d.data) {
		newKey, rest, info := decodeEntry(d.data[curOffset:], curKey)
		cmp := bytes.Compare(newKey, key)
		if cmp == 0 {
			return info, true
		}
		if cmp > 0 {
			return TermInfo{}, false
		}
		curKey = newKey
		curOffset = len(d.data) - len(rest)
	}
	return TermInfo{}, false
}

// Range starts a new bounded range builder over this dictionary.
func (d *Dictionary) Range() *RangeBuilder {
	return &RangeBuilder{dict: d, end: len(d.data)}
}
