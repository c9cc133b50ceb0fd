package postings

import "github.com/Dylan-DPC/tantivy/block"

// EncodePostingList block-compresses a full (docs, freqs) posting list the
// way a segment writer would flush it: successive BlockSize-doc blocks
// followed by a single variable-int tail, each doc block immediately
// followed by its paired freq block/tail when hasFreq is set. It is the
// encode-side counterpart BlockSegmentPostings.Advance decodes, used by
// segment/memseg and by tests building fixture posting lists.
func EncodePostingList(docs, freqs []uint32, hasFreq bool) []byte {
	if len(docs) != len(freqs) {
		panic("postings: docs and freqs length mismatch")
	}
	var out []byte
	base := uint32(0)
	i := 0
	for i+block.BlockSize <= len(docs) {
		docChunk := docs[i : i+block.BlockSize]
		out = append(out, block.EncodeDocBlock(docChunk, base)...)
		if hasFreq {
			out = append(out, block.EncodeFreqBlock(freqs[i:i+block.BlockSize])...)
		}
		base = docChunk[block.BlockSize-1]
		i += block.BlockSize
	}
	if i < len(docs) {
		out = append(out, block.EncodeDocTail(docs[i:], base)...)
		if hasFreq {
			out = append(out, block.EncodeFreqTail(freqs[i:])...)
		}
	}
	return out
}
