package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dylan-DPC/tantivy/postings"
	"github.com/Dylan-DPC/tantivy/segment"
	"github.com/Dylan-DPC/tantivy/termdict"
)

type fakeField struct {
	dict     *termdict.Dictionary
	postings map[int64][]byte
}

func (f *fakeField) Terms() *termdict.Dictionary { return f.dict }

func (f *fakeField) ReadPostings(info termdict.TermInfo, options segment.IndexingOptions) (*postings.SegmentPostings, error) {
	data, ok := f.postings[info.Offset]
	if !ok {
		return nil, fmt.Errorf("no postings at offset %d", info.Offset)
	}
	bc := postings.NewBlockSegmentPostings(data, info.DocFreq, options != segment.Basic)
	return postings.NewSegmentPostings(bc, nil, nil), nil
}

func (f *fakeField) ReadBlockPostings(info termdict.TermInfo) (*postings.BlockSegmentPostings, error) {
	data, ok := f.postings[info.Offset]
	if !ok {
		return nil, fmt.Errorf("no postings at offset %d", info.Offset)
	}
	return postings.NewBlockSegmentPostings(data, info.DocFreq, true), nil
}

type fakeReader struct {
	maxDoc uint32
	fields map[string]*fakeField
}

func (r *fakeReader) MaxDoc() uint32 { return r.maxDoc }

func (r *fakeReader) InvertedIndex(field string) (segment.InvertedIndex, error) {
	f, ok := r.fields[field]
	if !ok {
		return nil, fmt.Errorf("no such field %q", field)
	}
	return f, nil
}

func (r *fakeReader) FieldnormsReader(field string) (segment.FieldnormsReader, error) {
	return constFieldNorm(1), nil
}

func (r *fakeReader) DeleteBitSet() postings.DeleteBitSet { return nil }

type constFieldNorm uint32

func (c constFieldNorm) FieldNorm(uint32) uint32 { return uint32(c) }

// buildTitleField indexes: apple -> docs {1,3}, banana -> docs {2,3}.
func buildTitleField() *fakeField {
	appleDocs := []uint32{1, 3}
	appleFreqs := []uint32{1, 1}
	bananaDocs := []uint32{2, 3}
	bananaFreqs := []uint32{1, 1}

	b := termdict.NewBuilder()
	b.Insert([]byte("apple"), termdict.TermInfo{Offset: 0, DocFreq: len(appleDocs)})
	b.Insert([]byte("banana"), termdict.TermInfo{Offset: 1, DocFreq: len(bananaDocs)})

	return &fakeField{
		dict: b.Build(),
		postings: map[int64][]byte{
			0: postings.EncodePostingList(appleDocs, appleFreqs, true),
			1: postings.EncodePostingList(bananaDocs, bananaFreqs, true),
		},
	}
}

func newFixtureReader() *fakeReader {
	return &fakeReader{
		maxDoc: 4,
		fields: map[string]*fakeField{"title": buildTitleField()},
	}
}

func TestTermWeightScorer(t *testing.T) {
	reader := newFixtureReader()
	w := NewTermWeight("title", []byte("apple"))
	s, err := w.Scorer(reader)
	require.NoError(t, err)

	var docs []uint32
	for s.Advance() {
		docs = append(docs, s.Doc())
		require.Greater(t, s.Score(), float32(0))
	}
	require.Equal(t, []uint32{1, 3}, docs)
}

func TestTermWeightScorerMissingTerm(t *testing.T) {
	reader := newFixtureReader()
	w := NewTermWeight("title", []byte("missing"))
	s, err := w.Scorer(reader)
	require.NoError(t, err)
	require.False(t, s.Advance())
}

func TestClauseWeightMustNot(t *testing.T) {
	reader := newFixtureReader()
	parsed := Parse("+title:apple -title:banana")
	w, err := Plan(parsed, "title")
	require.NoError(t, err)

	s, err := w.Scorer(reader)
	require.NoError(t, err)

	var docs []uint32
	for s.Advance() {
		docs = append(docs, s.Doc())
	}
	require.Equal(t, []uint32{1}, docs)
}

func TestClauseWeightBareLiteralUsesDefaultField(t *testing.T) {
	reader := newFixtureReader()
	parsed := Parse("apple")
	w, err := Plan(parsed, "title")
	require.NoError(t, err)

	s, err := w.Scorer(reader)
	require.NoError(t, err)
	require.True(t, s.Advance())
	require.Equal(t, uint32(1), s.Doc())
}
