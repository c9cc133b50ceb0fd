package query

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"

	"github.com/Dylan-DPC/tantivy/docset"
	"github.com/Dylan-DPC/tantivy/segment"
)

// Scorer is a docset positioned by query evaluation, additionally able to
// rank the document it currently sits on.
type Scorer interface {
	docset.DocSet
	Score() float32
}

// Weight resolves a query node against one segment, producing a Scorer
// over that segment's doc ids (§5).
type Weight interface {
	Scorer(reader segment.Reader) (Scorer, error)
}

// emptyScorer is returned for a term absent from a segment's dictionary.
type emptyScorer struct{}

func (emptyScorer) Advance() bool                    { return false }
func (emptyScorer) SkipNext(uint32) docset.SkipResult { return docset.End }
func (emptyScorer) Doc() uint32                       { return 0 }
func (emptyScorer) SizeHint() int                      { return 0 }
func (emptyScorer) Score() float32                     { return 0 }

// TermWeight matches documents carrying Term in Field, ranked by
// idf * sqrt(tf) * fieldnorm (§5).
type TermWeight struct {
	Field string
	Term  []byte
}

// NewTermWeight builds a TermWeight for field/term.
func NewTermWeight(field string, term []byte) *TermWeight {
	return &TermWeight{Field: field, Term: term}
}

// Scorer resolves this term against reader.
func (w *TermWeight) Scorer(reader segment.Reader) (Scorer, error) {
	idx, err := reader.InvertedIndex(w.Field)
	if err != nil {
		return nil, fmt.Errorf("term weight: resolve field %q: %w", w.Field, err)
	}

	info, ok := idx.Terms().Get(w.Term)
	if !ok {
		return emptyScorer{}, nil
	}

	sp, err := idx.ReadPostings(info, segment.Freq)
	if err != nil {
		return nil, fmt.Errorf("term weight: read postings for %q/%q: %w", w.Field, w.Term, err)
	}

	fn, err := reader.FieldnormsReader(w.Field)
	if err != nil {
		return nil, fmt.Errorf("term weight: resolve fieldnorms for %q: %w", w.Field, err)
	}

	n := float64(reader.MaxDoc())
	df := float64(info.DocFreq)
	idf := 1.0 + math.Log(n/(df+1.0))

	return &TermScorer{
		postings:   sp,
		idf:        float32(idf),
		fieldnorms: fn,
	}, nil
}

// TermScorer is the Scorer produced by TermWeight.
type TermScorer struct {
	postings   scorable
	idf        float32
	fieldnorms segment.FieldnormsReader
}

// scorable is the subset of *postings.SegmentPostings TermScorer needs;
// named separately so TermScorer can embed it without re-exporting the
// postings package's full surface.
type scorable interface {
	docset.DocSet
	TermFreq() uint32
}

func (s *TermScorer) Advance() bool                    { return s.postings.Advance() }
func (s *TermScorer) SkipNext(t uint32) docset.SkipResult { return s.postings.SkipNext(t) }
func (s *TermScorer) Doc() uint32                       { return s.postings.Doc() }
func (s *TermScorer) SizeHint() int                     { return s.postings.SizeHint() }

// Score combines this weight's idf, the current doc's term frequency, and
// its fieldnorm (§5).
func (s *TermScorer) Score() float32 {
	tf := math.Sqrt(float64(s.postings.TermFreq()))
	fn := float64(s.fieldnorms.FieldNorm(s.postings.Doc()))
	if fn == 0 {
		fn = 1
	}
	return float32(float64(s.idf) * tf * fn)
}

// RangeWeight matches every document whose field value falls within
// [Lower, Upper] (bounds individually inclusive/exclusive per flag, or nil
// for unbounded), eagerly materialised into a bitmap (§4.4, §4.5).
type RangeWeight struct {
	Field                           string
	Lower, Upper                    []byte
	LowerInclusive, UpperInclusive bool
}

// Scorer resolves this range against reader, streaming every matching
// term's postings into a single bitmap.
func (w *RangeWeight) Scorer(reader segment.Reader) (Scorer, error) {
	idx, err := reader.InvertedIndex(w.Field)
	if err != nil {
		return nil, fmt.Errorf("range weight: resolve field %q: %w", w.Field, err)
	}

	rb := idx.Terms().Range()
	switch {
	case w.Lower != nil && w.LowerInclusive:
		rb = rb.Ge(w.Lower)
	case w.Lower != nil:
		rb = rb.Gt(w.Lower)
	}
	switch {
	case w.Upper != nil && w.UpperInclusive:
		rb = rb.Le(w.Upper)
	case w.Upper != nil:
		rb = rb.Lt(w.Upper)
	}

	stream := rb.IntoStream()
	bm := roaring.New()
	for stream.Advance() {
		info := stream.Value()
		bc, err := idx.ReadBlockPostings(info)
		if err != nil {
			return nil, fmt.Errorf("range weight: read postings for %q/%q: %w", w.Field, stream.Key(), err)
		}
		for bc.Advance() {
			for _, doc := range bc.Docs() {
				bm.Add(doc)
			}
		}
	}

	return docset.NewConstScorer(docset.NewBitsetDocSet(bm)), nil
}
