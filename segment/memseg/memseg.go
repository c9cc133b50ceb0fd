// Package memseg is an in-memory segment.Reader implementation: a fixture
// builder used by tests (and by anything exercising the query-execution
// core without a real on-disk index).
package memseg

import (
	"fmt"
	"sort"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/Dylan-DPC/tantivy/analyzer"
	"github.com/Dylan-DPC/tantivy/postings"
	"github.com/Dylan-DPC/tantivy/segment"
	"github.com/Dylan-DPC/tantivy/termdict"
	"github.com/Dylan-DPC/tantivy/util"
)

// generation is a process-wide counter handing out the generation number
// embedded in each built segment's file name, the way golucene's
// IndexFileNames generation scheme numbers segment files on disk.
var generation atomic.Int64

type posting struct {
	doc       uint32
	freq      uint32
	positions []uint32 // position deltas (first one relative to 0); empty when not tracked
}

type fieldBuilder struct {
	postings     map[string][]posting
	hasPositions bool
}

// Builder accumulates postings for one segment's worth of fields before
// compiling them into a queryable Segment.
type Builder struct {
	fields     map[string]*fieldBuilder
	fieldNorms map[string]map[uint32]uint32
	maxDoc     uint32
	deleted    map[uint32]bool
	logger     *zap.Logger
}

// NewBuilder returns an empty Builder that logs to a no-op logger.
func NewBuilder() *Builder {
	return &Builder{
		fields:     make(map[string]*fieldBuilder),
		fieldNorms: make(map[string]map[uint32]uint32),
		logger:     zap.NewNop(),
	}
}

// WithLogger attaches logger to b, replacing the no-op default; Build logs
// a summary of the compiled segment through it.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

func (b *Builder) field(name string, withPositions bool) *fieldBuilder {
	f, ok := b.fields[name]
	if !ok {
		f = &fieldBuilder{postings: make(map[string][]posting), hasPositions: withPositions}
		b.fields[name] = f
	}
	if withPositions {
		f.hasPositions = true
	}
	return f
}

// AddTerm records one (field, term) occurrence list for doc: freq is the
// occurrence count, positions (optional, nil if not tracked) are the token
// positions within the field as deltas: the first relative to 0, each
// later one relative to the previous position. They are stored and encoded
// as given.
func (b *Builder) AddTerm(field, term string, doc uint32, freq uint32, positions []uint32) {
	f := b.field(field, len(positions) > 0)
	f.postings[term] = append(f.postings[term], posting{doc: doc, freq: freq, positions: positions})

	if doc+1 > b.maxDoc {
		b.maxDoc = doc + 1
	}
	norms, ok := b.fieldNorms[field]
	if !ok {
		norms = make(map[uint32]uint32)
		b.fieldNorms[field] = norms
	}
	norms[doc] += freq
}

// IndexText analyzes text with a and records every resulting term's
// occurrences in field for doc, through AddTerm.
func (b *Builder) IndexText(a *analyzer.Analyzer, field string, doc uint32, text string, withPositions bool) {
	occurrences := make(map[string][]int)
	ts := a.Analyze(text)
	for ts.Advance() {
		tok := ts.Token()
		occurrences[tok.Term] = append(occurrences[tok.Term], tok.Position)
	}

	terms := make([]string, 0, len(occurrences))
	for term := range occurrences {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		positions := occurrences[term]
		var deltas []uint32
		if withPositions {
			deltas = make([]uint32, len(positions))
			prev := 0
			for i, p := range positions {
				deltas[i] = uint32(p - prev)
				prev = p
			}
		}
		b.AddTerm(field, term, doc, uint32(len(positions)), deltas)
	}
}

// Delete tombstones doc in the built segment.
func (b *Builder) Delete(doc uint32) {
	if b.deleted == nil {
		b.deleted = make(map[uint32]bool)
	}
	b.deleted[doc] = true
}

// Build compiles every accumulated field into a queryable Segment.
func (b *Builder) Build() *Segment {
	gen := generation.Inc()
	seg := &Segment{
		maxDoc: b.maxDoc,
		fields: make(map[string]*builtField),
		logger: b.logger,
		name:   util.FileNameFromGeneration("_seg", "tgv", gen),
	}
	seg.refCount.Store(1)

	if len(b.deleted) > 0 {
		d := make(deleteSet, len(b.deleted))
		for doc := range b.deleted {
			d[doc] = true
		}
		seg.deletes = d
	}

	for fieldName, fb := range b.fields {
		terms := make([]string, 0, len(fb.postings))
		for term := range fb.postings {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		tb := termdict.NewBuilder()
		var postingsBlob, positionsBlob []byte
		for _, term := range terms {
			plist := fb.postings[term]
			sort.Slice(plist, func(i, j int) bool { return plist[i].doc < plist[j].doc })

			docs := make([]uint32, len(plist))
			freqs := make([]uint32, len(plist))
			posOffset := int64(len(positionsBlob))
			for i, p := range plist {
				docs[i] = p.doc
				freqs[i] = p.freq
				if fb.hasPositions {
					positionsBlob = append(positionsBlob, postings.EncodePositions(p.positions)...)
				}
			}

			offset := int64(len(postingsBlob))
			postingsBlob = append(postingsBlob, postings.EncodePostingList(docs, freqs, true)...)
			tb.Insert([]byte(term), termdict.TermInfo{
				Offset:          offset,
				DocFreq:         len(plist),
				HasPositions:    fb.hasPositions,
				PositionsOffset: posOffset,
			})
		}

		norms := make([]uint32, b.maxDoc)
		for doc, n := range b.fieldNorms[fieldName] {
			norms[doc] = n
		}

		seg.fields[fieldName] = &builtField{
			dict:          tb.Build(),
			postingsBlob:  postingsBlob,
			positionsBlob: positionsBlob,
			hasPositions:  fb.hasPositions,
			fieldNorms:    norms,
			deletes:       seg.deletes,
			logger:        b.logger,
		}
	}

	b.logger.Debug("built in-memory segment",
		zap.String("name", seg.name),
		zap.Uint32("max_doc", seg.maxDoc),
		zap.Int("fields", len(seg.fields)),
		zap.Int("deleted", len(b.deleted)),
	)

	return seg
}

// deleteSet is the in-memory postings.DeleteBitSet built from Builder.Delete.
type deleteSet map[uint32]bool

func (d deleteSet) Deleted(doc uint32) bool { return d[doc] }

type fieldNorms []uint32

func (f fieldNorms) FieldNorm(doc uint32) uint32 {
	if int(doc) < len(f) {
		return f[doc]
	}
	return 0
}

type builtField struct {
	dict          *termdict.Dictionary
	postingsBlob  []byte
	positionsBlob []byte
	hasPositions  bool
	fieldNorms    fieldNorms
	deletes       postings.DeleteBitSet
	logger        *zap.Logger
}

func (f *builtField) Terms() *termdict.Dictionary { return f.dict }

func (f *builtField) ReadPostings(info termdict.TermInfo, options segment.IndexingOptions) (*postings.SegmentPostings, error) {
	bc, err := f.blockPostings(info)
	if err != nil {
		return nil, err
	}

	var reader postings.PositionReader
	if options == segment.FreqAndPositions && info.HasPositions {
		reader = postings.NewBytePositionReader(f.positionsBlob[info.PositionsOffset:])
	}
	return postings.NewSegmentPostings(bc, f.deletes, reader), nil
}

// ReadBlockPostings builds the block-level cursor (C2) directly: no
// deletion filtering, no position state. Range queries use this, since
// they only materialise doc ids (§4.5's "no scoring needed").
func (f *builtField) ReadBlockPostings(info termdict.TermInfo) (*postings.BlockSegmentPostings, error) {
	return f.blockPostings(info)
}

func (f *builtField) blockPostings(info termdict.TermInfo) (*postings.BlockSegmentPostings, error) {
	if info.Offset < 0 || int(info.Offset) > len(f.postingsBlob) {
		f.logger.Warn("term info offset out of range", zap.Int64("offset", info.Offset), zap.Int("blob_len", len(f.postingsBlob)))
		return nil, fmt.Errorf("memseg: term info offset %d out of range", info.Offset)
	}
	return postings.NewBlockSegmentPostings(f.postingsBlob[info.Offset:], info.DocFreq, true), nil
}

// Segment is a complete in-memory segment.Reader. It is reference-counted
// the way index.IndexReaderImpl is: Build hands back a Segment with one
// live reference; every concurrent reader should Ref it on acquire and
// Close it on release, and the backing maps are only eligible for
// collection once the count reaches zero.
type Segment struct {
	maxDoc   uint32
	deletes  postings.DeleteBitSet
	fields   map[string]*builtField
	logger   *zap.Logger
	refCount atomic.Int32
	name     string
}

func (s *Segment) MaxDoc() uint32 { return s.maxDoc }

// Name is the generated segment file name (golucene-style base_generation.ext).
func (s *Segment) Name() string { return s.name }

// BaseName strips the generation suffix and extension from Name, e.g.
// "_seg" from "_seg_3.tgv".
func (s *Segment) BaseName() string { return util.ParseSegmentName(s.name) }

// Ref increments the live-reference count and returns it.
func (s *Segment) Ref() int32 { return s.refCount.Add(1) }

// Close decrements the live-reference count. It returns an error if the
// segment was already fully closed.
func (s *Segment) Close() error {
	rc := s.refCount.Add(-1)
	if rc < 0 {
		return fmt.Errorf("memseg: too many Close calls, refCount is %d", rc)
	}
	return nil
}

func (s *Segment) InvertedIndex(field string) (segment.InvertedIndex, error) {
	f, ok := s.fields[field]
	if !ok {
		s.logger.Warn("inverted index requested for unknown field", zap.String("field", field))
		return nil, fmt.Errorf("memseg: unknown field %q", field)
	}
	return f, nil
}

func (s *Segment) FieldnormsReader(field string) (segment.FieldnormsReader, error) {
	f, ok := s.fields[field]
	if !ok {
		s.logger.Warn("fieldnorms requested for unknown field", zap.String("field", field))
		return nil, fmt.Errorf("memseg: unknown field %q", field)
	}
	return f.fieldNorms, nil
}

func (s *Segment) DeleteBitSet() postings.DeleteBitSet { return s.deletes }
