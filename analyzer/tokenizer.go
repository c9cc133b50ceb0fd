package analyzer

import (
	"strings"
	"unicode"

	"github.com/blevesearch/segment"
)

// Tokenizer splits raw field text into an initial TokenStream, before any
// filter runs.
type Tokenizer interface {
	Tokenize(text string) TokenStream
	// Clone returns an independent copy, for tokenizers that carry mutable
	// per-use state.
	Clone() Tokenizer
}

// RawTokenizer yields the entire input as a single token, for fields that
// must never be split (identifiers, raw facets).
type RawTokenizer struct{}

func (RawTokenizer) Tokenize(text string) TokenStream {
	if text == "" {
		return newSliceTokenStream(nil)
	}
	return newSliceTokenStream([]Token{{
		Term:       text,
		OffsetFrom: 0,
		OffsetTo:   len(text),
		Position:   0,
	}})
}

func (t RawTokenizer) Clone() Tokenizer { return t }

// SimpleTokenizer splits on runs of letters and digits, discarding
// everything else, the way tantivy's SimpleTokenizer does.
type SimpleTokenizer struct{}

func (SimpleTokenizer) Tokenize(text string) TokenStream {
	var tokens []Token
	runes := []rune(text)
	pos := 0
	i := 0
	for i < len(runes) {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isWordRune(runes[i]) {
			i++
		}
		tokens = append(tokens, Token{
			Term:       string(runes[start:i]),
			OffsetFrom: start,
			OffsetTo:   i,
			Position:   pos,
		})
		pos++
	}
	return newSliceTokenStream(tokens)
}

func (t SimpleTokenizer) Clone() Tokenizer { return t }

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// JaTokenizer splits text along Unicode word boundaries (UAX #29) via
// blevesearch/segment, which gives usable results for Japanese text that
// SimpleTokenizer's letter/digit runs cannot separate on its own.
type JaTokenizer struct{}

func (JaTokenizer) Tokenize(text string) TokenStream {
	seg := segment.NewWordSegmenter(strings.NewReader(text))
	var tokens []Token
	pos := 0
	offset := 0
	for seg.Segment() {
		word := seg.Bytes()
		start := offset
		offset += len(word)
		if seg.Type() == segment.None {
			continue
		}
		tokens = append(tokens, Token{
			Term:       string(word),
			OffsetFrom: start,
			OffsetTo:   offset,
			Position:   pos,
		})
		pos++
	}
	return newSliceTokenStream(tokens)
}

func (t JaTokenizer) Clone() Tokenizer { return t }
