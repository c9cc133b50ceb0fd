package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectTerms(ts TokenStream) []string {
	var out []string
	for ts.Advance() {
		out = append(out, ts.Token().Term)
	}
	return out
}

func TestRawTokenizer(t *testing.T) {
	ts := RawTokenizer{}.Tokenize("Hello, World!")
	require.Equal(t, []string{"Hello, World!"}, collectTerms(ts))
}

func TestRawTokenizerEmpty(t *testing.T) {
	ts := RawTokenizer{}.Tokenize("")
	require.Empty(t, collectTerms(ts))
}

func TestSimpleTokenizer(t *testing.T) {
	ts := SimpleTokenizer{}.Tokenize("Hello, World! 123")
	require.Equal(t, []string{"Hello", "World", "123"}, collectTerms(ts))
}

func TestSimpleTokenizerOffsetsAndPositions(t *testing.T) {
	ts := SimpleTokenizer{}.Tokenize("ab cd")
	require.True(t, ts.Advance())
	tok := ts.Token()
	require.Equal(t, "ab", tok.Term)
	require.Equal(t, 0, tok.OffsetFrom)
	require.Equal(t, 2, tok.OffsetTo)
	require.Equal(t, 0, tok.Position)

	require.True(t, ts.Advance())
	tok = ts.Token()
	require.Equal(t, "cd", tok.Term)
	require.Equal(t, 3, tok.OffsetFrom)
	require.Equal(t, 1, tok.Position)

	require.False(t, ts.Advance())
}

func TestLowerCaseFilter(t *testing.T) {
	a := New(SimpleTokenizer{}, LowerCaseFilter())
	require.Equal(t, []string{"hello", "world"}, collectTerms(a.Analyze("Hello World")))
}

func TestEnStemFilter(t *testing.T) {
	a := New(SimpleTokenizer{}, LowerCaseFilter(), EnStemFilter())
	terms := collectTerms(a.Analyze("running runner"))
	require.Len(t, terms, 2)
	// Porter stemming collapses "running" towards "run"; exact stems are an
	// implementation detail of the stemmer, so just check it did something.
	require.NotEqual(t, "running", terms[0])
}

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"raw", "default", "en_stem", "ja"} {
		a, err := r.Get(name)
		require.NoError(t, err)
		require.NotNil(t, a)
	}
	_, err := r.Get("missing")
	require.Error(t, err)
}

func TestRegistryGetReturnsIndependentClone(t *testing.T) {
	r := NewRegistry()
	a1, err := r.Get("default")
	require.NoError(t, err)
	a2, err := r.Get("default")
	require.NoError(t, err)
	require.NotSame(t, a1, a2)
	require.Equal(t, collectTerms(a1.Analyze("Hello")), collectTerms(a2.Analyze("Hello")))
}

func TestRegistryRegisterCustom(t *testing.T) {
	r := NewRegistry()
	r.Register("keyword", New(RawTokenizer{}))
	a, err := r.Get("keyword")
	require.NoError(t, err)
	require.Equal(t, []string{"Quick Fox"}, collectTerms(a.Analyze("Quick Fox")))
}
