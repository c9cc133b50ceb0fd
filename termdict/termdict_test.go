package termdict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFixture() *Dictionary {
	b := NewBuilder()
	keys := []string{"apple", "banana", "cherry", "date", "fig", "grape", "kiwi", "lemon", "mango", "nectarine"}
	for i, k := range keys {
		b.Insert([]byte(k), TermInfo{Offset: int64(i * 100), DocFreq: i + 1})
	}
	return b.Build()
}

func TestDictionaryGet(t *testing.T) {
	d := buildFixture()

	info, ok := d.Get([]byte("cherry"))
	require.True(t, ok)
	require.Equal(t, int64(200), info.Offset)
	require.Equal(t, 3, info.DocFreq)

	_, ok = d.Get([]byte("missing"))
	require.False(t, ok)
}

func streamKeys(t *testing.T, s *Streamer) []string {
	t.Helper()
	var out []string
	for s.Advance() {
		out = append(out, string(s.Key()))
	}
	return out
}

func TestRangeGeLe(t *testing.T) {
	d := buildFixture()
	s := d.Range().Ge([]byte("banana")).Le([]byte("grape")).IntoStream()
	require.Equal(t, []string{"banana", "cherry", "date", "fig", "grape"}, streamKeys(t, s))
}

func TestRangeGtLt(t *testing.T) {
	d := buildFixture()
	s := d.Range().Gt([]byte("banana")).Lt([]byte("grape")).IntoStream()
	require.Equal(t, []string{"cherry", "date", "fig"}, streamKeys(t, s))
}

func TestRangeUnbounded(t *testing.T) {
	d := buildFixture()
	s := d.Range().IntoStream()
	require.Equal(t, 10, len(streamKeys(t, s)))
}

func TestRangeExactBoundMiss(t *testing.T) {
	d := buildFixture()
	// "avocado" sorts between "apple" and "banana": neither is an exact
	// dictionary key, exercising the floor/ceiling split.
	s := d.Range().Ge([]byte("avocado")).IntoStream()
	keys := streamKeys(t, s)
	require.Equal(t, "banana", keys[0])
}

func TestRangeValue(t *testing.T) {
	d := buildFixture()
	s := d.Range().Ge([]byte("kiwi")).Le([]byte("kiwi")).IntoStream()
	require.True(t, s.Advance())
	require.Equal(t, "kiwi", string(s.Key()))
	require.Equal(t, 7, s.Value().DocFreq)
	require.False(t, s.Advance())
}

func TestDictionaryCheckpointsSpanMultipleStrides(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 500; i++ {
		key := []byte{byte(i >> 8), byte(i)}
		b.Insert(key, TermInfo{Offset: int64(i)})
	}
	d := b.Build()

	info, ok := d.Get([]byte{1, 200})
	require.True(t, ok)
	require.Equal(t, int64(456), info.Offset)

	s := d.Range().Ge([]byte{1, 0}).Le([]byte{1, 255}).IntoStream()
	count := 0
	for s.Advance() {
		count++
	}
	require.Equal(t, 244, count)
}
