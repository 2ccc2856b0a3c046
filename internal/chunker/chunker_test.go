package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesage/internal/core/domain"
)

// wordTokenizer treats each whitespace-separated word as one token.
type wordTokenizer struct {
	words []string
}

func (w *wordTokenizer) Encode(text string) []int {
	w.words = strings.Fields(text)
	ids := make([]int, len(w.words))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (w *wordTokenizer) Decode(tokens []int) string {
	parts := make([]string, len(tokens))
	for i, id := range tokens {
		parts[i] = w.words[id]
	}
	return strings.Join(parts, " ")
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "w" + string(rune('a'+i%26))
	}
	return strings.Join(parts, " ")
}

func TestSplit_SingleChunkWhenUnderWindow(t *testing.T) {
	s, err := New(&wordTokenizer{}, WithMaxTokens(10), WithOverlap(2))
	require.NoError(t, err)

	chunks := s.Split("one two three")

	assert.Equal(t, []string{"one two three"}, chunks)
}

func TestSplit_EmptyTextYieldsNoChunks(t *testing.T) {
	s, err := New(&wordTokenizer{}, WithMaxTokens(10), WithOverlap(2))
	require.NoError(t, err)

	assert.Nil(t, s.Split(""))
}

func TestSplit_WindowsOverlap(t *testing.T) {
	tok := &wordTokenizer{}
	s, err := New(tok, WithMaxTokens(4), WithOverlap(1))
	require.NoError(t, err)

	chunks := s.Split("a b c d e f g")

	// step = 3: windows [0:4), [3:7)
	require.Len(t, chunks, 2)
	assert.Equal(t, "a b c d", chunks[0])
	assert.Equal(t, "d e f g", chunks[1])
}

func TestSplit_FinalPartialWindowIncluded(t *testing.T) {
	tok := &wordTokenizer{}
	s, err := New(tok, WithMaxTokens(4), WithOverlap(0))
	require.NoError(t, err)

	chunks := s.Split("a b c d e f")

	require.Len(t, chunks, 2)
	assert.Equal(t, "a b c d", chunks[0])
	assert.Equal(t, "e f", chunks[1])
}

func TestSplit_LongInputChunkCount(t *testing.T) {
	s, err := New(&wordTokenizer{}, WithMaxTokens(100), WithOverlap(20))
	require.NoError(t, err)

	chunks := s.Split(words(1000))

	// step = 80: starts at 0, 80, ..., 960.
	assert.Len(t, chunks, 13)
}

func TestNew_RejectsOverlapNotBelowWindow(t *testing.T) {
	_, err := New(&wordTokenizer{}, WithMaxTokens(10), WithOverlap(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNew_DefaultsApplied(t *testing.T) {
	s, err := New(&wordTokenizer{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTokens, s.maxTokens)
	assert.Equal(t, DefaultOverlap, s.overlap)
}

func TestNew_IgnoresNonPositiveOptions(t *testing.T) {
	s, err := New(&wordTokenizer{}, WithMaxTokens(0), WithOverlap(-1))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTokens, s.maxTokens)
	assert.Equal(t, DefaultOverlap, s.overlap)
}
