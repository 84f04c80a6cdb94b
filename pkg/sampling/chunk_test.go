package sampling

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		expected  []string
	}{
		{"empty text", "", 5, nil},
		{"fits in one chunk", "hello world", 20, []string{"hello world"}},
		{"splits on spaces", "a b c d e f g h i j", 5, []string{"a b", "c d", "e f", "g h", "i j"}},
		{"trims remainder", "abc def   ", 5, []string{"abc", "def"}},
		{"hard cut without space", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"space at window start", "abcde fghij", 5, []string{"abcde", "fghij"}},
		{"non-positive size", "abc", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Chunk(tt.text, tt.chunkSize))
		})
	}
}

func TestChunkKeepsWordsWhole(t *testing.T) {
	text := "a b c d e f g h i j"
	chunks := Chunk(text, 5)

	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
	for _, c := range chunks {
		for _, w := range strings.Fields(c) {
			assert.Contains(t, strings.Fields(text), w)
		}
	}
}

func TestChunkBoundariesFallOnSpaces(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet consectetur ", 40)
	chunks := Chunk(text, 37)

	// With single spaces and no over-long words the chunks rebuild the text exactly
	assert.Equal(t, strings.TrimSpace(text), strings.Join(chunks, " "))
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 37)
		assert.NotEmpty(t, c)
	}
}

func TestChunkRunOnWordTerminates(t *testing.T) {
	text := strings.Repeat("x", 10000)
	chunks := Chunk(text, 300)

	require.Len(t, chunks, 34)
	total := 0
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 300)
		total += len(c)
	}
	assert.Equal(t, 10000, total)
}

func TestChunkCountsRunes(t *testing.T) {
	chunks := Chunk("héllo wörld ñandú", 6)

	assert.Equal(t, []string{"héllo", "wörld", "ñandú"}, chunks)
}
