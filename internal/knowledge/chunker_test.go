package knowledge

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInput(t *testing.T) {
	assert.Nil(t, SplitText("", 100, 20))
	assert.Nil(t, SplitText("   \n\t ", 100, 20))
	assert.Equal(t, []string{"short text"}, SplitText("short text", 100, 20))
}

func TestSplitTextRespectsSize(t *testing.T) {
	text := strings.Repeat("withdrawal symptoms usually peak within days. ", 60)

	chunks := SplitText(text, 200, 50)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), 200, "chunk %d exceeds size", i)
		assert.NotEmpty(t, c)
	}
}

func TestSplitTextPrefersParagraphBoundaries(t *testing.T) {
	para1 := strings.Repeat("a", 80)
	para2 := strings.Repeat("b", 80)
	text := para1 + "\n\n" + para2

	chunks := SplitText(text, 100, 10)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, para1, chunks[0])
}

func TestSplitTextOverlap(t *testing.T) {
	sentences := make([]string, 40)
	for i := range sentences {
		sentences[i] = "every craving passes with time"
	}
	text := strings.Join(sentences, ". ")

	chunks := SplitText(text, 150, 40)
	require.Greater(t, len(chunks), 1)

	// Consecutive chunks share material because of the overlap window.
	tail := chunks[0][len(chunks[0])-20:]
	assert.Contains(t, chunks[1], strings.TrimSpace(tail)[:10])
}

func TestSplitTextHardCutWithoutSeparators(t *testing.T) {
	text := strings.Repeat("x", 350)

	chunks := SplitText(text, 100, 20)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}
	assert.Equal(t, text, strings.Join(dedupeOverlap(chunks, 20), ""))
}

func TestSplitTextKeepsRunesWhole(t *testing.T) {
	// No separators at all, so every cut is a hard cut, and a chunk size
	// that is not a multiple of the 3-byte rune width would land mid-rune
	// without boundary adjustment.
	text := strings.Repeat("深呼吸有助于缓解对香烟的渴望", 40)
	require.True(t, utf8.ValidString(text))

	chunks := SplitText(text, 100, 20)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %d splits a rune", i)
		assert.LessOrEqual(t, len(c), 100)
		assert.NotEmpty(t, c)
	}

	// Accented text with spaces exercises the separator path alongside
	// multi-byte characters.
	accented := strings.Repeat("la respiración profunda alivia la ansiedad según los médicos ", 30)
	for i, c := range SplitText(accented, 150, 30) {
		assert.True(t, utf8.ValidString(c), "chunk %d splits a rune", i)
	}
}

// dedupeOverlap strips the overlap prefix from every chunk after the first,
// for reassembly checks on separator-free input.
func dedupeOverlap(chunks []string, overlap int) []string {
	out := []string{chunks[0]}
	for _, c := range chunks[1:] {
		if len(c) > overlap {
			out = append(out, c[overlap:])
		}
	}
	return out
}
