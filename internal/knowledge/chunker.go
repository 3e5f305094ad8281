package knowledge

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is how many trailing characters each chunk shares
	// with the next one, so sentences cut at a boundary survive in at least
	// one chunk whole.
	DefaultChunkOverlap = 200
)

// separators are tried in order when looking for a split point near the
// chunk boundary. Paragraph breaks beat line breaks beat sentence ends
// beat bare spaces.
var separators = []string{"\n\n", "\n", ". ", " "}

// SplitText splits text into overlapping chunks of at most size characters.
// Split points prefer natural boundaries close to the size limit; a hard cut
// only happens when no separator appears in the window at all.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunk := strings.TrimSpace(text[start:])
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}
		end = runeBoundary(text, end)

		cut := splitPoint(text[start:end])
		if cut <= 0 {
			cut = end - start
		}

		chunk := strings.TrimSpace(text[start : start+cut])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := runeBoundary(text, start+cut-overlap)
		if next <= start {
			next = start + cut
		}
		start = next
	}
	return chunks
}

// runeBoundary backs i up to the start of the rune it lands in, so byte
// slices never cut a multi-byte character in half.
func runeBoundary(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// splitPoint finds the rightmost natural boundary in window, trying each
// separator class in preference order. Returns the index just past the
// separator, or -1 when the window holds none.
func splitPoint(window string) int {
	for _, sep := range separators {
		if i := strings.LastIndex(window, sep); i > 0 {
			return i + len(sep)
		}
	}
	return -1
}
