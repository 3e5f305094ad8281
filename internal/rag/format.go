package rag

import (
	"fmt"
	"strings"
)

// FormatContext renders hits as the context block injected into the system
// prompt. Each hit becomes a header line with its provenance and relevance
// followed by its content; entries are separated by blank lines. An empty
// hit list renders as the empty string.
func FormatContext(hits []Hit) string {
	if len(hits) == 0 {
		return ""
	}

	entries := make([]string, 0, len(hits))
	for i, h := range hits {
		entries = append(entries, fmt.Sprintf(
			"[Resource %d - %s - %s - Relevance: %.3f]\n%s\n",
			i+1, h.ResourceType, h.Source, h.Similarity, h.Content))
	}
	return strings.Join(entries, "\n")
}
