package classify

import (
	"strings"
	"testing"
)

func TestEnhanceAppendsHints(t *testing.T) {
	got := Enhance("how do I handle cravings", CategoryCravings)

	if !strings.HasPrefix(got, "how do I handle cravings ") {
		t.Errorf("enhanced query must start with the original, got %q", got)
	}
	if !strings.Contains(got, "coping strategies") {
		t.Errorf("enhanced query missing category hints, got %q", got)
	}
}

func TestEnhanceGeneralPassthrough(t *testing.T) {
	query := "good morning!"
	if got := Enhance(query, CategoryGeneral); got != query {
		t.Errorf("Enhance(%q, general) = %q, want unchanged", query, got)
	}
}

func TestEnhanceUnknownCategoryPassthrough(t *testing.T) {
	query := "anything at all"
	if got := Enhance(query, Category("bogus")); got != query {
		t.Errorf("Enhance with unknown category = %q, want unchanged", got)
	}
}

// Every retrieval category has a hint; general deliberately has none.
func TestEnhanceCoverage(t *testing.T) {
	for _, c := range Categories() {
		enhanced := Enhance("q", c)
		if c == CategoryGeneral {
			if enhanced != "q" {
				t.Errorf("general should pass through, got %q", enhanced)
			}
			continue
		}
		if enhanced == "q" {
			t.Errorf("category %q has no enhancement hints", c)
		}
	}
}
