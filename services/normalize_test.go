package services

import (
	"reflect"
	"testing"
)

func TestNormalizeCategory_TexShortCircuit(t *testing.T) {
	rules := []CategoryRule{{Keyword: "TEX", Target: "SOMETHING ELSE"}}

	tests := []struct {
		name     string
		raw      string
		product  string
		expected string
	}{
		{"upper", "TEXTURE FINISH", "laminate", CategoryTex},
		{"lower", "suede tex", "laminate", CategoryTex},
		{"mixed", "TeXish", "liner", CategoryTex},
		{"non_keyword_product", "1mm tex", "ply", CategoryTex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeCategory(tt.raw, rules, tt.product)
			if !ok || got != tt.expected {
				t.Errorf("NormalizeCategory(%q) = %q, %v; want %q, true", tt.raw, got, ok, tt.expected)
			}
		})
	}
}

func TestNormalizeCategory_KeywordTable(t *testing.T) {
	rules := []CategoryRule{
		{Keyword: "A+B", Target: "X"},
		{Keyword: "C", Target: "Y"},
		{Keyword: "*", Target: "Z"},
	}

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"conjunctive_match", "A B", "X"},
		{"conjunctive_reversed", "B something A", "X"},
		{"substring_match", "C", "Y"},
		{"substring_inside", "ABCD", "X"}, // A and B both present, first rule wins
		{"wildcard_fallback", "Q", "Z"},
		{"case_insensitive", "c-grade", "Y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeCategory(tt.raw, rules, "laminate")
			if !ok || got != tt.expected {
				t.Errorf("NormalizeCategory(%q) = %q, %v; want %q, true", tt.raw, got, ok, tt.expected)
			}
		})
	}
}

func TestNormalizeCategory_NonKeywordProductPassesThrough(t *testing.T) {
	rules := []CategoryRule{{Keyword: "SUEDE", Target: "SF"}, {Keyword: "*", Target: "Z"}}

	got, ok := NormalizeCategory("SUEDE 18mm", rules, "ply")
	if !ok || got != "SUEDE 18mm" {
		t.Errorf("non-keyword product = %q, %v; want raw pass-through", got, ok)
	}
}

func TestNormalizeCategory_NoWildcardReturnsRaw(t *testing.T) {
	rules := []CategoryRule{{Keyword: "SUEDE", Target: "SF"}}

	got, ok := NormalizeCategory("GLOSS", rules, "laminate")
	if !ok || got != "GLOSS" {
		t.Errorf("no wildcard = %q, %v; want raw unchanged", got, ok)
	}
}

func TestNormalizeCategory_Blank(t *testing.T) {
	if got, ok := NormalizeCategory("", nil, "laminate"); ok {
		t.Errorf("blank category = %q, true; want false", got)
	}
	if got, ok := NormalizeCategory("   ", nil, "laminate"); ok {
		t.Errorf("whitespace category = %q, true; want false", got)
	}
}

func TestCategoryOrder(t *testing.T) {
	rules := []CategoryRule{
		{Keyword: "HIGLO", Target: "HG"},
		{Keyword: "Z-KEY", Target: "Z"},
		{Keyword: "*", Target: "Default"},
	}

	tests := []struct {
		name     string
		present  []string
		expected []string
	}{
		{
			"privileged_first",
			[]string{"Z", "TEX CATEGORY", "SF", "HG"},
			[]string{"SF", "HG", "Z", "TEX CATEGORY"},
		},
		{
			"unspecified_before_leftovers",
			[]string{"LEFTOVER", "UNSPECIFIED", "Z"},
			[]string{"Z", "UNSPECIFIED", "LEFTOVER"},
		},
		{
			"only_leftovers_first_seen",
			[]string{"B-CAT", "A-CAT"},
			[]string{"B-CAT", "A-CAT"},
		},
		{
			"absent_privileged_skipped",
			[]string{"Z", "HG"},
			[]string{"HG", "Z"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryOrder(rules, tt.present)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("CategoryOrder(%v) = %v, want %v", tt.present, got, tt.expected)
			}
		})
	}
}

func TestCategoryOrder_EachPresentExactlyOnce(t *testing.T) {
	rules := []CategoryRule{{Keyword: "K", Target: "SF"}}
	present := []string{"SF", "TEX CATEGORY", "UNSPECIFIED", "ODD"}

	got := CategoryOrder(rules, present)
	if len(got) != len(present) {
		t.Fatalf("order has %d entries, want %d: %v", len(got), len(present), got)
	}
	seen := map[string]int{}
	for _, c := range got {
		seen[c]++
	}
	for _, c := range present {
		if seen[c] != 1 {
			t.Errorf("category %q appears %d times, want 1", c, seen[c])
		}
	}
}
