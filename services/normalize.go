package services

import "strings"

const (
	// CategoryTex is the fixed label for any raw category containing "TEX".
	CategoryTex = "TEX CATEGORY"
	// CategoryUnspecified is the sentinel for rows with no category at all.
	CategoryUnspecified = "UNSPECIFIED"
)

// keywordProducts are the product types whose categories go through the
// CategoryMap table. Every other product keeps its raw category.
var keywordProducts = map[string]bool{
	"laminate": true,
	"liner":    true,
}

// NormalizeCategory maps a raw category label to its canonical form.
// It returns false when the raw value is blank; the caller substitutes
// CategoryUnspecified.
//
// Matching is case-insensitive. A raw value containing "TEX" always maps to
// CategoryTex, regardless of the table. Rules are scanned in sheet order:
// "A+B" keywords require every part to be present, plain keywords match as
// substrings, and the first hit wins. "*" rules are skipped during the scan
// and only consulted as the default when nothing matched. Without a
// wildcard rule the raw value passes through unchanged.
func NormalizeCategory(raw string, rules []CategoryRule, product string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "TEX") {
		return CategoryTex, true
	}

	if !keywordProducts[strings.ToLower(strings.TrimSpace(product))] {
		return raw, true
	}

	for _, r := range rules {
		keyword := strings.ToUpper(strings.TrimSpace(r.Keyword))
		switch {
		case keyword == "*" || keyword == "":
			continue
		case strings.Contains(keyword, "+"):
			if containsAll(upper, strings.Split(keyword, "+")) {
				return r.Target, true
			}
		case strings.Contains(upper, keyword):
			return r.Target, true
		}
	}

	for _, r := range rules {
		if strings.TrimSpace(r.Keyword) == "*" {
			return r.Target, true
		}
	}
	return raw, true
}

func containsAll(s string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(s, strings.TrimSpace(p)) {
			return false
		}
	}
	return true
}

// privilegedCategories lead the grouping order whenever they appear in the
// data, ahead of everything the mapping table says.
var privilegedCategories = []string{"SF", "HG"}

// CategoryOrder computes the grouping order for the report: SF and HG first
// (when present), then the mapping table's remaining targets in table order,
// then CategoryTex, then CategoryUnspecified, then any leftover categories
// in first-seen order. Each present category appears exactly once.
func CategoryOrder(rules []CategoryRule, present []string) []string {
	presentSet := make(map[string]bool, len(present))
	for _, c := range present {
		presentSet[c] = true
	}

	var order []string
	seen := make(map[string]bool)
	add := func(c string) {
		if presentSet[c] && !seen[c] {
			order = append(order, c)
			seen[c] = true
		}
	}

	for _, c := range privilegedCategories {
		add(c)
	}
	for _, r := range rules {
		if strings.TrimSpace(r.Keyword) == "*" {
			continue
		}
		if t := r.Target; t != CategoryTex {
			add(t)
		}
	}
	add(CategoryTex)
	add(CategoryUnspecified)
	for _, c := range present {
		add(c)
	}
	return order
}
