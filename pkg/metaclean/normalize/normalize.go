// Package normalize defines the two canonical comparison forms used across
// the cleanup pipeline.
//
// Categories and tags normalize into distinct shapes: the category form is
// space-delimited ("fin tech"), the tag form is underscore-delimited
// ("fin_tech"). The two are never interchangeable — a category form is what
// the consolidation lookup is keyed on, a tag form is what gets appended to a
// record's tag list.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Category converts a raw category label into its comparison form:
// NFKC-folded, lowercase, trimmed, with everything outside word characters
// and spaces removed, and underscores turned into spaces.
// Idempotent: Category(Category(s)) == Category(s).
func Category(s string) string {
	folded := strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case isWordRune(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tag converts a raw tag into its comparison form: NFKC-folded, lowercase,
// trimmed, punctuation removed, internal whitespace runs collapsed, and
// spaces turned into underscores. The result contains no whitespace and no
// punctuation other than the underscore.
func Tag(s string) string {
	folded := strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	collapsed := strings.Join(strings.Fields(b.String()), " ")
	return strings.ReplaceAll(collapsed, " ", "_")
}

// TagList normalizes a comma-separated tag string: each element goes through
// Tag, empties are dropped, and the survivors are rejoined with commas.
func TagList(csv string) string {
	if strings.TrimSpace(csv) == "" {
		return ""
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := Tag(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}

// isWordRune reports whether r belongs to the \w character class:
// letters, digits, and the underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
