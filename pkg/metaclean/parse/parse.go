// Package parse splits one free-text metadata record into its structured
// attributes: company, description, category, and tags.
//
// The records come out of a generation pipeline as a single comma-delimited
// blob ("Simple elegant logo for Acme, A bakery in town, Food, bread, oven"),
// so the split is heuristic. Two self-correction steps run after the
// positional split: a field swap that recovers description/category when the
// upstream generator emitted them in the wrong order, and a tag
// redistribution that moves overly long tag candidates into the description.
// Both are best-effort — they recover the common failure shapes, nothing more.
package parse

import (
	"strings"
	"unicode"
)

// Fields holds the structured attributes extracted from one raw record.
// Absent attributes are empty strings; Tags preserves the order the
// candidates appeared in.
type Fields struct {
	Company     string
	Description string
	Category    string
	Tags        []string
}

const maxTagWords = 3

// Parse decomposes a raw text record. Malformed or empty input yields a
// zero-value Fields; it never fails.
func Parse(text string) Fields {
	if strings.TrimSpace(text) == "" {
		return Fields{}
	}

	// Collapse whitespace runs, then strip everything outside word
	// characters, whitespace, '&', '-' and ','.
	cleaned := strings.Join(strings.Fields(text), " ")
	cleaned = stripDisallowed(cleaned)

	// Known delimiter artifacts from the source text. Each rewrite prevents
	// a spurious empty field; none overlaps another's match, so the order
	// does not matter.
	cleaned = strings.ReplaceAll(cleaned, ", &", " &")
	cleaned = strings.ReplaceAll(cleaned, ", .jpg,", ",,")
	cleaned = strings.ReplaceAll(cleaned, ", Inc.", " Inc.")

	parts := strings.Split(cleaned, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var f Fields
	if len(parts) > 0 {
		f.Company = parts[0]
	}
	if len(parts) > 1 {
		f.Description = parts[1]
	}
	if len(parts) > 2 {
		f.Category = parts[2]
	}
	var candidates []string
	if len(parts) > 3 {
		candidates = parts[3:]
	}

	// Swap heuristic: the generator sometimes emits a long phrase in the
	// category slot and a short one in the description slot. If the category
	// carries more words than the description and more than two overall
	// (not counting "&"/"and"), the two fields traded places upstream.
	if f.Description != "" && f.Category != "" {
		descWords := countContentWords(f.Description)
		catWords := countContentWords(f.Category)
		if catWords > descWords && catWords > 2 {
			f.Description, f.Category = f.Category, f.Description
		}
	}

	var moved []string
	for _, tag := range candidates {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		// Tags are limited to word characters, hyphens, underscores and
		// spaces; anything else disqualifies the candidate entirely.
		if !validTag(tag) {
			continue
		}
		if len(strings.Fields(tag)) > maxTagWords {
			moved = append(moved, tag)
			continue
		}
		f.Tags = append(f.Tags, tag)
	}

	// Long candidates are descriptive phrases, not tags; fold them back
	// into the description rather than dropping them.
	if len(moved) > 0 {
		joined := strings.Join(moved, ", ")
		if f.Description != "" {
			f.Description = f.Description + ", " + joined
		} else {
			f.Description = joined
		}
	}

	return f
}

// countContentWords counts words excluding "&" and "and" (case-insensitive).
func countContentWords(s string) int {
	n := 0
	for _, w := range strings.Fields(s) {
		lw := strings.ToLower(w)
		if lw == "&" || lw == "and" {
			continue
		}
		n++
	}
	return n
}

// stripDisallowed removes every rune outside word characters, whitespace,
// '&', '-' and ','.
func stripDisallowed(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) || isSpaceRune(r) || r == '&' || r == '-' || r == ',' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validTag reports whether a tag candidate contains only word characters,
// hyphens, underscores and whitespace.
func validTag(s string) bool {
	for _, r := range s {
		if !isWordRune(r) && !isSpaceRune(r) && r != '-' {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}
