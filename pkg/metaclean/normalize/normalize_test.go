package normalize

import (
	"strings"
	"testing"
	"unicode"
)

func TestCategoryBasic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fin_Tech", "fin tech"},
		{"  Real Estate!  ", "real estate"},
		{"CAFE & COFFEE", "cafe  coffee"},
		{"web-digital", "webdigital"},
		{"", ""},
		{"unclassified", "unclassified"},
	}
	for _, c := range cases {
		if got := Category(c.in); got != c.want {
			t.Errorf("Category(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCategoryIdempotent(t *testing.T) {
	inputs := []string{
		"Fin_Tech", "Real Estate & Construction", "  Café!!  ", "a_b_c",
		"restaurant_dining", "", "Mixed CASE with 123",
	}
	for _, in := range inputs {
		once := Category(in)
		twice := Category(once)
		if once != twice {
			t.Errorf("Category not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTagShape(t *testing.T) {
	inputs := []string{
		"Vector Art", "  thought-provoking ", "Food & Beverage", "a  b   c",
		"already_underscored", "Café Crème",
	}
	for _, in := range inputs {
		got := Tag(in)
		for _, r := range got {
			if unicode.IsSpace(r) {
				t.Errorf("Tag(%q) = %q contains whitespace", in, got)
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				t.Errorf("Tag(%q) = %q contains disallowed rune %q", in, got, r)
			}
		}
	}
}

func TestTagValues(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Vector Art", "vector_art"},
		{"Food & Beverage", "food_beverage"},
		{"a  b   c", "a_b_c"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Tag(c.in); got != c.want {
			t.Errorf("Tag(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTagAndCategoryFormsDiffer(t *testing.T) {
	in := "Fine Dining"
	cat := Category(in)
	tag := Tag(in)
	if cat == tag {
		t.Fatalf("category and tag forms should differ: both %q", cat)
	}
	if strings.Contains(tag, " ") {
		t.Errorf("tag form %q is space-delimited", tag)
	}
	if strings.Contains(cat, "_") {
		t.Errorf("category form %q is underscore-delimited", cat)
	}
}

func TestTagList(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Vector Art, Even Edges", "vector_art,even_edges"},
		{"one,,  ,two", "one,two"},
		{"", ""},
		{"  ", ""},
	}
	for _, c := range cases {
		if got := TagList(c.in); got != c.want {
			t.Errorf("TagList(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
