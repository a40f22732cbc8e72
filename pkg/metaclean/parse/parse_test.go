package parse

import (
	"reflect"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		f := Parse(in)
		if f.Company != "" || f.Description != "" || f.Category != "" || len(f.Tags) != 0 {
			t.Errorf("Parse(%q) = %+v, want zero Fields", in, f)
		}
	}
}

func TestParseNoSwapLongTagRedistribution(t *testing.T) {
	f := Parse("Acme, A longer phrase here more, X Y, tag1, tag two three four five")

	if f.Company != "Acme" {
		t.Errorf("company = %q", f.Company)
	}
	// Category has 2 words: not more than 2, so no swap even though the
	// description is longer.
	if f.Category != "X Y" {
		t.Errorf("category = %q, want %q", f.Category, "X Y")
	}
	if want := "A longer phrase here more, tag two three four five"; f.Description != want {
		t.Errorf("description = %q, want %q", f.Description, want)
	}
	if want := []string{"tag1"}; !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("tags = %v, want %v", f.Tags, want)
	}
}

func TestParseSwap(t *testing.T) {
	f := Parse("Acme, Short, Long Phrase With Many Words, t1")

	if f.Description != "Long Phrase With Many Words" {
		t.Errorf("description = %q, want swapped long phrase", f.Description)
	}
	if f.Category != "Short" {
		t.Errorf("category = %q, want %q", f.Category, "Short")
	}
	if want := []string{"t1"}; !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("tags = %v, want %v", f.Tags, want)
	}
}

func TestParseSwapIgnoresConnectors(t *testing.T) {
	// "&" and "and" don't count as words: the category here has three
	// counted words, no more than the description's three, so no swap.
	f := Parse("Acme, One two three, Fish & Chips and Co")
	if f.Category != "Fish & Chips and Co" {
		t.Errorf("category = %q, want unswapped", f.Category)
	}
}

func TestParseArtifactSubstitutions(t *testing.T) {
	// ", &" collapses into the previous segment instead of opening a new one.
	f := Parse("Acme, Food, & Drink, Cat, t1")
	if f.Description != "Food & Drink" {
		t.Errorf("description = %q, want %q", f.Description, "Food & Drink")
	}
	if f.Category != "Cat" {
		t.Errorf("category = %q, want %q", f.Category, "Cat")
	}
	if want := []string{"t1"}; !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("tags = %v, want %v", f.Tags, want)
	}
}

func TestParseStripsSpecialCharacters(t *testing.T) {
	f := Parse(`Simple elegant logo for Play, ""Altar Boyz"", pop Advertising People band boy Sunrise Silhouette technology, Theater, minimalist, thought-provoking, vector art`)

	if f.Company != "Simple elegant logo for Play" {
		t.Errorf("company = %q", f.Company)
	}
	// Quotes are stripped; the long phrase then swaps into description.
	if f.Category != "Altar Boyz" {
		t.Errorf("category = %q, want %q", f.Category, "Altar Boyz")
	}
	if f.Description != "pop Advertising People band boy Sunrise Silhouette technology" {
		t.Errorf("description = %q", f.Description)
	}
	want := []string{"Theater", "minimalist", "thought-provoking", "vector art"}
	if !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("tags = %v, want %v", f.Tags, want)
	}
}

func TestParseRejectsInvalidTags(t *testing.T) {
	// Tags may only contain word characters, hyphens, underscores and
	// spaces. Ampersands survive the global strip but disqualify a tag
	// candidate outright.
	f := Parse("Acme, Desc, Cat, good-tag, rock & roll, with_underscore, ok tag")
	want := []string{"good-tag", "with_underscore", "ok tag"}
	if !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("tags = %v, want %v", f.Tags, want)
	}
}

func TestParseDropsEmptyTagCandidates(t *testing.T) {
	f := Parse("Acme, Desc, Cat, , ,tag1,  ")
	want := []string{"tag1"}
	if !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("tags = %v, want %v", f.Tags, want)
	}
}

func TestParseLongTagsIntoEmptyDescription(t *testing.T) {
	f := Parse("Acme,, Cat, one two three four five")
	if f.Description != "one two three four five" {
		t.Errorf("description = %q, want the redirected tag", f.Description)
	}
	if len(f.Tags) != 0 {
		t.Errorf("tags = %v, want none", f.Tags)
	}
}

func TestParseFewSegments(t *testing.T) {
	f := Parse("OnlyCompany")
	if f.Company != "OnlyCompany" || f.Description != "" || f.Category != "" {
		t.Errorf("unexpected fields: %+v", f)
	}
}
