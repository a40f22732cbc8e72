package consolidate

import (
	"strings"

	"github.com/glyphlab/metaclean/pkg/metaclean/normalize"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

// Post-consolidation cleanup passes. These run after Consolidate in the
// order AssignTagCategory → FilterRare → RestrictToVocabulary, mirroring the
// cleanup pipeline's notebook sequence.

// AssignTagCategory recovers unclassified rows from their tags: the first
// tag whose category normal form is a known variant promotes the row to that
// variant's canonical category. Returns the number of recovered rows.
func AssignTagCategory(t *table.Table, lookup *Lookup) (int, error) {
	if _, err := t.RequireColumn(ColCategory); err != nil {
		return 0, err
	}
	if _, err := t.RequireColumn(ColTags); err != nil {
		return 0, err
	}

	recovered := 0
	for i := 0; i < t.Len(); i++ {
		if t.Get(i, ColCategory) != Unclassified {
			continue
		}
		for _, tag := range splitTags(t.Get(i, ColTags)) {
			if canonical, ok := lookup.Canonical(normalize.Category(tag)); ok {
				t.Set(i, ColCategory, canonical)
				recovered++
				break
			}
		}
	}
	return recovered, nil
}

// FilterRare demotes categories that occur fewer than minCount times in the
// table to unclassified. Returns the demoted category labels in first-seen
// order.
func FilterRare(t *table.Table, minCount int) ([]string, error) {
	if _, err := t.RequireColumn(ColCategory); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		if cat := t.Get(i, ColCategory); strings.TrimSpace(cat) != "" {
			counts[cat]++
		}
	}

	var demoted []string
	demotedSet := make(map[string]struct{})
	for i := 0; i < t.Len(); i++ {
		cat := t.Get(i, ColCategory)
		if strings.TrimSpace(cat) == "" || cat == Unclassified {
			continue
		}
		if counts[cat] >= minCount {
			continue
		}
		if _, dup := demotedSet[cat]; !dup {
			demotedSet[cat] = struct{}{}
			demoted = append(demoted, cat)
		}
		t.Set(i, ColCategory, Unclassified)
	}
	return demoted, nil
}

// RestrictToVocabulary forces every category that is not a canonical
// vocabulary name to unclassified. Demoted labels occurring more than
// tagThreshold times keep their original label as a tag so the information
// survives the demotion. Returns the demoted labels in first-seen order.
func RestrictToVocabulary(t *table.Table, lookup *Lookup, tagThreshold int) ([]string, error) {
	if _, err := t.RequireColumn(ColCategory); err != nil {
		return nil, err
	}
	_, hasTags := t.Col(ColTags)

	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		counts[t.Get(i, ColCategory)]++
	}

	var demoted []string
	demotedSet := make(map[string]struct{})
	for i := 0; i < t.Len(); i++ {
		cat := t.Get(i, ColCategory)
		if strings.TrimSpace(cat) == "" || cat == Unclassified || lookup.IsCanonical(cat) {
			continue
		}
		if _, dup := demotedSet[cat]; !dup {
			demotedSet[cat] = struct{}{}
			demoted = append(demoted, cat)
		}
		if hasTags && counts[cat] > tagThreshold {
			t.Set(i, ColTags, appendTag(t.Get(i, ColTags), normalize.Tag(cat)))
		}
		t.Set(i, ColCategory, Unclassified)
	}
	return demoted, nil
}
