package consolidate

import (
	"reflect"
	"testing"
)

func TestMappingRecord(t *testing.T) {
	m := NewMapping()
	m.Record("finance", "Fin_Tech")
	m.Record("finance", "Banking")
	m.Record("finance", "Fin_Tech")
	m.Record("sports", "Football")

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if want := []string{"finance", "sports"}; !reflect.DeepEqual(m.Canonicals(), want) {
		t.Errorf("Canonicals = %v, want %v", m.Canonicals(), want)
	}
	b, ok := m.Bucket("finance")
	if !ok {
		t.Fatal("finance bucket missing")
	}
	if b.Count != 3 {
		t.Errorf("count = %d, want 3", b.Count)
	}
	if want := []string{"Fin_Tech", "Banking"}; !reflect.DeepEqual(b.Originals, want) {
		t.Errorf("originals = %v, want %v", b.Originals, want)
	}
}

func TestMappingMerge(t *testing.T) {
	a := NewMapping()
	a.Record("finance", "Fin_Tech")
	a.Record("sports", "Football")

	b := NewMapping()
	b.Record("finance", "Banking")
	b.Record("finance", "Fin_Tech")
	b.Record("art", "Painting")

	a.Merge(b)

	if want := []string{"finance", "sports", "art"}; !reflect.DeepEqual(a.Canonicals(), want) {
		t.Errorf("Canonicals = %v, want %v", a.Canonicals(), want)
	}
	fin, _ := a.Bucket("finance")
	if fin.Count != 3 {
		t.Errorf("merged count = %d, want 3", fin.Count)
	}
	if want := []string{"Fin_Tech", "Banking"}; !reflect.DeepEqual(fin.Originals, want) {
		t.Errorf("merged originals = %v, want %v", fin.Originals, want)
	}
}

func TestMappingMergeCountsCommutative(t *testing.T) {
	build := func(pairs [][2]string) *Mapping {
		m := NewMapping()
		for _, p := range pairs {
			m.Record(p[0], p[1])
		}
		return m
	}
	left := [][2]string{{"finance", "Fin_Tech"}, {"art", "Painting"}}
	right := [][2]string{{"art", "Sculpture"}, {"finance", "Banking"}}

	ab := build(left)
	ab.Merge(build(right))
	ba := build(right)
	ba.Merge(build(left))

	for _, canonical := range ab.Canonicals() {
		x, _ := ab.Bucket(canonical)
		y, ok := ba.Bucket(canonical)
		if !ok || x.Count != y.Count || len(x.Originals) != len(y.Originals) {
			t.Errorf("bucket %q differs across merge orders", canonical)
		}
	}
}

func TestUnmatchedList(t *testing.T) {
	u := NewUnmatchedList()
	u.Add("Alpha")
	u.Add("Beta")
	u.Add("Alpha")

	if want := []string{"Alpha", "Beta"}; !reflect.DeepEqual(u.Values(), want) {
		t.Errorf("Values = %v, want %v", u.Values(), want)
	}

	other := NewUnmatchedList()
	other.Add("Beta")
	other.Add("Gamma")
	u.Merge(other)

	if want := []string{"Alpha", "Beta", "Gamma"}; !reflect.DeepEqual(u.Values(), want) {
		t.Errorf("merged Values = %v, want %v", u.Values(), want)
	}
}

func TestBuilderDedupAndOrder(t *testing.T) {
	b := NewBuilder()
	b.Add("finance", "Fin_Tech", "banking")
	b.Add("sports", "fin tech", "football") // duplicate normal form keeps finance
	b.Add("", "   ")                        // empty normal forms are skipped

	l := b.Build()
	if got, ok := l.Canonical("fin tech"); !ok || got != "finance" {
		t.Errorf("Canonical(fin tech) = %q, %v; want finance, true", got, ok)
	}
	if !l.IsCanonical("sports") {
		t.Error("sports should be canonical")
	}
	if l.IsCanonical("banking") {
		t.Error("banking is a variant, not canonical")
	}
	// finance, fin tech, banking, sports, football
	if l.Size() != 5 {
		t.Errorf("Size = %d, want 5", l.Size())
	}
}
