package consolidate

// Bucket tracks how many rows and which original raw labels landed on one
// canonical category.
type Bucket struct {
	Count     int
	Originals []string // first-seen order, de-duplicated

	originalSet map[string]struct{}
}

// Mapping is the per-run provenance accumulator: canonical category →
// bucket. Keys preserve first-seen order so reports are reproducible.
// Mapping is not safe for concurrent writers; parallel consolidation keeps
// one Mapping per worker and merges them afterwards.
type Mapping struct {
	buckets map[string]*Bucket
	order   []string
}

// NewMapping creates an empty provenance accumulator.
func NewMapping() *Mapping {
	return &Mapping{buckets: make(map[string]*Bucket)}
}

// Record notes that one row with the given original label resolved to the
// canonical category.
func (m *Mapping) Record(canonical, original string) {
	b, ok := m.buckets[canonical]
	if !ok {
		b = &Bucket{originalSet: make(map[string]struct{})}
		m.buckets[canonical] = b
		m.order = append(m.order, canonical)
	}
	b.Count++
	if _, dup := b.originalSet[original]; !dup {
		b.originalSet[original] = struct{}{}
		b.Originals = append(b.Originals, original)
	}
}

// Bucket returns the bucket for a canonical category.
func (m *Mapping) Bucket(canonical string) (*Bucket, bool) {
	b, ok := m.buckets[canonical]
	return b, ok
}

// Canonicals returns the canonical categories in first-seen order.
func (m *Mapping) Canonicals() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of canonical buckets.
func (m *Mapping) Len() int {
	return len(m.buckets)
}

// Merge folds other into m: counts sum, original sets union. The operation
// is commutative and associative up to key/label ordering, which follows
// merge order.
func (m *Mapping) Merge(other *Mapping) {
	for _, canonical := range other.order {
		src := other.buckets[canonical]
		dst, ok := m.buckets[canonical]
		if !ok {
			dst = &Bucket{originalSet: make(map[string]struct{})}
			m.buckets[canonical] = dst
			m.order = append(m.order, canonical)
		}
		dst.Count += src.Count
		for _, orig := range src.Originals {
			if _, dup := dst.originalSet[orig]; !dup {
				dst.originalSet[orig] = struct{}{}
				dst.Originals = append(dst.Originals, orig)
			}
		}
	}
}

// UnmatchedList collects raw categories that matched nothing, de-duplicated,
// in first-seen order.
type UnmatchedList struct {
	values []string
	seen   map[string]struct{}
}

// NewUnmatchedList creates an empty unmatched list.
func NewUnmatchedList() *UnmatchedList {
	return &UnmatchedList{seen: make(map[string]struct{})}
}

// Add appends a raw label unless it is already present.
func (u *UnmatchedList) Add(raw string) {
	if _, dup := u.seen[raw]; dup {
		return
	}
	u.seen[raw] = struct{}{}
	u.values = append(u.values, raw)
}

// Values returns the collected labels in first-seen order.
func (u *UnmatchedList) Values() []string {
	return append([]string(nil), u.values...)
}

// Len returns the number of distinct unmatched labels.
func (u *UnmatchedList) Len() int {
	return len(u.values)
}

// Merge appends other's labels, keeping de-duplication.
func (u *UnmatchedList) Merge(other *UnmatchedList) {
	for _, v := range other.values {
		u.Add(v)
	}
}
