package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/glyphlab/metaclean/pkg/metaclean/internalerr"
)

// VocabularyEntry is one canonical category with its known raw variants.
// Entries are an ordered list rather than a map: the similarity matcher's
// tie-breaking follows vocabulary order, so the file order is load-bearing.
type VocabularyEntry struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// Vocabulary is the consolidation vocabulary configuration.
type Vocabulary struct {
	Entries []VocabularyEntry `yaml:"vocabulary"`
}

// LoadVocabulary loads the consolidation vocabulary from a YAML file. An
// unreadable or empty vocabulary is a fatal configuration error: running
// consolidation without one would silently mark every row unmatched.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}
	if len(v.Entries) == 0 {
		return nil, fmt.Errorf("vocabulary %s: %w", path, internalerr.ErrNoVocabulary)
	}
	for i, e := range v.Entries {
		if e.Canonical == "" {
			return nil, fmt.Errorf("vocabulary %s entry %d: missing canonical name: %w",
				path, i, internalerr.ErrInvalidConfig)
		}
	}
	return &v, nil
}

// Options holds tunable pipeline settings.
type Options struct {
	// Workers is the consolidation fan-out; <=1 means sequential.
	Workers int `yaml:"workers"`
	// MatchCacheSize bounds the matcher's memoization cache.
	MatchCacheSize int `yaml:"match_cache_size"`
	// MinCategoryCount is the rare-category demotion threshold.
	MinCategoryCount int `yaml:"min_category_count"`
	// TagThreshold is the occurrence count above which a demoted category
	// keeps its label as a tag.
	TagThreshold int `yaml:"tag_threshold"`
	// RawColumn is the free-text column the decomposer reads.
	RawColumn string `yaml:"raw_column"`
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		Workers:          1,
		MatchCacheSize:   4096,
		MinCategoryCount: 4,
		TagThreshold:     5,
		RawColumn:        "text",
	}
}

// LoadOptions loads pipeline options from a YAML file, filling zero values
// with defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("load options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("load options %s: %w", path, err)
	}
	opts.applyDefaults()
	return opts, nil
}

func (o *Options) applyDefaults() {
	def := DefaultOptions()
	if o.Workers <= 0 {
		o.Workers = def.Workers
	}
	if o.MatchCacheSize <= 0 {
		o.MatchCacheSize = def.MatchCacheSize
	}
	if o.MinCategoryCount <= 0 {
		o.MinCategoryCount = def.MinCategoryCount
	}
	if o.TagThreshold <= 0 {
		o.TagThreshold = def.TagThreshold
	}
	if o.RawColumn == "" {
		o.RawColumn = def.RawColumn
	}
}
