package config

import (
	"fmt"

	"github.com/glyphlab/metaclean/pkg/metaclean/consolidate"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	VocabularyPath string
	OptionsPath    string
}

// Components holds all loaded configuration components
type Components struct {
	Lookup  *consolidate.Lookup
	Options Options
}

// Load reads the configuration files and returns initialized components.
// The vocabulary is required; options fall back to defaults when no path is
// given.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Options: DefaultOptions()}

	vocab, err := LoadVocabulary(l.VocabularyPath)
	if err != nil {
		return nil, err
	}
	builder := consolidate.NewBuilder()
	for _, entry := range vocab.Entries {
		builder.Add(entry.Canonical, entry.Variants...)
	}
	comp.Lookup = builder.Build()

	if l.OptionsPath != "" {
		opts, err := LoadOptions(l.OptionsPath)
		if err != nil {
			return nil, fmt.Errorf("load options: %w", err)
		}
		comp.Options = opts
	}

	return comp, nil
}
