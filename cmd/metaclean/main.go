// Command metaclean cleans noisy logo metadata tables: it decomposes raw
// text records, consolidates categories into the controlled vocabulary,
// derives top-level groups, and exports consolidation reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glyphlab/metaclean/internal/logger"
	"github.com/glyphlab/metaclean/pkg/metaclean"
	"github.com/glyphlab/metaclean/pkg/metaclean/config"
)

var (
	vocabPath   string
	optionsPath string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "metaclean",
	Short: "Clean and consolidate logo metadata tables",
	Long: `metaclean turns noisy free-text metadata records into a clean tabular
dataset: company, description, category and tags per record, with the
open-ended category labels merged into a small controlled vocabulary and
summarized into ten top-level groups.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vocabPath, "vocab", "vocabulary.yaml",
		"Path to the consolidation vocabulary YAML")
	rootCmd.PersistentFlags().StringVar(&optionsPath, "options", "",
		"Optional pipeline options YAML")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
}

// newEngine loads configuration and builds an engine without a store.
func newEngine() (*metaclean.Engine, config.Options, error) {
	loader := &config.Loader{VocabularyPath: vocabPath, OptionsPath: optionsPath}
	comp, err := loader.Load()
	if err != nil {
		return nil, config.Options{}, err
	}
	eng, err := metaclean.New(metaclean.Options{Lookup: comp.Lookup, Config: comp.Options})
	if err != nil {
		return nil, config.Options{}, err
	}
	return eng, comp.Options, nil
}
