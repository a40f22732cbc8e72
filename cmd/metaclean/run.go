package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/glyphlab/metaclean/pkg/metaclean"
	"github.com/glyphlab/metaclean/pkg/metaclean/config"
	"github.com/glyphlab/metaclean/pkg/metaclean/store/sqlite"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

var (
	runInput  string
	runOutput string
	runDB     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the full cleanup pipeline on one table",
	Long: `Runs every cleanup pass in order: raw text decomposition, tag
normalization, category consolidation, tag-based recovery of unclassified
rows, rare-category demotion, vocabulary restriction, and top-level grouping.
With --db the run is also persisted to a SQLite store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := &config.Loader{VocabularyPath: vocabPath, OptionsPath: optionsPath}
		comp, err := loader.Load()
		if err != nil {
			return err
		}

		opts := metaclean.Options{Lookup: comp.Lookup, Config: comp.Options}
		if runDB != "" {
			st, err := sqlite.Open(cmd.Context(), runDB)
			if err != nil {
				return err
			}
			opts.Store = st
		}
		eng, err := metaclean.New(opts)
		if err != nil {
			return err
		}
		defer eng.Close()

		t, err := table.LoadCSV(runInput)
		if err != nil {
			return err
		}
		sum, err := eng.CleanupRun(cmd.Context(), t, runInput)
		if err != nil {
			return err
		}
		if err := t.SaveCSV(runOutput); err != nil {
			return err
		}

		slog.Info("cleanup run finished",
			"run_id", sum.RunID,
			"rows", sum.Rows,
			"buckets", sum.Buckets,
			"unmatched", sum.Unmatched,
			"demoted", sum.Demoted)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "Input CSV (required)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "Output CSV (required)")
	runCmd.Flags().StringVar(&runDB, "db", "", "Optional SQLite database for run persistence")
	cobra.CheckErr(runCmd.MarkFlagRequired("input"))
	cobra.CheckErr(runCmd.MarkFlagRequired("output"))
	rootCmd.AddCommand(runCmd)
}
