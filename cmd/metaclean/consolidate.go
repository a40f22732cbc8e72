package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/glyphlab/metaclean/pkg/metaclean/report"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

var (
	consInput     string
	consOutput    string
	consReport    string
	consUnmatched string
	consXLSX      string
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Rewrite the category column to canonical vocabulary form",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		t, err := table.LoadCSV(consInput)
		if err != nil {
			return err
		}
		res, err := eng.ConsolidateTable(cmd.Context(), t)
		if err != nil {
			return err
		}
		if err := t.SaveCSV(consOutput); err != nil {
			return err
		}

		rep := report.New(res)
		if consReport != "" {
			if err := rep.WriteCSV(consReport); err != nil {
				return err
			}
		}
		if consUnmatched != "" {
			if err := rep.WriteUnmatchedCSV(consUnmatched); err != nil {
				return err
			}
		}
		if consXLSX != "" {
			if err := rep.WriteXLSX(consXLSX); err != nil {
				return err
			}
		}

		slog.Info("consolidated categories",
			"rows", t.Len(),
			"buckets", res.Mapping.Len(),
			"unmatched", res.Unmatched.Len())
		return nil
	},
}

func init() {
	consolidateCmd.Flags().StringVar(&consInput, "input", "", "Input CSV (required)")
	consolidateCmd.Flags().StringVar(&consOutput, "output", "", "Output CSV (required)")
	consolidateCmd.Flags().StringVar(&consReport, "report", "", "Optional bucket report CSV")
	consolidateCmd.Flags().StringVar(&consUnmatched, "unmatched", "", "Optional unmatched list CSV")
	consolidateCmd.Flags().StringVar(&consXLSX, "xlsx", "", "Optional XLSX workbook report")
	cobra.CheckErr(consolidateCmd.MarkFlagRequired("input"))
	cobra.CheckErr(consolidateCmd.MarkFlagRequired("output"))
	rootCmd.AddCommand(consolidateCmd)
}
