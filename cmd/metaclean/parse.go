package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

var (
	parseInput  string
	parseOutput string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Decompose the raw text column into company/description/category/tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		t, err := table.LoadCSV(parseInput)
		if err != nil {
			return err
		}
		if err := eng.ParseTable(t); err != nil {
			return err
		}
		if err := t.SaveCSV(parseOutput); err != nil {
			return err
		}
		slog.Info("parsed raw text records", "rows", t.Len(), "output", parseOutput)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseInput, "input", "", "Input CSV (required)")
	parseCmd.Flags().StringVar(&parseOutput, "output", "", "Output CSV (required)")
	cobra.CheckErr(parseCmd.MarkFlagRequired("input"))
	cobra.CheckErr(parseCmd.MarkFlagRequired("output"))
	rootCmd.AddCommand(parseCmd)
}
