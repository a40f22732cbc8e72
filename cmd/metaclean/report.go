package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glyphlab/metaclean/pkg/metaclean/report"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

var (
	freqInput string
	freqTop   int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Profile the category column's word frequencies",
	Long: `Counts the words appearing in the table's category labels (category
normal form, words longer than two characters) and prints them ranked by
frequency. Useful when deciding which variants to add to the vocabulary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := table.LoadCSV(freqInput)
		if err != nil {
			return err
		}
		col, err := t.RequireColumn("category")
		if err != nil {
			return err
		}

		categories := make([]string, t.Len())
		for i := range t.Rows {
			categories[i] = t.Rows[i][col]
		}

		counts := report.WordFrequency(categories)
		if freqTop > 0 && len(counts) > freqTop {
			counts = counts[:freqTop]
		}
		for _, wc := range counts {
			fmt.Printf("%6d  %s\n", wc.Count, wc.Word)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&freqInput, "input", "", "Input CSV (required)")
	reportCmd.Flags().IntVar(&freqTop, "top", 30, "How many words to print")
	cobra.CheckErr(reportCmd.MarkFlagRequired("input"))
	rootCmd.AddCommand(reportCmd)
}
