package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/glyphlab/metaclean/pkg/metaclean/group"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

var (
	groupInput  string
	groupOutput string
	groupSource string
	groupTarget string
)

// The grouper is pure and needs no vocabulary, so this command skips engine
// construction entirely.
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Add the coarse top-level group column",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := table.LoadCSV(groupInput)
		if err != nil {
			return err
		}
		if err := group.AddTopLevel(t, groupSource, groupTarget); err != nil {
			return err
		}
		if err := t.SaveCSV(groupOutput); err != nil {
			return err
		}
		slog.Info("added top-level groups", "rows", t.Len(), "output", groupOutput)
		return nil
	},
}

func init() {
	groupCmd.Flags().StringVar(&groupInput, "input", "", "Input CSV (required)")
	groupCmd.Flags().StringVar(&groupOutput, "output", "", "Output CSV (required)")
	groupCmd.Flags().StringVar(&groupSource, "source-col", "category", "Column to group")
	groupCmd.Flags().StringVar(&groupTarget, "target-col", group.DefaultTargetColumn, "Column to write")
	cobra.CheckErr(groupCmd.MarkFlagRequired("input"))
	cobra.CheckErr(groupCmd.MarkFlagRequired("output"))
	rootCmd.AddCommand(groupCmd)
}
