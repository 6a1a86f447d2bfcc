package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/ariadne/pkg/store"
)

var (
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <source1.db> <source2.db> [source3.db...]",
	Short: "Merge multiple Ariadne databases",
	Long: `Merge multiple Ariadne databases into a single output database.

This is useful for combining results from batch runs executed on
different machines or against different description trees.

Deduplication is automatic - duplicate descriptions and runs are only
stored once in the merged database.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMergeCmd,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.db", "Output database path")
}

func runMergeCmd(cmd *cobra.Command, args []string) error {
	stats, err := store.Merge(store.MergeConfig{
		SourcePaths: args,
		DestPath:    mergeOutput,
	})
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Merged %d sources into %s\n", stats.SourcesProcessed, mergeOutput)
	fmt.Fprintf(out, "  Descriptions merged: %d\n", stats.DescriptionsMerged)
	fmt.Fprintf(out, "  Runs merged: %d\n", stats.RunsMerged)
	return nil
}
