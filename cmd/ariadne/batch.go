package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/ariadne/pkg/desc"
	"github.com/praetorian-inc/ariadne/pkg/store"
	"github.com/praetorian-inc/ariadne/pkg/types"
)

var (
	batchDatastore      string
	batchSkipKnown      bool
	batchMaxFileSize    int64
	batchIncludeHidden  bool
	batchFollowSymlinks bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Simulate every description under the given paths",
	Long: `Walk files and directories, simulate every automaton description found
and record the outcomes in a datastore.

Each description must carry its own input: line. Files that fail to parse
are reported in the summary without stopping the batch. Hidden files,
binaries and gitignored paths are skipped during the walk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchDatastore, "datastore", "ariadne.db", "Output database path")
	batchCmd.Flags().BoolVar(&batchSkipKnown, "skip-known", false, "Skip runs already present in the datastore")
	batchCmd.Flags().Int64Var(&batchMaxFileSize, "max-file-size", 10*1024*1024, "Maximum description file size (bytes)")
	batchCmd.Flags().BoolVar(&batchIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	batchCmd.Flags().BoolVar(&batchFollowSymlinks, "follow-symlinks", false, "Follow symbolic links during the walk")
}

// batchTally accumulates outcome counts across the worker callbacks.
type batchTally struct {
	mu       sync.Mutex
	accepted int
	rejected int
	skipped  int
	failures []string
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	paths, err := collectPaths(ctx, args)
	if err != nil {
		return err
	}

	s, err := store.New(store.Config{Path: batchDatastore})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	tally := &batchTally{}

	err = desc.RunAll(ctx, paths, func(res *desc.Result) error {
		if res.Err != nil {
			tally.mu.Lock()
			tally.failures = append(tally.failures, res.Err.Error())
			tally.mu.Unlock()
			return nil
		}

		structuralID := types.ComputeRunStructuralID(res.DescID, res.Desc.Input)

		if batchSkipKnown {
			exists, err := s.RunExists(structuralID)
			if err != nil {
				return fmt.Errorf("checking run: %w", err)
			}
			if exists {
				tally.mu.Lock()
				tally.skipped++
				tally.mu.Unlock()
				return nil
			}
		}

		if err := s.AddDescription(&types.DescriptionRecord{
			ID:     res.DescID,
			Source: res.Source,
			Size:   res.Size,
			States: res.Desc.Automaton.NumStates(),
			Rules:  res.Desc.Automaton.NumRules(),
		}); err != nil {
			return fmt.Errorf("storing description: %w", err)
		}

		steps := 0
		if res.Path != nil {
			steps = res.Path.Steps()
		}
		if err := s.AddRun(&types.RunRecord{
			StructuralID: structuralID,
			DescID:       res.DescID,
			Source:       res.Source,
			Input:        res.Desc.Input,
			Accepted:     res.Accepted(),
			Output:       res.Output(),
			Steps:        steps,
		}); err != nil {
			return fmt.Errorf("storing run: %w", err)
		}

		tally.mu.Lock()
		if res.Accepted() {
			tally.accepted++
		} else {
			tally.rejected++
		}
		tally.mu.Unlock()
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(tally.failures) > 0 && !quiet {
		sort.Strings(tally.failures)
		for _, f := range tally.failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", f)
		}
	}

	if batchSkipKnown {
		fmt.Fprintf(out, "Batch complete: %d accepted, %d rejected, %d failed (%d skipped)\n",
			tally.accepted, tally.rejected, len(tally.failures), tally.skipped)
	} else {
		fmt.Fprintf(out, "Batch complete: %d accepted, %d rejected, %d failed\n",
			tally.accepted, tally.rejected, len(tally.failures))
	}
	fmt.Fprintf(out, "Results stored in: %s\n", batchDatastore)

	return nil
}

// collectPaths expands the command arguments into a flat list of candidate
// description files, walking directories with the configured filters.
func collectPaths(ctx context.Context, args []string) ([]string, error) {
	cfg := desc.WalkConfig{
		IncludeHidden:  batchIncludeHidden,
		FollowSymlinks: batchFollowSymlinks,
		MaxFileSize:    batchMaxFileSize,
	}

	var paths []string
	for _, target := range args {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("target does not exist: %s", target)
		}
		if !info.IsDir() {
			paths = append(paths, target)
			continue
		}
		found, err := desc.Walk(ctx, target, cfg)
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", target, err)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
