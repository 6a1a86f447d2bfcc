package desc

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/ariadne/pkg/types"
)

// Result is the outcome of simulating one description file.
type Result struct {
	Source string       // file path the description came from
	Desc   *Description // nil when reading or parsing failed
	DescID types.DescID // content hash of the raw description bytes
	Size   int64        // raw description size in bytes
	Path   *types.Path  // witness path, nil on rejection
	Err    error        // read, parse or simulation error
}

// Accepted reports whether the simulation succeeded and accepted its input.
func (r *Result) Accepted() bool {
	return r.Err == nil && r.Path != nil
}

// Output renders the result in the wire format, "Reject" on rejection.
func (r *Result) Output() string {
	return types.RenderOutcome(r.Path)
}

// RunAll reads, parses and simulates every path on a bounded worker pool,
// delivering one Result per path to callback as simulations complete. The
// callback runs on the worker goroutines and must be safe for concurrent
// use; returning an error from it cancels the batch.
func RunAll(ctx context.Context, paths []string, callback func(*Result) error) error {
	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	pathCh := make(chan string, numWorkers)

	g.Go(func() error {
		defer close(pathCh)
		for _, p := range paths {
			select {
			case pathCh <- p:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			for p := range pathCh {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				if err := callback(processFile(p)); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// processFile simulates a single description file.
func processFile(path string) *Result {
	res := &Result{Source: path}

	content, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", path, err)
		return res
	}
	res.Size = int64(len(content))
	res.DescID = types.ComputeDescID(content)

	d, err := Parse(content)
	if err != nil {
		res.Err = fmt.Errorf("parsing %s: %w", path, err)
		return res
	}
	res.Desc = d

	if !d.HasInput {
		res.Err = fmt.Errorf("%s: description has no input: line", path)
		return res
	}

	res.Path, res.Err = d.Automaton.Run(d.Input)
	return res
}
