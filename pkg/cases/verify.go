package cases

import (
	"fmt"

	"github.com/praetorian-inc/ariadne/pkg/desc"
	"github.com/praetorian-inc/ariadne/pkg/types"
)

// CheckResult is the outcome of one check within a suite.
type CheckResult struct {
	SuiteID string
	Input   string
	Want    string
	Got     string
	Pass    bool
	Err     error // simulation error, nil for plain mismatches
}

// Verify compiles the suite's automaton and runs every check against it.
// A description that does not compile fails the whole suite; individual
// check failures are reported per result.
func (s *Suite) Verify() ([]CheckResult, error) {
	d, err := desc.Parse([]byte(s.Automaton))
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", s.ID, err)
	}

	results := make([]CheckResult, 0, len(s.Checks))
	for _, c := range s.Checks {
		res := CheckResult{SuiteID: s.ID, Input: c.Input, Want: c.Want}
		path, err := d.Automaton.Run(c.Input)
		if err != nil {
			res.Err = err
		} else {
			res.Got = types.RenderOutcome(path)
			res.Pass = res.Got == res.Want
		}
		results = append(results, res)
	}
	return results, nil
}

// AllPassed reports whether every result in the slice passed.
func AllPassed(results []CheckResult) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return true
}
