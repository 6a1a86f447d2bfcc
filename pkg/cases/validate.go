package cases

import (
	"fmt"

	"github.com/praetorian-inc/ariadne/pkg/desc"
)

// ValidateSuite checks suite consistency and required fields.
// Returns error if the suite is invalid.
func ValidateSuite(s *Suite) error {
	if s == nil {
		return fmt.Errorf("suite is nil")
	}

	if s.ID == "" {
		return fmt.Errorf("suite ID is required")
	}
	if s.Name == "" {
		return fmt.Errorf("suite name is required")
	}
	if s.Automaton == "" {
		return fmt.Errorf("suite %s has no automaton description", s.ID)
	}
	if len(s.Checks) == 0 {
		return fmt.Errorf("suite %s must have at least one check", s.ID)
	}

	// The description must compile.
	if _, err := desc.Parse([]byte(s.Automaton)); err != nil {
		return fmt.Errorf("suite %s has an invalid automaton: %w", s.ID, err)
	}

	// Check for duplicate inputs; two checks on the same input are either
	// redundant or contradictory.
	seen := make(map[string]bool)
	for _, c := range s.Checks {
		if seen[c.Input] {
			return fmt.Errorf("suite %s contains duplicate check input %q", s.ID, c.Input)
		}
		seen[c.Input] = true
	}

	return nil
}
