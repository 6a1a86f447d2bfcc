package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/ariadne/pkg/cases"
)

var (
	casesPath    string
	casesInclude string
	casesExclude string
	casesFormat  string
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Manage behavior suites",
	Long:  "Commands for listing and verifying automaton behavior suites",
}

var casesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available suites",
	Long:  "Display all available behavior suites with their IDs and check counts",
	RunE:  runCasesList,
}

var casesVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify suites against the simulator",
	Long: `Run every check of every suite and report mismatches between the
expected and the actual simulator output. Exits non-zero when any
check fails.`,
	RunE: runCasesVerify,
}

func init() {
	casesCmd.AddCommand(casesListCmd)
	casesCmd.AddCommand(casesVerifyCmd)

	casesCmd.PersistentFlags().StringVar(&casesPath, "suites", "", "Path to custom suites file")
	casesCmd.PersistentFlags().StringVar(&casesInclude, "include", "", "Include suites matching regex pattern (comma-separated)")
	casesCmd.PersistentFlags().StringVar(&casesExclude, "exclude", "", "Exclude suites matching regex pattern (comma-separated)")
	casesListCmd.Flags().StringVar(&casesFormat, "format", "table", "Output format: table, json")
}

func runCasesList(cmd *cobra.Command, args []string) error {
	suites, err := loadSuites(casesPath, casesInclude, casesExclude)
	if err != nil {
		return err
	}

	switch casesFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(suites)
	case "table":
		return outputSuitesTable(cmd, suites)
	default:
		return fmt.Errorf("unknown output format: %s", casesFormat)
	}
}

func runCasesVerify(cmd *cobra.Command, args []string) error {
	suites, err := loadSuites(casesPath, casesInclude, casesExclude)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	checks := 0
	failed := 0

	for _, s := range suites {
		results, err := s.Verify()
		if err != nil {
			return err
		}

		suiteFailed := 0
		for _, r := range results {
			checks++
			if r.Pass {
				continue
			}
			failed++
			suiteFailed++
			if r.Err != nil {
				fmt.Fprintf(out, "FAIL %s input=%q: %v\n", r.SuiteID, r.Input, r.Err)
				continue
			}
			fmt.Fprintf(out, "FAIL %s input=%q\n  want: %s\n  got:  %s\n", r.SuiteID, r.Input, r.Want, r.Got)
		}

		if verbose && suiteFailed == 0 {
			fmt.Fprintf(out, "ok   %s (%d checks)\n", s.ID, len(results))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d/%d checks failed", failed, checks)
	}

	fmt.Fprintf(out, "Verified %d suites, %d checks\n", len(suites), checks)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func loadSuites(path, include, exclude string) ([]*cases.Suite, error) {
	loader := cases.NewLoader()

	var suites []*cases.Suite
	var err error

	if path != "" {
		// Custom suites from file
		suites, err = loader.LoadSuiteFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading suites from %s: %w", path, err)
		}
	} else {
		// Builtin suites
		suites, err = loader.LoadBuiltinSuites()
		if err != nil {
			return nil, fmt.Errorf("loading builtin suites: %w", err)
		}
	}

	// Apply filtering if patterns specified
	if include != "" || exclude != "" {
		config := cases.FilterConfig{
			Include: cases.ParsePatterns(include),
			Exclude: cases.ParsePatterns(exclude),
		}
		suites, err = cases.Filter(suites, config)
		if err != nil {
			return nil, fmt.Errorf("filtering suites: %w", err)
		}
	}

	return suites, nil
}

func outputSuitesTable(cmd *cobra.Command, suites []*cases.Suite) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tChecks\n")
	fmt.Fprintf(w, "--\t----\t------\n")

	for _, s := range suites {
		fmt.Fprintf(w, "%s\t%s\t%d\n", s.ID, s.Name, len(s.Checks))
	}

	return nil
}
