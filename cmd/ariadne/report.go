package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/praetorian-inc/ariadne/pkg/store"
	"github.com/praetorian-inc/ariadne/pkg/types"
)

var (
	reportDatastore string
	reportFormat    string
	reportColor     string
)

// styles holds color formatters for human-readable output
type styles struct {
	runHeading *color.Color
	id         *color.Color
	heading    *color.Color
	accept     *color.Color
	reject     *color.Color
	path       *color.Color
	metadata   *color.Color
}

// newStyles creates color formatters for human output. Enabling and
// disabling per formatter keeps the result independent of the package-level
// color.NoColor autodetection.
func newStyles(enabled bool) *styles {
	s := &styles{
		runHeading: color.New(color.Bold, color.FgHiWhite),
		id:         color.New(color.FgHiGreen),
		heading:    color.New(color.Bold),
		accept:     color.New(color.FgGreen),
		reject:     color.New(color.FgRed),
		path:       color.New(color.FgYellow),
		metadata:   color.New(color.FgHiBlue),
	}

	for _, c := range []*color.Color{s.runHeading, s.id, s.heading, s.accept, s.reject, s.path, s.metadata} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// colorEnabled resolves a --color flag value against the terminal and the
// NO_COLOR convention.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
	}
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report from stored runs",
	Long:  "Read simulation outcomes from a datastore and output a summary report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDatastore, "datastore", "ariadne.db", "Path to datastore file")
	reportCmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, json")
	reportCmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportDatastore == ":memory:" {
		return fmt.Errorf("cannot report from in-memory store")
	}
	if _, err := os.Stat(reportDatastore); err != nil {
		return fmt.Errorf("datastore not found: %s", reportDatastore)
	}

	s, err := store.New(store.Config{Path: reportDatastore})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	runs, err := s.GetRuns()
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	descs, err := s.GetDescriptions()
	if err != nil {
		return fmt.Errorf("retrieving descriptions: %w", err)
	}

	switch reportFormat {
	case "json":
		return outputReportJSON(cmd, runs)
	case "human":
		return outputReportHuman(cmd, runs, descs)
	default:
		return fmt.Errorf("unknown output format: %s", reportFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func outputReportJSON(cmd *cobra.Command, runs []*types.RunRecord) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(runs)
}

func outputReportHuman(cmd *cobra.Command, runs []*types.RunRecord, descs []*types.DescriptionRecord) error {
	out := cmd.OutOrStdout()
	st := newStyles(colorEnabled(reportColor))

	descByID := make(map[types.DescID]*types.DescriptionRecord, len(descs))
	for _, d := range descs {
		descByID[d.ID] = d
	}

	accepted := 0
	for _, r := range runs {
		if r.Accepted {
			accepted++
		}
	}

	fmt.Fprintf(out, "%s\n", st.heading.Sprint("=== Ariadne Report ==="))
	fmt.Fprintf(out, "Datastore: %s\n", reportDatastore)
	fmt.Fprintf(out, "Total runs: %d (%d accepted, %d rejected)\n\n",
		len(runs), accepted, len(runs)-accepted)

	for i, r := range runs {
		fmt.Fprintf(out, "%s (%s %s)\n",
			st.runHeading.Sprintf("Run %d/%d", i+1, len(runs)),
			st.heading.Sprint("id"),
			st.id.Sprint(r.StructuralID))

		if d, ok := descByID[r.DescID]; ok {
			fmt.Fprintf(out, "%s %s (%d states, %d rules)\n",
				st.heading.Sprint("Description:"), st.metadata.Sprint(r.Source), d.States, d.Rules)
		} else {
			fmt.Fprintf(out, "%s %s\n", st.heading.Sprint("Description:"), st.metadata.Sprint(r.Source))
		}

		fmt.Fprintf(out, "%s %q\n", st.heading.Sprint("Input:"), r.Input)
		if r.Accepted {
			fmt.Fprintf(out, "%s %s\n", st.heading.Sprint("Result:"), st.accept.Sprint("Accept"))
			fmt.Fprintf(out, "%s %s\n", st.heading.Sprint("Path:"), st.path.Sprint(r.Output))
		} else {
			fmt.Fprintf(out, "%s %s\n", st.heading.Sprint("Result:"), st.reject.Sprint("Reject"))
		}
		fmt.Fprintln(out)
	}

	return nil
}
