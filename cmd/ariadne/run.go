package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/ariadne/pkg/desc"
	"github.com/praetorian-inc/ariadne/pkg/types"
)

var (
	runInput  string
	runFormat string
	runColor  string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Simulate one automaton description",
	Long: `Read an automaton description from a file (or stdin when no file is given),
simulate it against its input and print the outcome.

The default text format prints the exact simulator output: the witness path
on acceptance or "Reject" otherwise, with no trailing newline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "Input string (overrides the description's input: line)")
	runCmd.Flags().StringVar(&runFormat, "format", "text", "Output format: text, json, human")
	runCmd.Flags().StringVar(&runColor, "color", "auto", "Color output: auto, always, never")
}

// runResult is the JSON shape of a single simulation.
type runResult struct {
	Source   string      `json:"source,omitempty"`
	Input    string      `json:"input"`
	Accepted bool        `json:"accepted"`
	Output   string      `json:"output"`
	Path     *types.Path `json:"path"`
}

func runRun(cmd *cobra.Command, args []string) error {
	var (
		d      *desc.Description
		source string
		err    error
	)

	if len(args) == 1 {
		source = args[0]
		d, err = desc.ParseFile(source)
		if err != nil {
			return err
		}
	} else {
		source = "<stdin>"
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}
		d, err = desc.Parse(content)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", source, err)
		}
	}

	// An explicit --input (even an empty one) beats the description's own
	input := d.Input
	if cmd.Flags().Changed("input") {
		input = runInput
	} else if !d.HasInput {
		return fmt.Errorf("%s has no input: line (provide one with --input)", source)
	}

	path, err := d.Automaton.Run(input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch runFormat {
	case "text":
		// The wire contract: path text or "Reject", no trailing newline
		fmt.Fprint(out, types.RenderOutcome(path))
		return nil
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runResult{
			Source:   source,
			Input:    input,
			Accepted: path != nil,
			Output:   types.RenderOutcome(path),
			Path:     path,
		})
	case "human":
		st := newStyles(colorEnabled(runColor))
		fmt.Fprintf(out, "%s %s\n", st.heading.Sprint("Source:"), st.metadata.Sprint(source))
		fmt.Fprintf(out, "%s %q\n", st.heading.Sprint("Input:"), input)
		if path == nil {
			fmt.Fprintf(out, "%s %s\n", st.heading.Sprint("Result:"), st.reject.Sprint("Reject"))
			return nil
		}
		fmt.Fprintf(out, "%s %s\n", st.heading.Sprint("Result:"), st.accept.Sprint("Accept"))
		fmt.Fprintf(out, "%s %s\n", st.heading.Sprint("Path:"), st.path.Sprint(path.String()))
		fmt.Fprintf(out, "%s %d transitions ending in state %d\n",
			st.heading.Sprint("Steps:"), path.Steps(), path.Final())
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", runFormat)
	}
}
