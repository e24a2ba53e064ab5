package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lyagushka/pkg/report"
)

// NewValidateCommand creates the command that checks a JSON result against
// the segment schema.
func NewValidateCommand(stdin io.Reader) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "validate <file.json|->",
		Short: "Validate a JSON result against the segment schema",
		Long: `Validate a JSON array of segments, as produced by --format json, against
the embedded segment schema.

Examples:
  lyagushka validate result.json
  lyagushka events.txt 1 2 | lyagushka validate -
`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runValidate(cobraCmd.OutOrStdout(), stdin, args[0], !noColor && fileIsTerminal(cobraCmd.OutOrStdout()))
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(out io.Writer, stdin io.Reader, path string, colorize bool) error {
	input, name, err := openInput(path, stdin)
	if err != nil {
		return err
	}

	defer input.Close()

	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	issues, err := report.ValidateSegmentsJSON(data)
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}

	valid := color.New(color.FgGreen)
	invalid := color.New(color.FgRed)

	if !colorize {
		valid.DisableColor()
		invalid.DisableColor()
	}

	if len(issues) == 0 {
		valid.Fprintf(out, "Segments are valid (%s)\n", name)

		return nil
	}

	invalid.Fprintf(out, "Segment validation failed (%s)\n", name)
	fmt.Fprintf(out, "\nErrors:\n")

	for _, issue := range issues {
		invalid.Fprintf(out, "  - %s\n", issue)
	}

	return fmt.Errorf("%w: %d issue(s) in %s", report.ErrSchemaViolation, len(issues), name)
}
