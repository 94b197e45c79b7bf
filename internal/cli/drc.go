package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/logogds/pkg/drc"
	errs "github.com/matzehuels/logogds/pkg/errors"
	"github.com/matzehuels/logogds/pkg/pipeline"
)

// maxListedFindings caps the findings printed by the non-interactive drc
// command. The interactive browser and --verbose always show all of them.
const maxListedFindings = 20

func (c *CLI) drcCommand() *cobra.Command {
	var (
		interactive bool
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "drc [image]",
		Short: "Check an image for diagonal touches and lone pixels",
		Long: `Run the design-rule check without writing a layout.

The image defaults to the configured input. Findings are advisory for
conversion; use --strict to turn them into a failing exit status.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return imageExts, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			opts.Logger = loggerFromContext(cmd.Context())

			b, report, err := pipeline.NewRunner(opts.Logger).Check(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if interactive && !report.Clean() {
				if _, err := tea.NewProgram(NewFindingsModel(b, report), tea.WithContext(cmd.Context())).Run(); err != nil {
					return err
				}
			} else {
				printReport(report, c.verbose)
			}

			if strict && !report.Clean() {
				return errs.New(errs.ErrCodeInvalidInput, "%s", report.Summary())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&interactive, "interactive", false, "browse findings in an interactive view")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any rule is violated")
	return cmd
}

func printReport(report drc.Report, all bool) {
	if report.Clean() {
		printSuccess("No DRC issues")
		return
	}

	printWarning("%s", report.Summary())
	for i, f := range report.Findings {
		if !all && i == maxListedFindings {
			printDetail("... %d more (use --verbose or --interactive)", len(report.Findings)-i)
			break
		}
		printDetail("%s", f.String())
	}
}
