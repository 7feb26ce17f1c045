package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/storyspoiler/api-tests/internal/report"
	"github.com/storyspoiler/api-tests/internal/runner"
)

type runOptions struct {
	resultsDir string
	properties bool
	noColor    bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the cases against the configured service",
		Long: `Run authenticates, executes the ordered cases and writes junit.xml and
report.html into the results directory.

Examples:
  storycheck run
  storycheck run --config staging.yml --results-dir ./out
  STORY_ROOT_URL=http://localhost:8080 storycheck run --properties`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.load()
			if err != nil {
				return &exitError{code: ExitSetupError, err: fmt.Errorf("failed to load config: %w", err)}
			}
			if cmd.Flags().Changed("results-dir") {
				c.ResultsDir = opts.resultsDir
			}
			if opts.properties {
				c.Tests.Properties = true
			}
			if opts.noColor {
				color.NoColor = true
			}
			c.LogWriter = cmd.ErrOrStderr()

			r, err := runner.New(c)
			if err != nil {
				return &exitError{code: ExitSetupError, err: err}
			}
			runErr := r.TestAll()
			r.Report(cmd.OutOrStdout())
			if c.ResultsDir != "" {
				if err := r.WriteReports(c.ResultsDir); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: %v\n", err)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Reports written to %s\n", c.ResultsDir)
				}
			}
			if errors.Is(runErr, runner.ErrSetup) {
				return &exitError{code: ExitSetupError, err: runErr}
			}
			if r.Results().Status >= report.StatusFail {
				return &exitError{code: ExitTestFailure}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.resultsDir, "results-dir", "", "Directory for junit.xml and report.html (env: STORY_RESULTS_DIR)")
	cmd.Flags().BoolVar(&opts.properties, "properties", false, "Also run the property cases (env: STORY_TEST_PROPERTIES)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	return cmd
}
