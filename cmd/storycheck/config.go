package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with credentials censored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.load()
			if err != nil {
				return &exitError{code: ExitSetupError, err: fmt.Errorf("failed to load config: %w", err)}
			}
			fmt.Fprint(cmd.OutOrStdout(), c.Report())
			return nil
		},
	}
}
