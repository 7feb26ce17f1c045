package main

import (
	"github.com/spf13/cobra"

	"github.com/storyspoiler/api-tests/internal/config"
)

var version = "dev"

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "storycheck",
		Short: "End-to-end checks of the Story Spoiler API",
		Long: `storycheck authenticates against a Story Spoiler deployment and runs
the create, edit, list and delete cases in order, reporting each result.

Settings come from story-spoiler.yml (or the file named by
STORY_CONFIGURATION) and STORY_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config file (env: STORY_CONFIGURATION)")

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// load reads the config file named by --config, falling back to the default
// lookup.
func (o *rootOptions) load() (config.Config, error) {
	if o.configFile != "" {
		return config.LoadFile(o.configFile)
	}
	return config.Load()
}
