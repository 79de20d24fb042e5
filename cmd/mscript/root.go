package main

import (
	"github.com/spf13/cobra"
)

type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "mscript",
		Short: "Run mscript programs",
		Long: `mscript runs programs written in a small imperative language with
int and float variables, print, if/else, for and while.

A script argument is resolved as a script name from mscript.yml, then as
source:path into a fetched source, then as a file path.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "config file (default: $MSCRIPT_HOME/config.toml)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.opts.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&a.opts.noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(
		newRunCmd(a),
		newWatchCmd(a),
		newTokensCmd(a),
		newASTCmd(a),
		newFetchCmd(a),
		newVersionCmd(a),
	)
	return root
}
