// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"mwe2/internal/config"
)

// errDiagnostics signals a failed run whose diagnostics were already printed.
var errDiagnostics = errors.New("diagnostics reported")

// app carries the state shared by all subcommands.
type app struct {
	configFile string
	noColor    bool
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "mwe2",
		Short: "MWE2 workflow parser and checker",
		Long: `mwe2 parses and checks MWE2 workflow modules.

Configuration is read from mwe2.yaml in the working directory or from the
file given with --config. MWE2_* environment variables override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			if a.noColor {
				cfg.Color = false
			}
			if !cfg.Color {
				color.NoColor = true
			}
			commonlog.Configure(cfg.Verbosity, nil)
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newParseCommand(a))
	rootCmd.AddCommand(newCheckCommand(a))
	rootCmd.AddCommand(newFormatCommand(a))
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newReplCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
