// SPDX-License-Identifier: Apache-2.0
package main

import (
	"github.com/spf13/cobra"

	"mwe2/repl"
)

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read modules from stdin and print them in canonical form",
		Long:  "Read modules from stdin, one per blank-line separated block, and print each in canonical form.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			repl.Start(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
