// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newFormatCommand(a *app) *cobra.Command {
	var (
		write        bool
		dropComments bool
	)

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a module in canonical form",
		Long: `Print a module in canonical form, or rewrite it in place with --write.

Files with syntax errors are never formatted. The canonical form carries no
comments, so files that have any are refused unless --drop-comments is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			module, ok, err := a.parse(cmd, path, string(source))
			if err != nil {
				return err
			}
			if !ok {
				return errDiagnostics
			}
			if n := len(module.Comments); n > 0 && !dropComments {
				return fmt.Errorf("%s has %d comment(s) that formatting would drop; use --drop-comments", path, n)
			}

			formatted := module.String()
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), formatted)
				return nil
			}
			if formatted == string(source) {
				return nil
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Formatted %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&dropComments, "drop-comments", false, "format even if comments would be lost")
	return cmd
}
