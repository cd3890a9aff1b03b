// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mwe2/grammar"
	"mwe2/internal/ast"
	"mwe2/internal/errors"
	"mwe2/internal/parser"
)

func newParseCommand(a *app) *cobra.Command {
	var (
		reference bool
		tree      bool
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a module and print it in canonical form",
		Long: `Parse a module and print it in canonical form.

Diagnostics go to stderr. With --reference the file is parsed with the
participle reference grammar instead of the error-tolerant parser. With
--tree the syntax tree is printed instead of the canonical form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			if reference {
				file, err := grammar.ParseString(path, string(source))
				if err != nil {
					grammar.ReportError(cmd.ErrOrStderr(), string(source), err)
					return errDiagnostics
				}
				fmt.Fprint(cmd.OutOrStdout(), file.String())
				return nil
			}

			module, ok, err := a.parse(cmd, path, string(source))
			if err != nil {
				return err
			}
			if !ok {
				return errDiagnostics
			}
			if tree {
				fmt.Fprint(cmd.OutOrStdout(), ast.Dump(module))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), module.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&reference, "reference", false, "use the reference grammar")
	cmd.Flags().BoolVar(&tree, "tree", false, "print the syntax tree")
	return cmd
}

// parse runs the error-tolerant parser and reports its diagnostics to
// stderr. ok is false when any of them is an error.
func (a *app) parse(cmd *cobra.Command, path, source string) (*ast.Module, bool, error) {
	result, err := parser.Parse(cmd.Context(), path, source, parser.Options{MaxLookahead: a.cfg.MaxLookahead})
	if err != nil {
		return nil, false, err
	}
	diagnostics := result.Diagnostics()
	if len(diagnostics) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), errors.NewErrorReporter(path, source).FormatAll(diagnostics))
	}
	return result.Module, !errors.HasErrors(diagnostics), nil
}
