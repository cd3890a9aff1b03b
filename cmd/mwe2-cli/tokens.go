// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"mwe2/internal/parser"
)

func newTokensCommand() *cobra.Command {
	var hidden bool

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Dump the token stream of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, tok := range parser.Tokenize(string(source)) {
				if tok.Mode == parser.ModeStructural && tok.Type.IsHidden() && !hidden {
					continue
				}
				mode := "structural"
				if tok.Mode == parser.ModeString {
					mode = "string"
				}
				fmt.Fprintf(out, "%d:%d\t%-10s\t%s\t%s\n",
					tok.Position.Line, tok.Position.Column, mode, tok.Type, strconv.Quote(tok.Lexeme))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hidden, "hidden", false, "include whitespace and comments")
	return cmd
}
