// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"mwe2/internal/errors"
	"mwe2/internal/parser"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// Start reads modules from in and prints each one in canonical form to out.
// A module ends at an empty line; diagnostics are printed instead of the
// module when it has errors.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	var lines []string

	for {
		if len(lines) == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}
		if !scanner.Scan() {
			if len(lines) > 0 {
				eval(out, strings.Join(lines, "\n"))
			}
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
			continue
		}
		if len(lines) > 0 {
			eval(out, strings.Join(lines, "\n"))
			lines = lines[:0]
		}
	}
}

func eval(out io.Writer, source string) {
	result := parser.ParseSourceWithMetadata("<repl>", source)
	diagnostics := result.Diagnostics()
	if len(diagnostics) > 0 {
		fmt.Fprint(out, errors.NewErrorReporter("<repl>", source).FormatAll(diagnostics))
	}
	if errors.HasErrors(diagnostics) {
		return
	}
	fmt.Fprint(out, result.Module.String())
}
