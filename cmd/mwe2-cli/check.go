// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mwe2/internal/errors"
	"mwe2/internal/workspace"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [PATH...]",
		Short: "Parse and link every module below the given paths",
		Long: `Parse and link every .mwe2 file below the given paths, or below the
configured search paths when none are given. Exits with status 1 if any
error was found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime := time.Now()

			ws, err := workspace.Load(cmd.Context(), a.cfg, args...)
			if err != nil {
				return err
			}
			results, err := ws.Check(cmd.Context())
			if err != nil {
				return err
			}

			var errorCount, warningCount int
			for _, r := range results {
				if len(r.Diagnostics) == 0 {
					continue
				}
				fmt.Fprint(cmd.ErrOrStderr(), errors.NewErrorReporter(r.Path, r.Source).FormatAll(r.Diagnostics))
				e, w := errors.Count(r.Diagnostics)
				errorCount += e
				warningCount += w
			}

			duration := formatDuration(time.Since(startTime))
			if errorCount > 0 {
				color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(),
					"Check failed: %d error(s), %d warning(s) in %d file(s) after %s\n",
					errorCount, warningCount, len(results), duration)
				return errDiagnostics
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
				"Checked %d file(s) in %s, %d warning(s)\n", len(results), duration, warningCount)
			return nil
		},
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
