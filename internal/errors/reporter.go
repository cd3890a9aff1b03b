package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"mwe2/internal/ast"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is a structured diagnostic with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Error implements the error interface with a compact one-line form.
func (e CompilerError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s[%s]: %s",
		e.Position.Filename, e.Position.Line, e.Position.Column, e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// HasErrors reports whether any diagnostic has level Error.
func HasErrors(errs []CompilerError) bool {
	for _, e := range errs {
		if e.Level == Error {
			return true
		}
	}
	return false
}

// Count returns the number of errors and warnings in errs.
func Count(errs []CompilerError) (errorCount, warningCount int) {
	for _, e := range errs {
		switch e.Level {
		case Error:
			errorCount++
		case Warning:
			warningCount++
		}
	}
	return errorCount, warningCount
}

// Sort orders diagnostics by file and offset, keeping the relative order of
// diagnostics at the same place.
func Sort(errs []CompilerError) {
	sort.SliceStable(errs, func(i, j int) bool {
		a, b := errs[i].Position, errs[j].Position
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Offset < b.Offset
	})
}

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatAll formats every diagnostic followed by a summary line.
func (er *ErrorReporter) FormatAll(errs []CompilerError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(er.FormatError(err))
	}
	errorCount, warningCount := Count(errs)
	if errorCount+warningCount > 0 {
		b.WriteString(fmt.Sprintf("%s: %d error(s), %d warning(s)\n", er.filename, errorCount, warningCount))
	}
	return b.String()
}

// FormatError formats one diagnostic with a source excerpt and caret marker
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(err.Level)), err.Message))
	}

	width := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	er.writeExcerpt(&result, err, width)
	er.writeSuggestions(&result, err, indent)

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// writeExcerpt prints the line before, the offending line with its marker and
// the line after.
func (er *ErrorReporter) writeExcerpt(result *strings.Builder, err CompilerError, width int) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	indent := strings.Repeat(" ", width)
	line := err.Position.Line

	if line > 1 && line-1 <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, line-1)), dim("│"), er.lines[line-2]))
	}

	if line > 0 && line <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, line)), dim("│"), er.lines[line-1]))
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			indent, dim("│"), er.createMarker(err.Position.Column, err.Length, err.Level)))
	}

	if line > 0 && line < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, line+1)), dim("│"), er.lines[line]))
	}
}

func (er *ErrorReporter) writeSuggestions(result *strings.Builder, err CompilerError, indent string) {
	if len(err.Suggestions) == 0 {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
	for i, suggestion := range err.Suggestions {
		if i == 0 {
			result.WriteString(fmt.Sprintf("%s %s %s: %s\n", indent, cyan("help"), cyan("try"), suggestion.Message))
		} else {
			result.WriteString(fmt.Sprintf("%s %s %s\n", indent, cyan("    "), suggestion.Message))
		}

		if suggestion.Replacement != "" {
			result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
			replacement := strings.ReplaceAll(suggestion.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
			result.WriteString(fmt.Sprintf("%s %s %s\n", indent, cyan("│"), cyan(replacement)))
		}
	}
}

// getLevelColor returns the color function for a level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for a diagnostic
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + er.getLevelColor(level)(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	return max(3, len(fmt.Sprintf("%d", line)))
}
