package parser

import (
	"fmt"
	"strings"

	"mwe2/internal/ast"
	"mwe2/internal/errors"
)

// ParseError is a structural diagnostic recorded while parsing
type ParseError struct {
	Level    errors.ErrorLevel
	Code     string
	Message  string
	Rule     string      // innermost grammar rule active when the error was seen
	Expected []TokenType // tokens that would have been accepted, if known
	Found    Token
	Position Position
	Length   int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// expectedList renders expected tokens as "'{' or ':'".
func expectedList(types []TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Display()
	}
	return strings.Join(names, " or ")
}

func toASTPosition(filename string, pos Position) ast.Position {
	return ast.Position{
		Filename: filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

// ToCompilerError converts a parse error into the shared diagnostic model.
func (e ParseError) ToCompilerError(filename string) errors.CompilerError {
	b := errors.NewDiagnostic(e.Code, e.Message, toASTPosition(filename, e.Position)).
		WithLength(max(1, e.Length))
	if e.Level == errors.Warning {
		b = errors.NewWarning(e.Code, e.Message, toASTPosition(filename, e.Position)).
			WithLength(max(1, e.Length))
	}
	if e.Rule != "" {
		b = b.WithNote(fmt.Sprintf("while parsing %s", e.Rule))
	}
	if len(e.Expected) > 0 {
		b = b.WithHelp(fmt.Sprintf("expected %s", expectedList(e.Expected)))
	}
	return b.Build()
}

// ToCompilerError converts a scan error into the shared diagnostic model.
func (e ScanError) ToCompilerError(filename string) errors.CompilerError {
	return errors.NewDiagnostic(errors.ErrorUnterminatedComment, e.Message, toASTPosition(filename, e.Position)).
		WithLength(max(1, e.Length)).
		WithHelp("close the comment with */").
		Build()
}
