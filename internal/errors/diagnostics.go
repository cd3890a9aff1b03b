package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"mwe2/internal/ast"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewDiagnostic creates a builder for an error-level diagnostic
func NewDiagnostic(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a builder for a warning-level diagnostic
func NewWarning(code, message string, pos ast.Position) *DiagnosticBuilder {
	b := NewDiagnostic(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSpan sets the length from a start and end position
func (b *DiagnosticBuilder) WithSpan(start, end ast.Position) *DiagnosticBuilder {
	if n := end.Offset - start.Offset; n > 0 {
		b.err.Length = n
	}
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// FindSimilarNames returns candidates within edit distance 2 of target,
// closest first.
func FindSimilarNames(target string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	var similar []scored
	seen := make(map[string]bool)
	for _, candidate := range candidates {
		if candidate == target || seen[candidate] || len(candidate) < 2 {
			continue
		}
		seen[candidate] = true
		if d := levenshtein.Distance(target, candidate, nil); d <= 2 {
			similar = append(similar, scored{candidate, d})
		}
	}
	sort.SliceStable(similar, func(i, j int) bool { return similar[i].dist < similar[j].dist })

	names := make([]string, len(similar))
	for i, s := range similar {
		names[i] = s.name
	}
	return names
}

func withDidYouMean(b *DiagnosticBuilder, similar []string) *DiagnosticBuilder {
	switch len(similar) {
	case 0:
		return b
	case 1:
		return b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		return b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
}

// Linking diagnostics

// UnresolvedReference reports a bare reference that names nothing
func UnresolvedReference(name string, pos ast.Position, similar []string) CompilerError {
	b := NewDiagnostic(ErrorUnresolvedReference, fmt.Sprintf("cannot resolve reference to '%s'", name), pos).
		WithLength(len(name))
	if len(similar) == 0 {
		b = b.WithNote("references name a declared property or a component given a name with ': name'")
	}
	return withDidYouMean(b, similar).Build()
}

// UnresolvedProperty reports ${name} without a matching 'var' declaration
func UnresolvedProperty(name string, pos ast.Position, similar []string) CompilerError {
	b := NewDiagnostic(ErrorUnresolvedProperty, fmt.Sprintf("undefined property '%s'", name), pos).
		WithLength(len(name))
	if len(similar) == 0 {
		b = b.WithSuggestion(fmt.Sprintf("declare it with 'var %s = ...'", name))
	}
	return withDidYouMean(b, similar).Build()
}

// DuplicateDeclaration reports a second declaration of the same name
func DuplicateDeclaration(name string, pos, previous ast.Position) CompilerError {
	return NewDiagnostic(ErrorDuplicateDeclaration, fmt.Sprintf("'%s' is already declared", name), pos).
		WithLength(len(name)).
		WithNote(fmt.Sprintf("previous declaration at %d:%d", previous.Line, previous.Column)).
		Build()
}

// ForwardReference reports a property default that uses a later property
func ForwardReference(name string, pos, declared ast.Position) CompilerError {
	return NewDiagnostic(ErrorForwardReference, fmt.Sprintf("property '%s' is used before its declaration", name), pos).
		WithLength(len(name)).
		WithNote(fmt.Sprintf("'%s' is declared at %d:%d", name, declared.Line, declared.Column)).
		WithHelp("move the declaration above its first use").
		Build()
}

// Type diagnostics

// UnknownType reports a type name the resolver does not know
func UnknownType(name string, pos ast.Position, similar []string) CompilerError {
	b := NewDiagnostic(ErrorUnknownType, fmt.Sprintf("cannot resolve type '%s'", name), pos).
		WithLength(len(name))
	if len(similar) == 0 {
		b = b.WithHelp("use the fully qualified name or add an import")
	}
	return withDidYouMean(b, similar).Build()
}

// UnknownFeature reports an assignment to a property the type does not have
func UnknownFeature(typeName, feature string, pos ast.Position, available []string) CompilerError {
	b := NewDiagnostic(ErrorUnknownFeature, fmt.Sprintf("type '%s' has no property '%s'", typeName, feature), pos).
		WithLength(len(feature))
	b = withDidYouMean(b, FindSimilarNames(feature, available))
	if len(available) > 0 {
		b = b.WithNote(fmt.Sprintf("available properties: %s", strings.Join(available, ", ")))
	}
	return b.Build()
}

// AbstractType reports an abstract type instantiated as a component
func AbstractType(name string, pos ast.Position) CompilerError {
	return NewDiagnostic(ErrorAbstractType, fmt.Sprintf("type '%s' is abstract and cannot be instantiated", name), pos).
		WithLength(len(name)).
		Build()
}

// Module diagnostics

// UnresolvedModule reports @name without a matching module
func UnresolvedModule(name string, pos ast.Position, similar []string) CompilerError {
	b := NewDiagnostic(ErrorUnresolvedModule, fmt.Sprintf("cannot resolve module '%s'", name), pos).
		WithLength(len(name))
	return withDidYouMean(b, similar).Build()
}

// DuplicateModule reports two files declaring the same module name
func DuplicateModule(name string, pos ast.Position, otherFile string) CompilerError {
	return NewDiagnostic(ErrorDuplicateModule, fmt.Sprintf("module '%s' is declared more than once", name), pos).
		WithLength(len(name)).
		WithNote(fmt.Sprintf("also declared in %s", otherFile)).
		Build()
}

// ModuleCycle reports a cycle of @module references
func ModuleCycle(cycle []string, pos ast.Position) CompilerError {
	return NewDiagnostic(ErrorModuleCycle, fmt.Sprintf("module cycle: %s", strings.Join(cycle, " -> ")), pos).
		WithLength(len(cycle[0])).
		Build()
}

// Warnings

// RepeatedAssignment warns that a single-valued feature is overwritten
func RepeatedAssignment(feature string, pos, first ast.Position) CompilerError {
	return NewWarning(WarningRepeatedAssignment, fmt.Sprintf("property '%s' is assigned more than once", feature), pos).
		WithLength(len(feature)).
		WithNote(fmt.Sprintf("first assigned at %d:%d; the last assignment wins", first.Line, first.Column)).
		Build()
}

// UnusedProperty warns about a declared property nobody references
func UnusedProperty(name string, pos ast.Position) CompilerError {
	return NewWarning(WarningUnusedProperty, fmt.Sprintf("property '%s' is declared but never used", name), pos).
		WithLength(len(name)).
		Build()
}
