package parser

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
)

// ParseResult contains the full parsing result including metadata
type ParseResult struct {
	Path            string
	Source          string
	Module          *ast.Module
	ParseErrors     []ParseError
	ScanErrors      []ScanError
	MetadataVisitor *ast.MetadataVisitor
}

// ParseSourceWithMetadata parses source code and returns the result with
// node IDs, parent links and source ranges assigned
func ParseSourceWithMetadata(path string, source string) *ParseResult {
	return newParseResult(path, source, NewParser(path, source))
}

func newParseResult(path, source string, parser *Parser) *ParseResult {
	module := parser.ParseModule()

	mv := ast.NewMetadataVisitor(source)
	mv.AssignModule(module)

	return &ParseResult{
		Path:            path,
		Source:          source,
		Module:          module,
		ParseErrors:     parser.errors,
		ScanErrors:      parser.scanErrors,
		MetadataVisitor: mv,
	}
}

// Diagnostics merges scan and parse errors into one list ordered by offset
func (pr *ParseResult) Diagnostics() []errors.CompilerError {
	var out []errors.CompilerError
	for _, se := range pr.ScanErrors {
		out = append(out, se.ToCompilerError(pr.Path))
	}
	for _, pe := range pr.ParseErrors {
		out = append(out, pe.ToCompilerError(pr.Path))
	}
	errors.Sort(out)
	return out
}

// HasErrors reports whether parsing produced any error-level diagnostic
func (pr *ParseResult) HasErrors() bool {
	return errors.HasErrors(pr.Diagnostics())
}

// FindNodeByPosition finds the innermost node metadata at a position
func (pr *ParseResult) FindNodeByPosition(pos ast.Position) *ast.Metadata {
	if pr.MetadataVisitor == nil {
		return nil
	}
	return pr.MetadataVisitor.FindNodeByPosition(pos)
}

// NodeAt returns the innermost node at a position
func (pr *ParseResult) NodeAt(pos ast.Position) ast.Node {
	if pr.MetadataVisitor == nil {
		return nil
	}
	return pr.MetadataVisitor.FindInnermost(pos)
}

// GetDebugInfo returns debugging information about the parse result
func (pr *ParseResult) GetDebugInfo() string {
	if pr.MetadataVisitor == nil {
		return "No metadata available"
	}
	return pr.MetadataVisitor.PrintDebugInfo()
}
