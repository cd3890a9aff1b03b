package parser

import (
	"context"

	"mwe2/internal/ast"
)

// ParseSource parses one module. It never fails on malformed input: the
// returned module may be partial and the diagnostics say why.
func ParseSource(path string, source string) (*ast.Module, []ParseError, []ScanError) {
	parser := NewParser(path, source)
	module := parser.ParseModule()

	return module, parser.errors, parser.scanErrors
}

// ParseSourceContext parses one module with metadata attached and stops at
// the next rule boundary when ctx is done. A cancelled parse returns the
// partial result together with ctx.Err().
func ParseSourceContext(ctx context.Context, path string, source string) (*ParseResult, error) {
	return Parse(ctx, path, source, Options{})
}

// Options tunes a parse. The zero value uses the defaults.
type Options struct {
	MaxLookahead int
}

// Parse is ParseSourceContext with explicit options.
func Parse(ctx context.Context, path string, source string, opts Options) (*ParseResult, error) {
	parser := NewParser(path, source).WithContext(ctx).WithMaxLookahead(opts.MaxLookahead)
	result := newParseResult(path, source, parser)
	if parser.Cancelled() {
		return result, ctx.Err()
	}
	return result, nil
}
