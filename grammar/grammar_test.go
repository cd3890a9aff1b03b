package grammar_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwe2/grammar"
	"mwe2/internal/ast"
	"mwe2/internal/parser"
)

// handParse prints the module the hand-written parser builds for source.
func handParse(t *testing.T, path, source string) string {
	t.Helper()
	result := parser.ParseSourceWithMetadata(path, source)
	require.False(t, result.HasErrors(), "diagnostics: %v", result.Diagnostics())
	return result.Module.String()
}

func TestGenerateWorkflow(t *testing.T) {
	file, err := grammar.ParseFile(`../examples/Generate.mwe2`)
	require.NoError(t, err)

	module := grammar.ToAST(file)
	assert.Equal(t, "org.example.Generate", module.CanonicalName.Name())

	require.Len(t, module.Imports, 3)
	assert.False(t, module.Imports[0].Wildcard)
	assert.Equal(t, "org.eclipse.emf.mwe.utils.*", module.Imports[1].ImportedNamespace())

	require.Len(t, module.Properties, 3)
	assert.Nil(t, module.Properties[0].Type)
	assert.Equal(t, "String", module.Properties[1].Type.Name())
	assert.Equal(t, "runtimeProject", module.Properties[1].Name.Name())
	assert.IsType(t, &ast.BooleanLiteral{}, module.Properties[2].Default)

	root := module.Root
	require.NotNil(t, root)
	assert.True(t, root.Root)
	assert.Equal(t, "Workflow", root.Type.Name())
	require.Len(t, root.Assignments, 3)

	setup := root.Assignments[0].Value.(*ast.Component)
	assert.Equal(t, "setup", setup.Name.Name())

	clean := root.Assignments[1].Value.(*ast.Component)
	assert.Nil(t, clean.Type)
	assert.Equal(t, "org.example.Clean", clean.Module.Name())

	generator := root.Assignments[2].Value.(*ast.Component)
	assert.True(t, generator.AutoInject)

	message := generator.Assignments[0].Value.(*ast.StringLiteral).Value
	assert.Equal(t, ast.SingleQuote, message.Begin)
	assert.Equal(t, `Hello from ${projectName}, it's "generated"`, message.Text())
	require.Len(t, message.Parts, 3)
	assert.Equal(t, "projectName", message.Parts[1].(*ast.PropertyReference).Property.Value)

	output := generator.Assignments[1].Value.(*ast.Component)
	assert.Nil(t, output.Type)
	assert.Len(t, output.Assignments, 2)
}

func TestMatchesHandWrittenParser(t *testing.T) {
	paths, err := filepath.Glob("../examples/*.mwe2")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := os.ReadFile(path)
			require.NoError(t, err)

			file, err := grammar.ParseString(path, string(source))
			require.NoError(t, err)
			assert.Equal(t, handParse(t, path, string(source)), file.String())
		})
	}
}

func TestSourcesMatchHandWrittenParser(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty root", "module m\nRoot {}"},
		{"untyped root", "module m { a = 'x' }"},
		{"escaped keywords", "module ^module.a\nvar ^var = 'x'\n^import { ^true = true }"},
		{"escapes", `module m R { a = 'it\'s' b = "say \"hi\"" c = 'back\\slash' }`},
		{"lone dollar and backslash", `module m R { a = 'cost: $5 \n' }`},
		{"comments", "module m // name\n/* block */ R { // body\n a = b }"},
		{"declared defaults", "module m\nvar a = 'x'\nvar T b = R2 { }\nvar c = false\nR { }"},
		{"nested", "module m\nR : root auto-inject { a = S { b = @lib.Other : other { } } c = root }"},
		{"interpolation only", "module m\nvar x = 'v'\nR { a = \"${x}\" }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := grammar.ParseString("test.mwe2", tt.source)
			require.NoError(t, err)
			assert.Equal(t, handParse(t, "test.mwe2", tt.source), file.String())
		})
	}
}

func TestIdentifierEscapesAreStripped(t *testing.T) {
	file, err := grammar.ParseString("test.mwe2", "module ^module\n^var { ^import = ^true }")
	require.NoError(t, err)

	module := grammar.ToAST(file)
	assert.Equal(t, "module", module.CanonicalName.Name())
	assert.Equal(t, "var", module.Root.Type.Name())
	assert.Equal(t, "import", module.Root.Assignments[0].Feature.Value)
	assert.Equal(t, "true", module.Root.Assignments[0].Value.(*ast.Reference).Referable.Value)
	assert.Equal(t, "module ^module\n\n^var {\n  ^import = ^true\n}\n", module.String())
}

func TestCommentMarkersInsideStrings(t *testing.T) {
	file, err := grammar.ParseString("test.mwe2", "module m\nR { url = 'http://example.org/*x*/' }")
	require.NoError(t, err)

	value := grammar.ToAST(file).Root.Assignments[0].Value.(*ast.StringLiteral)
	assert.Equal(t, "http://example.org/*x*/", value.Value.Text())
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"missing module", "Root {}"},
		{"missing root", "module m\nvar a = 'x'"},
		{"unterminated string", "module m\nR { a = 'x }"},
		{"empty interpolation", "module m\nR { a = '${}' }"},
		{"dotted reference", "module m\nR { a = b.c }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grammar.ParseString("test.mwe2", tt.source)
			assert.Error(t, err)
		})
	}
}

func TestReportError(t *testing.T) {
	color.NoColor = true

	source := "module m\nRoot {\n  a = = b\n}"
	_, err := grammar.ParseString("bad.mwe2", source)
	require.Error(t, err)

	var out bytes.Buffer
	grammar.ReportError(&out, source, err)
	assert.Contains(t, out.String(), "bad.mwe2 at line 3")
	assert.Contains(t, out.String(), "  a = = b\n")
	assert.Contains(t, out.String(), "^")
}

func TestEBNF(t *testing.T) {
	ebnf := grammar.EBNF()
	assert.Contains(t, ebnf, "File")
	assert.Contains(t, ebnf, "StringPart")
}
