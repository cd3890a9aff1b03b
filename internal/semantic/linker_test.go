package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwe2/internal/ast"
	"mwe2/internal/errors"
	"mwe2/internal/parser"
	"mwe2/internal/types"
)

const testCatalog = `
type "org.example.Component" {
  abstract = true

  property "name" {
    type = builtin.string
  }
}

type "org.example.Generator" {
  super = "org.example.Component"

  property "message" {
    type = builtin.string
  }

  property "enabled" {
    type = builtin.boolean
  }

  property "bean" {
    type  = "org.example.Bean"
    multi = true
  }

  property "output" {
    type = "org.example.Output"
  }
}

type "org.example.Bean" {
  property "id" {
    type = builtin.string
  }
}

type "org.example.Output" {
  property "path" {
    type = builtin.string
  }
}
`

// mapModules is a ModuleResolver over parsed sources.
type mapModules map[string]*ast.Module

func (m mapModules) ResolveModule(name string) (*ast.Module, bool) {
	mod, ok := m[name]
	return mod, ok
}

func (m mapModules) ModuleNames() []string {
	var names []string
	for name := range m {
		names = append(names, name)
	}
	return names
}

func parseModule(t *testing.T, source string) *ast.Module {
	t.Helper()
	module, parseErrors, scanErrors := parser.ParseSource("test.mwe2", source)
	require.Empty(t, parseErrors, "parse errors")
	require.Empty(t, scanErrors, "scan errors")
	return module
}

func catalog(t *testing.T) types.Resolver {
	t.Helper()
	c, err := types.ParseCatalog("types.hcl", []byte(testCatalog))
	require.NoError(t, err)
	return c
}

func codes(errs []errors.CompilerError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestLinkBindings(t *testing.T) {
	module := parseModule(t, `module m
var greeting = "hello"
var message = "${greeting} world"
Root {
  text = message
  child = Child : named { }
  again = named
  quoted = '${greeting}'
}`)
	result := Link(module, Options{})
	assert.Empty(t, result.Errors)

	root := module.Root
	text := root.Assignments[0].Value.(*ast.Reference)
	require.Contains(t, result.Bindings, ast.Node(text))
	assert.Equal(t, SymbolProperty, result.Bindings[text].Kind)
	assert.Same(t, module.Properties[1], result.Definition(text))

	again := root.Assignments[2].Value.(*ast.Reference)
	assert.Same(t, root.Assignments[1].Value, result.Definition(again))
	assert.Equal(t, SymbolComponent, result.Bindings[again].Kind)

	greetingUses := result.Uses(module.Properties[0])
	assert.Len(t, greetingUses, 2, "used in a default and in a component")

	interpolated := module.Properties[1].Default.(*ast.StringLiteral).Value.Parts[0].(*ast.PropertyReference)
	assert.Equal(t, "greeting", result.Bindings[interpolated].Name)
}

func TestDuplicateDeclarations(t *testing.T) {
	module := parseModule(t, `module m
var x = 'a'
var x = 'b'
Root {
  a = Child : x { }
  b = Child : c { }
  d = Child : c { }
}`)
	result := Link(module, Options{})
	assert.Equal(t, []string{
		errors.ErrorDuplicateDeclaration,
		errors.ErrorDuplicateDeclaration,
		errors.ErrorDuplicateDeclaration,
	}, codes(result.Errors))
}

func TestUnresolvedReference(t *testing.T) {
	module := parseModule(t, `module m
var greeting = 'x'
Root { a = greting }`)
	result := Link(module, Options{})

	require.Len(t, result.Errors, 1)
	err := result.Errors[0]
	assert.Equal(t, errors.ErrorUnresolvedReference, err.Code)
	require.NotEmpty(t, err.Suggestions)
	assert.Contains(t, err.Suggestions[0].Message, "greeting")
	assert.Equal(t, 3, err.Position.Line)
}

func TestUnresolvedPropertyReference(t *testing.T) {
	module := parseModule(t, `module m
var name = 'x'
Root {
  a = '${nmae}'
  b = Child : comp { }
  c = '${comp}'
}`)
	result := Link(module, Options{})

	assert.Equal(t, []string{errors.ErrorUnresolvedProperty, errors.ErrorUnresolvedProperty}, codes(result.Errors))
	assert.Contains(t, result.Errors[0].Suggestions[0].Message, "name")
}

func TestForwardReferences(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"earlier property", "module m\nvar a = 'x'\nvar b = '${a}'\nRoot {}", nil},
		{"later property", "module m\nvar a = b\nvar b = 'x'\nRoot {}", []string{errors.ErrorForwardReference}},
		{"self reference", "module m\nvar a = '${a}'\nRoot {}", []string{errors.ErrorForwardReference}},
		{"component in default", "module m\nvar a = c\nRoot { x = Child : c {} }", []string{errors.ErrorForwardReference}},
		{"component sees any property", "module m\nvar a = 'x'\nRoot { x = a }", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Link(parseModule(t, tt.source), Options{})
			assert.Equal(t, tt.want, codes(result.Errors))
		})
	}
}

func TestTypeResolution(t *testing.T) {
	module := parseModule(t, `module m
import org.example.*
var String label = 'x'
Generator {
  message = label
  enabled = true
  bean = Bean { id = 'a' }
  bean = Bean { id = 'b' }
  output = { path = 'out' }
}`)
	result := Link(module, Options{Types: catalog(t)})
	assert.Empty(t, result.Errors)

	root := module.Root
	require.Contains(t, result.Types, ast.Node(root))
	assert.Equal(t, "org.example.Generator", result.Types[root].Name)
	assert.Equal(t, types.String, result.Types[module.Properties[0]].Name)

	bean := result.Features[root.Assignments[2]]
	require.NotNil(t, bean)
	assert.True(t, bean.Multi)

	output := root.Assignments[4].Value.(*ast.Component)
	require.Contains(t, result.Types, ast.Node(output), "untyped component takes the feature type")
	assert.Equal(t, "org.example.Output", result.Types[output].Name)
	assert.NotNil(t, result.Features[output.Assignments[0]])
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"unknown root type", "module m\nGenrator {}", []string{errors.ErrorUnknownType}},
		{"not imported", "module m\nGenerator {}", []string{errors.ErrorUnknownType}},
		{"unknown property type", "module m\nvar Strng x\norg.example.Bean {}", []string{errors.ErrorUnknownType}},
		{"abstract", "module m\norg.example.Component {}", []string{errors.ErrorAbstractType}},
		{"unknown feature", "module m\nimport org.example.Bean\nBean { idd = 'x' }", []string{errors.ErrorUnknownFeature}},
		{"inherited feature", "module m\nimport org.example.Generator\nGenerator { name = 'x' }", nil},
		{"repeated single feature", "module m\nimport org.example.Bean\nBean {\n  id = 'a'\n  id = 'b'\n}", []string{errors.WarningRepeatedAssignment}},
		{"nested unknown feature", "module m\nimport org.example.*\nGenerator { output = { paht = 'x' } }", []string{errors.ErrorUnknownFeature}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Link(parseModule(t, tt.source), Options{Types: catalog(t)})
			assert.Equal(t, tt.want, codes(result.Errors))
		})
	}
}

func TestUnknownFeatureSuggestion(t *testing.T) {
	module := parseModule(t, "module m\nimport org.example.Bean\nBean { idd = 'x' }")
	result := Link(module, Options{Types: catalog(t)})

	require.Len(t, result.Errors, 1)
	err := result.Errors[0]
	assert.Contains(t, err.Message, "Bean")
	require.NotEmpty(t, err.Suggestions)
	assert.Contains(t, err.Suggestions[0].Message, "'id'")
	assert.Contains(t, err.Notes, "available properties: id")
}

func TestRepeatedAssignmentIsWarning(t *testing.T) {
	module := parseModule(t, "module m\nimport org.example.Bean\nBean {\n  id = 'a'\n  id = 'b'\n}")
	result := Link(module, Options{Types: catalog(t)})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.Warning, result.Errors[0].Level)
	assert.Equal(t, 5, result.Errors[0].Position.Line)
	assert.False(t, result.HasErrors())
}

func TestWithoutResolversNothingIsChecked(t *testing.T) {
	module := parseModule(t, "module m\nvar Nope x\nUnknown {\n  a = 'x'\n  a = 'y'\n  b = @other { }\n}")
	result := Link(module, Options{})
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Types)
	assert.Empty(t, result.Modules)
}

func TestModuleReferences(t *testing.T) {
	base := parseModule(t, `module lib.Base
import org.example.*
var String message
var enabled = false
Generator {
  message = message
  enabled = enabled
}`)
	modules := mapModules{"lib.Base": base}

	module := parseModule(t, `module app
@lib.Base {
  message = 'hi'
}`)
	result := Link(module, Options{Types: catalog(t), Modules: modules})
	assert.Empty(t, result.Errors)
	assert.Same(t, base, result.Modules[module.Root])
	require.Contains(t, result.Types, ast.Node(module.Root))
	assert.Equal(t, "org.example.Generator", result.Types[module.Root].Name)
	assert.Equal(t, "lib.Base", result.Features[module.Root.Assignments[0]].Owner)

	module = parseModule(t, "module app\n@lib.Bsae { }")
	result = Link(module, Options{Modules: modules})
	require.Equal(t, []string{errors.ErrorUnresolvedModule}, codes(result.Errors))
	assert.Contains(t, result.Errors[0].Suggestions[0].Message, "lib.Base")

	module = parseModule(t, "module app\n@lib.Base { mesage = 'x' }")
	result = Link(module, Options{Modules: modules})
	require.Equal(t, []string{errors.ErrorUnknownFeature}, codes(result.Errors))
	assert.Contains(t, result.Errors[0].Notes, "available properties: message, enabled")
}

func TestReportUnused(t *testing.T) {
	module := parseModule(t, "module m\nvar used = 'a'\nvar unused = 'b'\nRoot { x = used }")

	assert.Empty(t, Link(module, Options{}).Errors, "off by default")

	result := Link(module, Options{ReportUnused: true})
	require.Equal(t, []string{errors.WarningUnusedProperty}, codes(result.Errors))
	assert.Contains(t, result.Errors[0].Message, "unused")
}

func TestLinkerIsReusable(t *testing.T) {
	linker := NewLinker(Options{})
	first := linker.Link(parseModule(t, "module m\nRoot { a = missing }"))
	second := linker.Link(parseModule(t, "module m\nvar missing = 'x'\nRoot { a = missing }"))

	assert.Len(t, first.Errors, 1)
	assert.Empty(t, second.Errors)
}

func TestLinkPartialModule(t *testing.T) {
	module, _, _ := parser.ParseSource("broken.mwe2", "module {\n  a = = b\n  c = '${}'\n  d = ref\n")
	require.NotNil(t, module)

	result := Link(module, Options{Types: catalog(t)})
	assert.Contains(t, codes(result.Errors), errors.ErrorUnresolvedReference)
}
