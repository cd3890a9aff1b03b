package lsp_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"mwe2/internal/errors"
	"mwe2/internal/lsp"
	"mwe2/internal/types"
)

const testCatalog = `
type "org.example.Generator" {
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
}

type "org.example.Bean" {
  property "id" {
    type = builtin.string
  }
}
`

// recorder captures the notifications the handler sends.
type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok && method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, p)
			}
		},
	}
}

func (r *recorder) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, r.published, "no diagnostics published")
	return r.published[len(r.published)-1]
}

func newHandler(t *testing.T, withCatalog bool) *lsp.Handler {
	t.Helper()
	opts := lsp.Options{}
	if withCatalog {
		catalog, err := types.ParseCatalog("types.hcl", []byte(testCatalog))
		require.NoError(t, err)
		opts.Types = types.NewCache(catalog)
	}
	return lsp.NewHandler(opts)
}

func open(t *testing.T, h *lsp.Handler, ctx *glsp.Context, uri, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "mwe2", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func complete(t *testing.T, h *lsp.Handler, uri string, line, char uint32) []string {
	t.Helper()
	result, err := h.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: char},
		},
	})
	require.NoError(t, err)
	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)

	var labels []string
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	sort.Strings(labels)
	return labels
}

const tokenSource = `module app
import org.example.*
var msg = 'hi ${who}'
Generator : gen {
  message = msg // note
  enabled = true
}`

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := newHandler(t, false)
	uri := "file:///work/app.mwe2"
	open(t, h, &glsp.Context{}, uri, tokenSource)

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 25)

	assertToken(t, &decoded[0], 1, 1, 6, "keyword", nil)
	assertToken(t, &decoded[1], 1, 8, 3, "namespace", []string{"declaration"})
	assertToken(t, &decoded[2], 2, 1, 6, "keyword", nil)
	assertToken(t, &decoded[3], 2, 8, 3, "namespace", nil)
	assertToken(t, &decoded[4], 2, 12, 7, "namespace", nil)
	assertToken(t, &decoded[5], 3, 1, 3, "keyword", nil)
	assertToken(t, &decoded[6], 3, 5, 3, "variable", []string{"declaration"})
	assertToken(t, &decoded[7], 3, 9, 1, "operator", nil)
	assertToken(t, &decoded[8], 3, 11, 1, "string", nil)
	assertToken(t, &decoded[9], 3, 12, 2, "string", nil)
	assertToken(t, &decoded[10], 3, 14, 1, "string", nil)
	assertToken(t, &decoded[11], 3, 15, 2, "string", nil)
	assertToken(t, &decoded[12], 3, 17, 3, "variable", nil)
	assertToken(t, &decoded[13], 3, 20, 1, "string", nil)
	assertToken(t, &decoded[14], 3, 21, 1, "string", nil)
	assertToken(t, &decoded[15], 4, 1, 9, "type", nil)
	assertToken(t, &decoded[16], 4, 11, 1, "operator", nil)
	assertToken(t, &decoded[17], 4, 13, 3, "variable", []string{"declaration", "readonly"})
	assertToken(t, &decoded[18], 5, 3, 7, "property", nil)
	assertToken(t, &decoded[19], 5, 11, 1, "operator", nil)
	assertToken(t, &decoded[20], 5, 13, 3, "variable", nil)
	assertToken(t, &decoded[21], 5, 17, 7, "comment", nil)
	assertToken(t, &decoded[22], 6, 3, 7, "property", nil)
	assertToken(t, &decoded[23], 6, 11, 1, "operator", nil)
	assertToken(t, &decoded[24], 6, 13, 4, "keyword", nil)
}

func TestMultiLineTokensAreSplit(t *testing.T) {
	h := newHandler(t, false)
	uri := "file:///work/multi.mwe2"
	open(t, h, &glsp.Context{}, uri, "module m\n/* a\nb */\nRoot {}")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)

	require.Len(t, decoded, 5)
	assertToken(t, &decoded[2], 2, 1, 4, "comment", nil)
	assertToken(t, &decoded[3], 3, 1, 4, "comment", nil)
	assertToken(t, &decoded[4], 4, 1, 4, "type", nil)
}

func TestDiagnosticsArePublished(t *testing.T) {
	h := newHandler(t, false)
	rec := &recorder{}
	uri := "file:///work/app.mwe2"
	open(t, h, rec.context(), uri, tokenSource)

	published := rec.last(t)
	assert.Equal(t, uri, published.URI)
	require.Len(t, published.Diagnostics, 1)

	diag := published.Diagnostics[0]
	assert.Equal(t, errors.ErrorUnresolvedProperty, diag.Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 16},
		End:   protocol.Position{Line: 2, Character: 19},
	}, diag.Range)

	err := h.TextDocumentDidChange(rec.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{
			Text: "module app\nvar who = 'w'\nRoot { a = '${who}' }",
		}},
	})
	require.NoError(t, err)
	assert.Empty(t, rec.last(t).Diagnostics)

	err = h.TextDocumentDidClose(rec.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, rec.last(t).Diagnostics)

	// closed and not on disk
	_, err = h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Error(t, err)
}

func TestWarningsHaveWarningSeverity(t *testing.T) {
	h := newHandler(t, false)
	rec := &recorder{}
	open(t, h, rec.context(), "file:///work/w.mwe2", `module m
Root { a = 'x\y' }`)

	published := rec.last(t)
	require.Len(t, published.Diagnostics, 1)
	assert.Equal(t, errors.WarningInvalidEscape, published.Diagnostics[0].Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *published.Diagnostics[0].Severity)
}

func TestCompletion(t *testing.T) {
	h := newHandler(t, true)
	uri := "file:///work/app.mwe2"
	open(t, h, &glsp.Context{}, uri, `module app
import org.example.*
var greeting = 'hi'
Generator {
  message = '${gr'
  bean = Bean : b1 {}

}`)

	t.Run("interpolation", func(t *testing.T) {
		assert.Equal(t, []string{"greeting"}, complete(t, h, uri, 4, 17))
	})

	t.Run("features of the enclosing component", func(t *testing.T) {
		assert.Equal(t, []string{"bean", "enabled", "message"}, complete(t, h, uri, 6, 0))
	})

	t.Run("features of a nested component", func(t *testing.T) {
		assert.Equal(t, []string{"id"}, complete(t, h, uri, 5, 20))
	})

	t.Run("plain string content", func(t *testing.T) {
		assert.Empty(t, complete(t, h, uri, 2, 17))
	})
}

func TestCompletionValues(t *testing.T) {
	h := newHandler(t, false)
	open(t, h, &glsp.Context{}, "file:///work/lib.mwe2", "module lib.Base\nRoot {}")

	uri := "file:///work/app.mwe2"
	open(t, h, &glsp.Context{}, uri, `module app
var greeting = 'hi'
Root {
  a = Child : named {}
  b = 
}`)

	assert.Equal(t, []string{"@lib.Base", "false", "greeting", "named", "true"}, complete(t, h, uri, 4, 6))
}

func TestCompletionTopLevel(t *testing.T) {
	h := newHandler(t, true)
	uri := "file:///work/empty.mwe2"
	open(t, h, &glsp.Context{}, uri, "")

	labels := complete(t, h, uri, 0, 0)
	assert.Contains(t, labels, "module")
	assert.Contains(t, labels, "import")
	assert.Contains(t, labels, "var")
	assert.Contains(t, labels, "org.example.Generator", "catalog types are offered fully qualified without imports")

	uri = "file:///work/named.mwe2"
	open(t, h, &glsp.Context{}, uri, "module named\nimport org.example.*\n")
	labels = complete(t, h, uri, 2, 0)
	assert.NotContains(t, labels, "module")
	assert.Contains(t, labels, "Generator")
}

func TestDefinition(t *testing.T) {
	h := newHandler(t, false)
	uri := "file:///work/app.mwe2"
	open(t, h, &glsp.Context{}, uri, `module app
var greeting = 'hi'
Root {
  a = Child : named {}
  b = named
  c = greeting
}`)

	definition := func(line, char uint32) any {
		result, err := h.TextDocumentDefinition(&glsp.Context{}, &protocol.DefinitionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: line, Character: char},
			},
		})
		require.NoError(t, err)
		return result
	}

	assert.Equal(t, protocol.Location{URI: uri, Range: protocol.Range{
		Start: protocol.Position{Line: 3, Character: 14},
		End:   protocol.Position{Line: 3, Character: 19},
	}}, definition(4, 7))

	assert.Equal(t, protocol.Location{URI: uri, Range: protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 1, Character: 12},
	}}, definition(5, 8))

	assert.Nil(t, definition(0, 2), "no definition on the module keyword")
}

func TestUTF16Positions(t *testing.T) {
	h := newHandler(t, false)
	rec := &recorder{}
	open(t, h, rec.context(), "file:///work/u.mwe2", "module m\nRoot { a = '😀' b = missing }")

	published := rec.last(t)
	require.Len(t, published.Diagnostics, 1)
	// the emoji takes two UTF-16 code units
	assert.Equal(t, protocol.UInteger(20), published.Diagnostics[0].Range.Start.Character)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	t.Helper()
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
