package lsp

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"mwe2/internal/ast"
	"mwe2/internal/parser"
	"mwe2/internal/semantic"
	"mwe2/internal/types"
	"mwe2/internal/workspace"
)

var log = commonlog.GetLogger("mwe2.lsp")

// Options configures a Handler. All fields are optional.
type Options struct {
	// Types checks component types and features and feeds completion.
	Types types.Resolver
	// Workspace resolves '@module' references to modules that are not open.
	Workspace    *workspace.Workspace
	MaxLookahead int
	ReportUnused bool
}

// document is the state of one open file.
type document struct {
	uri   protocol.DocumentUri
	path  string
	text  string
	index *lineIndex
	parse *parser.ParseResult
	link  *semantic.Result
}

// Handler implements the LSP server handlers for MWE2 workflow files
type Handler struct {
	mu        sync.RWMutex
	documents map[string]*document
	opts      Options
	types     types.Resolver
}

// NewHandler creates and returns a new Handler instance
func NewHandler(opts Options) *Handler {
	return &Handler{
		documents: make(map[string]*document),
		opts:      opts,
		types:     opts.Types,
	}
}

// ProtocolHandler wires the handler methods into a glsp protocol handler.
func (h *Handler) ProtocolHandler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentDefinition:         h.TextDocumentDefinition,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"{", "@", "."},
				ResolveProvider:   ptrBool(false),
			},
			DefinitionProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

// SetTrace accepts the client's trace setting; logging is configured at startup.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	doc, err := h.update(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return err
	}
	h.publish(ctx, doc)
	return nil
}

// TextDocumentDidChange handles file change notifications; the client sends
// the full text.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	text, ok := lastFullText(params.ContentChanges)
	if !ok {
		return fmt.Errorf("no full content change for %s", params.TextDocument.URI)
	}
	doc, err := h.update(params.TextDocument.URI, text)
	if err != nil {
		return err
	}
	h.publish(ctx, doc)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.documents, path)
	h.mu.Unlock()

	notify(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentCompletion proposes keywords, names, types and features
// depending on the position
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	items := h.completion(doc, doc.index.offset(params.Position))
	h.mu.RUnlock()

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentDefinition jumps from a reference to the property or
// component it names
func (h *Handler) TextDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	node := doc.parse.NodeAt(ast.Position{Offset: doc.index.offset(params.Position)})
	if node == nil {
		return nil, nil
	}
	if node.NodeType() == ast.IDENT {
		node = doc.parse.MetadataVisitor.Parent(node)
	}
	if node == nil {
		return nil, nil
	}

	target := doc.link.Definition(node)
	if target == nil {
		return nil, nil
	}
	var start, end ast.Position
	switch t := target.(type) {
	case *ast.DeclaredProperty:
		start, end = t.Name.Pos, t.Name.EndPos
	case *ast.Component:
		start, end = t.Name.Pos, t.Name.EndPos
	default:
		return nil, nil
	}
	return protocol.Location{URI: doc.uri, Range: doc.index.rangeOf(start.Offset, end.Offset)}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc)),
	}, nil
}

// document returns the open document, reading it from disk when the client
// asks about a file it never opened
func (h *Handler) document(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	doc, ok := h.documents[path]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	doc, err = h.update(uri, string(content))
	if err != nil {
		return nil, err
	}
	h.publish(ctx, doc)
	return doc, nil
}

// update parses and links text as the new content of uri
func (h *Handler) update(uri protocol.DocumentUri, text string) (*document, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}

	result, err := parser.Parse(context.Background(), path, text, parser.Options{MaxLookahead: h.opts.MaxLookahead})
	if err != nil {
		return nil, err
	}
	doc := &document{
		uri:   uri,
		path:  path,
		text:  text,
		index: newLineIndex(text),
		parse: result,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.documents[path] = doc
	doc.link = semantic.Link(result.Module, semantic.Options{
		Types:        h.types,
		Modules:      h.modules(),
		ReportUnused: h.opts.ReportUnused,
	})
	return doc, nil
}

func (h *Handler) publish(ctx *glsp.Context, doc *document) {
	diags := doc.parse.Diagnostics()
	diags = append(diags, doc.link.Errors...)
	notify(ctx, doc.uri, ConvertDiagnostics(doc.text, diags))
}

func notify(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// lastFullText returns the text of the last whole-document change.
func lastFullText(changes []any) (string, bool) {
	for i := len(changes) - 1; i >= 0; i-- {
		switch c := changes[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return c.Text, true
		case *protocol.TextDocumentContentChangeEventWhole:
			return c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				return c.Text, true
			}
		case *protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				return c.Text, true
			}
		}
	}
	return "", false
}

// openModules resolves '@module' references to open documents first and
// falls back to the loaded workspace. The caller holds h.mu.
type openModules struct {
	h *Handler
}

func (h *Handler) modules() openModules {
	return openModules{h: h}
}

func (m openModules) ResolveModule(name string) (*ast.Module, bool) {
	for _, doc := range m.h.documents {
		if doc.parse.Module.CanonicalName.Name() == name {
			return doc.parse.Module, true
		}
	}
	if m.h.opts.Workspace != nil {
		return m.h.opts.Workspace.ResolveModule(name)
	}
	return nil, false
}

func (m openModules) ModuleNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, doc := range m.h.documents {
		if name := doc.parse.Module.CanonicalName.Name(); name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if m.h.opts.Workspace != nil {
		for _, name := range m.h.opts.Workspace.ModuleNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove the leading slash of /C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
