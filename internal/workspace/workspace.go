// Package workspace loads a tree of MWE2 modules, indexes them by canonical
// name and links them against each other and an optional type catalog.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"mwe2/internal/ast"
	"mwe2/internal/config"
	"mwe2/internal/errors"
	"mwe2/internal/parser"
	"mwe2/internal/types"
)

// Extension is the file extension of MWE2 modules.
const Extension = ".mwe2"

var log = commonlog.GetLogger("mwe2.workspace")

// File is one parsed module of the workspace.
type File struct {
	Path   string
	Result *parser.ParseResult

	// Errors are the workspace-level diagnostics of this file: duplicate
	// module names and module cycles.
	Errors []errors.CompilerError
}

// Module returns the parsed module.
func (f *File) Module() *ast.Module {
	return f.Result.Module
}

// Name returns the canonical module name, empty when it is missing.
func (f *File) Name() string {
	return f.Result.Module.CanonicalName.Name()
}

// Workspace is a set of parsed modules. It is safe for concurrent reads
// once loaded.
type Workspace struct {
	cfg     *config.Config
	types   types.Resolver
	files   []*File
	modules map[string]*File
}

// Load walks roots (the configured search paths when none are given) for
// *.mwe2 files and parses them concurrently. The configured catalog, if
// any, is loaded as well. Syntax problems are diagnostics, not errors; an
// error means a file or the catalog could not be read, or ctx was done.
func Load(ctx context.Context, cfg *config.Config, roots ...string) (*Workspace, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(roots) == 0 {
		roots = cfg.SearchPaths
	}

	resolver, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	paths, err := collect(roots)
	if err != nil {
		return nil, err
	}
	log.Infof("loading %d modules from %s", len(paths), strings.Join(roots, ", "))

	sources := make([]string, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read module: %w", err)
		}
		sources[i] = string(data)
	}
	return build(ctx, cfg, resolver, paths, sources)
}

// FromSources builds a workspace from in-memory sources keyed by path.
func FromSources(ctx context.Context, cfg *config.Config, resolver types.Resolver, sources map[string]string) (*Workspace, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	paths := make([]string, 0, len(sources))
	for path := range sources {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	texts := make([]string, len(paths))
	for i, path := range paths {
		texts[i] = sources[path]
	}
	return build(ctx, cfg, resolver, paths, texts)
}

func loadCatalog(cfg *config.Config) (types.Resolver, error) {
	if cfg.Catalog == "" {
		return nil, nil
	}
	catalog, err := types.LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	log.Debugf("catalog %s: %d types", cfg.Catalog, catalog.Len())
	return types.NewCache(catalog), nil
}

// collect returns the sorted module paths below roots. A root may also be a
// single file.
func collect(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read search path: %w", err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !d.IsDir() && filepath.Ext(path) == Extension {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func build(ctx context.Context, cfg *config.Config, resolver types.Resolver, paths, sources []string) (*Workspace, error) {
	files := make([]*File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Parallelism))
	for i := range paths {
		g.Go(func() error {
			result, err := parser.Parse(ctx, paths[i], sources[i], parser.Options{MaxLookahead: cfg.MaxLookahead})
			if err != nil {
				return err
			}
			log.Debugf("parsed %s: %d diagnostics", paths[i], len(result.Diagnostics()))
			files[i] = &File{Path: paths[i], Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	w := &Workspace{
		cfg:     cfg,
		types:   resolver,
		files:   files,
		modules: make(map[string]*File),
	}
	w.index()
	w.detectCycles()
	return w, nil
}

// index registers every named module. The first file in path order wins a
// duplicate name; every later one gets a diagnostic.
func (w *Workspace) index() {
	for _, f := range w.files {
		name := f.Name()
		if name == "" {
			continue
		}
		if first, ok := w.modules[name]; ok {
			f.Errors = append(f.Errors, errors.DuplicateModule(name, f.Module().CanonicalName.Pos, first.Path))
			continue
		}
		w.modules[name] = f
	}
}

// Types returns the type resolver the workspace links against, or nil.
func (w *Workspace) Types() types.Resolver {
	return w.types
}

// Files returns the files in path order.
func (w *Workspace) Files() []*File {
	return w.files
}

// File returns the file at path.
func (w *Workspace) File(path string) (*File, bool) {
	path = filepath.Clean(path)
	for _, f := range w.files {
		if filepath.Clean(f.Path) == path {
			return f, true
		}
	}
	return nil, false
}

// ResolveModule returns the module with the canonical name.
func (w *Workspace) ResolveModule(name string) (*ast.Module, bool) {
	f, ok := w.modules[name]
	if !ok {
		return nil, false
	}
	return f.Module(), true
}

// ModuleNames returns the canonical names of all indexed modules, sorted.
func (w *Workspace) ModuleNames() []string {
	names := make([]string, 0, len(w.modules))
	for name := range w.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
