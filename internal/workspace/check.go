package workspace

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mwe2/internal/errors"
	"mwe2/internal/semantic"
)

// FileDiagnostics are all diagnostics of one file, ordered by position.
type FileDiagnostics struct {
	Path        string
	Source      string
	Link        *semantic.Result
	Diagnostics []errors.CompilerError
}

// HasErrors reports whether any diagnostic of the file is an error.
func (d FileDiagnostics) HasErrors() bool {
	return errors.HasErrors(d.Diagnostics)
}

// Check links every module against the workspace and the type catalog and
// returns the parse, workspace and link diagnostics per file in path order.
func (w *Workspace) Check(ctx context.Context) ([]FileDiagnostics, error) {
	out := make([]FileDiagnostics, len(w.files))
	opts := semantic.Options{
		Types:        w.types,
		Modules:      w,
		ReportUnused: w.cfg.ReportUnused,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, w.cfg.Parallelism))
	for i, f := range w.files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = w.checkFile(f, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	errorCount, warningCount := 0, 0
	for _, d := range out {
		e, wn := errors.Count(d.Diagnostics)
		errorCount += e
		warningCount += wn
	}
	log.Infof("checked %d modules: %d errors, %d warnings", len(out), errorCount, warningCount)
	return out, nil
}

func (w *Workspace) checkFile(f *File, opts semantic.Options) FileDiagnostics {
	link := semantic.Link(f.Module(), opts)

	diags := f.Result.Diagnostics()
	diags = append(diags, f.Errors...)
	diags = append(diags, link.Errors...)
	errors.Sort(diags)

	return FileDiagnostics{
		Path:        f.Path,
		Source:      f.Result.Source,
		Link:        link,
		Diagnostics: diags,
	}
}
