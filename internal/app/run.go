package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/defect"
	"github.com/specialistvlad/scopegraph/internal/graph"
	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/validator"
)

// DefectsError is returned by Run when the compiled graph has defects. The
// rendering has already been written to the output.
type DefectsError struct {
	Count int
	Err   error
}

func (e *DefectsError) Error() string {
	return fmt.Sprintf("compilation found %d defect(s)", e.Count)
}

func (e *DefectsError) Unwrap() error {
	return e.Err
}

// Run loads the configured declarations, compiles them and writes the
// rendering in the configured format.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	decls, err := a.load(ctx)
	if err != nil {
		return err
	}

	g, err := validator.Compile(ctx, decls, validator.Options{Workers: a.config.Workers})
	if err != nil {
		return fmt.Errorf("failed to compile declarations: %w", err)
	}
	a.logger.Info("Compilation finished.",
		"scope_count", len(g.Scopes),
		"node_count", len(g.Nodes()),
		"defect_count", len(g.Defects),
	)

	var out string
	switch a.config.Format {
	case FormatDefects:
		out = defect.Render(g.Defects)
	default:
		out = graph.Render(g)
	}
	if _, err := fmt.Fprint(a.outW, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if g.Failed() {
		return &DefectsError{Count: len(g.Defects), Err: g.Err()}
	}
	return nil
}

// load runs every loader over the configured paths. Each loader only picks
// up files with its own extensions, so their results are simply merged in
// loader order.
func (a *App) load(ctx context.Context) (*ir.Declarations, error) {
	decls := &ir.Declarations{}
	for _, l := range a.loaders {
		d, err := l.Load(ctx, a.config.DeclPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load declarations: %w", err)
		}
		decls.Merge(d)
	}
	a.logger.Debug("Declarations loaded.", "scopes", len(decls.Scopes), "objects", len(decls.Objects))
	return decls, nil
}
