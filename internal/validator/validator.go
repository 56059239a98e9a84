package validator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/cycle"
	"github.com/specialistvlad/scopegraph/internal/duplicate"
	"github.com/specialistvlad/scopegraph/internal/graph"
	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/resolver"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
	"github.com/specialistvlad/scopegraph/internal/spread"
)

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// Options tunes a compilation. Workers never changes the result.
type Options struct {
	Workers int
	// MaxSites bounds tree unfolding; non-positive means
	// scopetree.DefaultMaxSites.
	MaxSites int
}

// Compile validates decls and resolves the whole graph. A returned error
// means the declarations broke the IR contract (see ir.ErrInvalidIR), they
// unfold past opts.MaxSites (see scopetree.ErrTooManySites) or ctx was
// cancelled; structural defects are reported on the graph instead.
func Compile(ctx context.Context, decls *ir.Declarations, opts Options) (*graph.ResolvedGraph, error) {
	logger := ctxlog.FromContext(ctx)

	if err := ir.Validate(decls); err != nil {
		return nil, err
	}
	tree, err := scopetree.AssembleLimited(ctx, decls, opts.MaxSites)
	if err != nil {
		return nil, err
	}
	if err := spread.Expand(ctx, tree, decls); err != nil {
		return nil, err
	}
	residuals := resolver.Residual(tree)

	local, err := analyse(ctx, tree, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Compile: Resolution complete.", "node_count", len(tree.Nodes))

	scopeCycles := cycle.ScopeCycles(tree, residuals)
	logger.Debug("Compile: Scope cycle detection complete.", "cycle_count", len(scopeCycles))

	c := newCollector(tree)
	c.unprocessed()
	c.scopeCycles(scopeCycles)
	for _, cycles := range local.cycles {
		c.dependencyCycles(cycles)
	}
	c.duplicates(local)
	for _, rs := range local.resolutions {
		c.resolutions(rs)
	}
	defects := c.finish()
	logger.Debug("Compile: Defect aggregation complete.", "defect_count", len(defects))

	return graph.Build(tree, local.resolutions, defects), nil
}

// analysis holds the per-site and per-scope results, indexed by pre-order
// node index and scope declaration index respectively.
type analysis struct {
	resolutions [][]resolver.Resolution
	cycles      [][]cycle.DependencyCycle
	static      [][]duplicate.Group
}

func analyse(ctx context.Context, tree *scopetree.Tree, opts Options) (*analysis, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	out := &analysis{
		resolutions: make([][]resolver.Resolution, len(tree.Nodes)),
		cycles:      make([][]cycle.DependencyCycle, len(tree.Scopes)),
		static:      make([][]duplicate.Group, len(tree.Scopes)),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, n := range tree.Nodes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out.resolutions[i] = resolver.ResolveNode(n)
			return nil
		})
	}
	for i, s := range tree.Scopes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out.cycles[i] = cycle.DependencyCycles(s)
			out.static[i] = duplicate.Static(s)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("compilation interrupted: %w", err)
	}
	return out, nil
}
