package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/graph"
)

// ValidateRegistry performs a parity check between a compiled graph and the
// registered factories: every scope the graph can instantiate needs one.
// Extra factories are allowed.
func (r *Registry) ValidateRegistry(ctx context.Context, g *graph.ResolvedGraph) error {
	logger := ctxlog.FromContext(ctx)

	var errs []error
	for _, s := range g.Scopes {
		if _, err := r.Lookup(s.Type); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		logger.Debug("Registry validation failed.", "missing", len(errs))
		return fmt.Errorf("registry validation failed: %w", errors.Join(errs...))
	}
	logger.Debug("Registry validation passed.", "scopes", len(g.Scopes))
	return nil
}
