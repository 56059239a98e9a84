// Package spread expands spread producers into synthetic producers, one per
// public accessor of the spread value's type.
package spread

import (
	"context"
	"fmt"

	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

// Expand adds the synthetic producers of every spread producer to its owning
// scope. Each synthetic producer requires the producer it was spread from.
// Accessors that are themselves marked spread are expanded recursively; a
// type already being expanded on the current chain is not expanded again.
//
// Collisions with hand-declared producers are left in place; Scope.Lookup
// applies the precedence and duplicate detection reports the rest.
func Expand(ctx context.Context, tree *scopetree.Tree, decls *ir.Declarations) error {
	logger := ctxlog.FromContext(ctx)
	total := 0

	for _, s := range tree.Scopes {
		// Only the declared producers are roots of expansion; synthetic
		// ones appended below are handled by the recursion.
		declared := len(s.Producers)
		for i := 0; i < declared; i++ {
			p := s.Producers[i]
			if !p.Spread {
				continue
			}
			visiting := map[string]bool{p.Provides.Type.String(): true}
			n, err := expandFrom(s, p, decls, visiting)
			if err != nil {
				return err
			}
			total += n
		}
	}

	logger.Debug("Expand: Spread expansion complete.", "synthetic_count", total)
	return nil
}

func expandFrom(s *scopetree.Scope, src *scopetree.Producer, decls *ir.Declarations, visiting map[string]bool) (int, error) {
	surface, ok := decls.FindSpreadable(src.Provides.Type)
	if !ok {
		return 0, fmt.Errorf("%w: %s spreads %s which has no declared accessor surface",
			ir.ErrInvalidIR, src.Name, src.Provides.Type)
	}

	count := 0
	for _, acc := range surface.Accessors {
		syn := &scopetree.Producer{
			Origin:    src.Origin + "." + acc.Name,
			Name:      src.Name + "." + acc.Name,
			Provides:  acc.Provides,
			Requires:  []ir.Dependency{src.Provides},
			Cacheable: src.Cacheable,
			Exposed:   src.Exposed,
			Spread:    acc.Spread,
			Synthetic: true,
			SpreadOf:  src,
		}
		if acc.Cacheable != nil {
			syn.Cacheable = *acc.Cacheable
		}
		if acc.Exposed != nil {
			syn.Exposed = *acc.Exposed
		}
		s.Add(syn)
		count++

		if !acc.Spread {
			continue
		}
		t := acc.Provides.Type.String()
		if visiting[t] {
			continue
		}
		visiting[t] = true
		n, err := expandFrom(s, syn, decls, visiting)
		delete(visiting, t)
		if err != nil {
			return count, err
		}
		count += n
	}
	return count, nil
}
