// Package duplicate groups producers that compete for the same dependency.
package duplicate

import (
	"slices"
	"strings"

	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/resolver"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

// Group is a set of two or more distinct sources visible for one dependency.
// Candidates are in search order: the last one is the offender, the rest
// are the sources it collides with.
type Group struct {
	Scope      *scopetree.Scope
	Dependency ir.Dependency
	Candidates []resolver.Source
	// Static is set for collisions among the scope's own producers.
	Static bool
}

// Offending returns the candidate found last.
func (g Group) Offending() resolver.Source {
	return g.Candidates[len(g.Candidates)-1]
}

// Existing returns the candidates found before the offender.
func (g Group) Existing() []resolver.Source {
	return g.Candidates[:len(g.Candidates)-1]
}

// Static returns the duplicates among a scope's own producers, independent
// of whether anything needs them. Spread-synthesised producers shadowed by
// a hand-declared one do not count.
func Static(s *scopetree.Scope) []Group {
	var out []Group
	for _, k := range s.Keys() {
		cands := s.Lookup(k)
		if len(cands) < 2 {
			continue
		}
		g := Group{Scope: s, Dependency: cands[0].Provides, Static: true}
		for _, p := range cands {
			g.Candidates = append(g.Candidates, resolver.Source{Kind: resolver.ProducerSource, Producer: p})
		}
		out = append(out, g)
	}
	return out
}

// FromResolution returns the group for an ambiguous resolution.
func FromResolution(r resolver.Resolution) (Group, bool) {
	if !r.Ambiguous() {
		return Group{}, false
	}
	return Group{Scope: r.Node.Scope, Dependency: r.Need.Dependency, Candidates: r.Candidates}, true
}

// Collect merges groups, keeping the first of any groups that name the same
// set of sources regardless of order. The result pairs sa with sb exactly
// once whichever of them was seen first.
func Collect(groups ...[]Group) []Group {
	seen := make(map[string]bool)
	var out []Group
	for _, gs := range groups {
		for _, g := range gs {
			key := setKey(g)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, g)
		}
	}
	return out
}

func setKey(g Group) string {
	ids := make([]string, 0, len(g.Candidates))
	for _, c := range g.Candidates {
		ids = append(ids, Identity(c))
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	return string(g.Dependency.Key()) + "|" + strings.Join(ids, ",")
}

// Identity names a source independently of the site it was found from.
func Identity(s resolver.Source) string {
	switch s.Kind {
	case resolver.ProducerSource:
		return s.Producer.Scope.String() + "#" + s.Producer.Origin
	case resolver.ParamSource:
		parent := ""
		if s.Node != nil && s.Node.Via != nil {
			parent = s.Node.Via.Parent.Type.String() + "." + s.Node.Via.Name
		}
		return parent + "(" + s.Param.Name + ")"
	case resolver.ScopeSource:
		return s.Node.Scope.Type.String()
	default:
		return ""
	}
}
