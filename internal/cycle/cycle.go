// Package cycle detects dependency cycles among a scope's own producers and
// scope cycles formed by child accessors that logically need their parent.
package cycle

import (
	"github.com/specialistvlad/scopegraph/internal/dag"
	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/resolver"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

// DependencyCycle is a cycle among producers of one scope, listed from the
// producer the search re-entered.
type DependencyCycle struct {
	Scope *scopetree.Scope
	Path  []*scopetree.Producer
}

// ScopeCycle is a cycle of scopes through child accessors, listed from the
// scope that is re-entered.
type ScopeCycle struct {
	Path []*scopetree.Scope
	// Carried are the dependencies that flow across the cycle's logical
	// edges, in path order.
	Carried []ir.Dependency
	// Demands pair every carried dependency with the child scope of the
	// edge it crosses.
	Demands []Demand
}

// Demand is a dependency a scope expects from whoever creates it.
type Demand struct {
	Scope      *scopetree.Scope
	Dependency ir.Dependency
}

// ProducerGraph returns the local producer graph of s: an edge p -> q when
// one of p's requirements binds to q within s.
func ProducerGraph(s *scopetree.Scope) *dag.Graph[*scopetree.Producer] {
	g := dag.New[*scopetree.Producer]()
	for _, p := range s.Producers {
		g.AddNode(p)
	}
	for _, p := range s.Producers {
		for _, r := range p.Requires {
			if cands := s.Lookup(r.Key()); len(cands) > 0 {
				// Both nodes exist, so AddEdge cannot fail.
				_ = g.AddEdge(p, cands[0])
			}
		}
	}
	return g
}

// DependencyCycles returns every distinct producer cycle in s, in
// declaration order.
func DependencyCycles(s *scopetree.Scope) []DependencyCycle {
	var out []DependencyCycle
	for _, path := range ProducerGraph(s).Cycles() {
		out = append(out, DependencyCycle{Scope: s, Path: path})
	}
	return out
}

// ScopeCycles returns the accessor cycles of the tree that contain at least
// one logical edge. Scopes are traversed in the tree's pre-order, so a
// cycle's path starts at the scope the unfolding re-entered.
func ScopeCycles(tree *scopetree.Tree, res resolver.Residuals) []ScopeCycle {
	g := dag.New[*scopetree.Scope]()
	for _, n := range tree.Nodes {
		g.AddNode(n.Scope)
	}
	for _, s := range tree.Scopes {
		g.AddNode(s)
	}
	for _, s := range g.Nodes() {
		for _, e := range s.Children {
			_ = g.AddEdge(s, e.Child)
		}
	}

	var out []ScopeCycle
	for _, path := range g.Cycles() {
		var carried []ir.Dependency
		var demands []Demand
		seen := make(map[ir.Key]bool)
		for i, from := range path {
			to := path[(i+1)%len(path)]
			for _, e := range from.Children {
				if e.Child != to {
					continue
				}
				for _, d := range res.Carried(e) {
					demands = append(demands, Demand{Scope: to, Dependency: d})
					if k := d.Key(); !seen[k] {
						seen[k] = true
						carried = append(carried, d)
					}
				}
			}
		}
		if len(carried) > 0 {
			out = append(out, ScopeCycle{Path: path, Carried: carried, Demands: demands})
		}
	}
	return out
}
