package resolver

import (
	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

// KeySet is an insertion-ordered set of dependencies keyed by ir.Key.
type KeySet struct {
	deps []ir.Dependency
	has  map[ir.Key]bool
}

func newKeySet() *KeySet {
	return &KeySet{has: make(map[ir.Key]bool)}
}

// Add inserts d and reports whether it was new.
func (s *KeySet) Add(d ir.Dependency) bool {
	k := d.Key()
	if s.has[k] {
		return false
	}
	s.has[k] = true
	s.deps = append(s.deps, d)
	return true
}

// Has reports membership.
func (s *KeySet) Has(k ir.Key) bool {
	return s != nil && s.has[k]
}

// Dependencies returns the members in insertion order.
func (s *KeySet) Dependencies() []ir.Dependency {
	if s == nil {
		return nil
	}
	return s.deps
}

// Len returns the number of members.
func (s *KeySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.deps)
}

// Residuals holds, per scope, the dependencies an instance of that scope
// needs from outside itself: its own unmet needs plus whatever its children
// pass upwards that their accessor parameters do not supply.
type Residuals map[*scopetree.Scope]*KeySet

// Residual computes Residuals as a fixed point over the scope graph, so
// accessor cycles converge instead of recursing.
func Residual(tree *scopetree.Tree) Residuals {
	out := make(Residuals, len(tree.Scopes))
	provides := make(map[*scopetree.Scope]map[ir.Key]bool, len(tree.Scopes))
	for _, s := range tree.Scopes {
		out[s] = newKeySet()
		p := map[ir.Key]bool{ir.NewDependency(s.Type).Key(): true}
		for _, prod := range s.Producers {
			p[prod.Provides.Key()] = true
		}
		provides[s] = p
		for _, n := range Needs(s) {
			if !p[n.Dependency.Key()] {
				out[s].Add(n.Dependency)
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, s := range tree.Scopes {
			for _, e := range s.Children {
				for _, d := range out.Carried(e) {
					if !provides[s][d.Key()] && out[s].Add(d) {
						changed = true
					}
				}
			}
		}
	}
	return out
}

// Carried returns the child's residual keys that cross edge e, i.e. those
// not supplied by the accessor's parameters.
func (r Residuals) Carried(e *scopetree.Edge) []ir.Dependency {
	var out []ir.Dependency
	for _, d := range r[e.Child].Dependencies() {
		if matchParam(e, d.Key()) == nil {
			out = append(out, d)
		}
	}
	return out
}

// Logical reports whether instantiating e's child depends on anything from
// e's parent side.
func (r Residuals) Logical(e *scopetree.Edge) bool {
	return len(r.Carried(e)) > 0
}
