package scopetree

import (
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// Add appends p to the scope's producer set and indexes it.
func (s *Scope) Add(p *Producer) {
	p.Scope = s.Type
	p.Index = len(s.Producers)
	s.Producers = append(s.Producers, p)
	if s.byKey == nil {
		s.byKey = make(map[ir.Key][]*Producer)
	}
	k := p.Provides.Key()
	s.byKey[k] = append(s.byKey[k], p)
}

// Lookup returns the scope's own producers for key. Hand-declared producers
// shadow spread-synthesised ones of the same scope.
func (s *Scope) Lookup(key ir.Key) []*Producer {
	all := s.byKey[key]
	var declared, synthetic []*Producer
	for _, p := range all {
		if p.Synthetic {
			synthetic = append(synthetic, p)
		} else {
			declared = append(declared, p)
		}
	}
	if len(declared) > 0 {
		return declared
	}
	return synthetic
}

// Shadowed returns the synthetic producers for key hidden by a hand-declared
// one.
func (s *Scope) Shadowed(key ir.Key) []*Producer {
	all := s.byKey[key]
	hasDeclared := false
	var synthetic []*Producer
	for _, p := range all {
		if p.Synthetic {
			synthetic = append(synthetic, p)
		} else {
			hasDeclared = true
		}
	}
	if !hasDeclared {
		return nil
	}
	return synthetic
}

// Keys returns the distinct provided keys in producer order.
func (s *Scope) Keys() []ir.Key {
	seen := make(map[ir.Key]bool)
	var keys []ir.Key
	for _, p := range s.Producers {
		k := p.Provides.Key()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// Scope returns the assembled scope for t, or nil.
func (t *Tree) Scope(typ ir.Type) *Scope {
	return t.byType[typ.String()]
}

// IsUnprocessed reports whether typ was referenced but has no IR.
func (t *Tree) IsUnprocessed(typ ir.Type) bool {
	return t.unprocessed[typ.String()]
}

// MentionsUnprocessed reports whether d's type, or any of its type
// arguments, is an unprocessed scope.
func (t *Tree) MentionsUnprocessed(d ir.Dependency) bool {
	for _, u := range t.Unprocessed {
		if d.Type.Mentions(u.Target.Name) {
			return true
		}
	}
	return false
}

// Ancestors returns n's ancestors from the nearest outwards.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for a := n.Parent; a != nil; a = a.Parent {
		out = append(out, a)
	}
	return out
}
