package resolver

import (
	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

// Needs lists the needs of a scope: access methods first, then producer
// requirements in producer and parameter order.
func Needs(s *scopetree.Scope) []Need {
	var out []Need
	for _, a := range s.Access {
		out = append(out, Need{Kind: AccessNeed, Dependency: a.Dependency, Name: a.Name})
	}
	for _, p := range s.Producers {
		for i, r := range p.Requires {
			out = append(out, Need{Kind: RequirementNeed, Dependency: r, Producer: p, Index: i})
		}
	}
	return out
}

// ResolveNode resolves every need of n. Back-reference sites are resolved
// where their scope was first unfolded and yield nothing here.
func ResolveNode(n *scopetree.Node) []Resolution {
	if n.BackReference {
		return nil
	}
	needs := Needs(n.Scope)
	out := make([]Resolution, 0, len(needs))
	for _, need := range needs {
		out = append(out, Resolve(n, need))
	}
	return out
}

// Resolve searches for a single need at site n.
func Resolve(n *scopetree.Node, need Need) Resolution {
	res := Resolution{Node: n, Need: need}
	key := need.Dependency.Key()

	// The site's own scope.
	for _, p := range n.Scope.Lookup(key) {
		res.Candidates = append(res.Candidates, Source{Kind: ProducerSource, Producer: p, Node: n})
	}
	if isScopeSelf(n.Scope, need.Dependency) {
		res.Candidates = append(res.Candidates, Source{Kind: ScopeSource, Node: n})
	}

	// Parameters passed by the accessor that created this site satisfy the
	// need structurally and end the search.
	if p := matchParam(n.Via, key); p != nil {
		res.Candidates = append(res.Candidates, Source{Kind: ParamSource, Param: p, Node: n, Distance: 1})
		res.finish()
		return res
	}

	distance := 0
	for a := n.Parent; a != nil; a = a.Parent {
		distance++
		for _, p := range a.Scope.Lookup(key) {
			src := Source{Kind: ProducerSource, Producer: p, Node: a, Distance: distance}
			if p.Exposed {
				res.Candidates = append(res.Candidates, src)
			} else {
				res.Hidden = append(res.Hidden, src)
			}
		}
		if isScopeSelf(a.Scope, need.Dependency) {
			res.Hidden = append(res.Hidden, Source{Kind: ScopeSource, Node: a, Distance: distance})
		}
		if p := matchParam(a.Via, key); p != nil {
			src := Source{Kind: ParamSource, Param: p, Node: a, Distance: distance + 1}
			if p.Exposed {
				res.Candidates = append(res.Candidates, src)
				break
			}
			res.Hidden = append(res.Hidden, src)
		}
	}

	res.finish()
	return res
}

func (r *Resolution) finish() {
	if len(r.Candidates) == 0 {
		return
	}
	r.Source = r.Candidates[0]
	for _, h := range r.Hidden {
		if h.Distance < r.Source.Distance {
			r.HiddenNearer = true
			break
		}
	}
}

func isScopeSelf(s *scopetree.Scope, d ir.Dependency) bool {
	return d.Qualifier == nil && d.Type.Equal(s.Type)
}

func matchParam(e *scopetree.Edge, key ir.Key) *scopetree.Param {
	if e == nil {
		return nil
	}
	for _, p := range e.Params {
		if p.Dependency.Key() == key {
			return p
		}
	}
	return nil
}
