package graph

import (
	"github.com/specialistvlad/scopegraph/internal/cycle"
	"github.com/specialistvlad/scopegraph/internal/defect"
	"github.com/specialistvlad/scopegraph/internal/resolver"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

// Build assembles the resolved graph. resolutions is indexed by the tree's
// pre-order node index.
func Build(tree *scopetree.Tree, resolutions [][]resolver.Resolution, defects []defect.Defect) *ResolvedGraph {
	g := &ResolvedGraph{
		Defects: defects,
		byType:  make(map[string]*Scope, len(tree.Scopes)),
	}

	producers := make(map[*scopetree.Producer]*Producer)
	for _, s := range tree.Scopes {
		rs := &Scope{Type: s.Type, Access: s.Access}
		for _, p := range s.Producers {
			gp := &Producer{
				Name:      p.Name,
				Provides:  p.Provides,
				Requires:  p.Requires,
				Cacheable: p.Cacheable,
				Exposed:   p.Exposed,
				Synthetic: p.Synthetic,
			}
			if p.SpreadOf != nil {
				gp.SpreadOf = p.SpreadOf.Name
			}
			producers[p] = gp
			rs.Producers = append(rs.Producers, gp)
		}
		if order, err := cycle.ProducerGraph(s).TopologicalOrder(); err == nil {
			rs.Plan = make([]*Producer, 0, len(order))
			for _, p := range order {
				rs.Plan = append(rs.Plan, producers[p])
			}
		}
		g.Scopes = append(g.Scopes, rs)
		g.byType[s.Type.String()] = rs
	}

	nodes := make(map[*scopetree.Node]*Node, len(tree.Nodes))
	for _, n := range tree.Nodes {
		gn := &Node{
			Scope:         g.byType[n.Scope.Type.String()],
			Path:          n.Path,
			BackReference: n.BackReference,
		}
		if n.Via != nil {
			gn.Via = n.Via.Name
		}
		if n.Parent != nil {
			gn.Parent = nodes[n.Parent]
			gn.Parent.Children = append(gn.Parent.Children, gn)
		} else {
			g.Roots = append(g.Roots, gn)
		}
		if n.Index < len(resolutions) {
			for _, r := range resolutions[n.Index] {
				gn.Bindings = append(gn.Bindings, binding(r, producers))
			}
		}
		nodes[n] = gn
		g.nodes = append(g.nodes, gn)
	}
	return g
}

func binding(r resolver.Resolution, producers map[*scopetree.Producer]*Producer) Binding {
	b := Binding{
		Site:       r.Need.Site(),
		Dependency: r.Need.Dependency,
		Cacheable:  r.Source.Cacheable(),
	}
	src := r.Source
	switch src.Kind {
	case resolver.ProducerSource:
		b.Source = Source{Kind: FromProducer, Scope: src.Producer.Scope, Producer: producers[src.Producer]}
	case resolver.ParamSource:
		e := src.Node.Via
		b.Source = Source{Kind: FromParam, Scope: e.Parent.Type, Param: e.Name + "(" + src.Param.Name + ")"}
	case resolver.ScopeSource:
		b.Source = Source{Kind: FromScope, Scope: src.Node.Scope.Type}
	default:
		return b
	}
	b.Source.Path = src.Node.Path
	b.Source.Distance = src.Distance
	return b
}
