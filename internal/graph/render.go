package graph

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/scopegraph/internal/defect"
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// Render returns the golden text form of g.
func Render(g *ResolvedGraph) string {
	var b strings.Builder

	b.WriteString("SCOPES\n")
	for _, s := range g.Scopes {
		fmt.Fprintf(&b, "  %s\n", s.Type.SimpleName())
		for _, p := range s.Producers {
			fmt.Fprintf(&b, "    %s\n", renderProducer(p))
		}
		for _, a := range s.Access {
			fmt.Fprintf(&b, "    access %s: %s\n", a.Name, a.Dependency.SimpleString())
		}
		if s.Plan == nil {
			b.WriteString("    plan: <cyclic>\n")
		} else if len(s.Plan) > 0 {
			names := make([]string, len(s.Plan))
			for i, p := range s.Plan {
				names[i] = p.Name
			}
			fmt.Fprintf(&b, "    plan: %s\n", strings.Join(names, ", "))
		}
	}

	b.WriteString("TREE\n")
	for _, n := range g.nodes {
		if n.BackReference {
			fmt.Fprintf(&b, "  %s (back-reference)\n", n.Path)
			continue
		}
		fmt.Fprintf(&b, "  %s\n", n.Path)
		for _, bd := range n.Bindings {
			fmt.Fprintf(&b, "    %s: %s <- %s\n", bd.Site, bd.Dependency.SimpleString(), renderSource(bd))
		}
	}

	b.WriteString(defect.Render(g.Defects))
	return b.String()
}

func renderProducer(p *Producer) string {
	var flags []string
	if p.Cacheable {
		flags = append(flags, "cached")
	} else {
		flags = append(flags, "uncached")
	}
	if p.Exposed {
		flags = append(flags, "exposed")
	}
	if p.Synthetic {
		flags = append(flags, "spread from "+p.SpreadOf)
	}
	return fmt.Sprintf("%s: %s <- %s (%s)",
		p.Name, p.Provides.SimpleString(), renderDeps(p.Requires), strings.Join(flags, ", "))
}

func renderDeps(deps []ir.Dependency) string {
	items := make([]string, len(deps))
	for i, d := range deps {
		items[i] = d.SimpleString()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func renderSource(bd Binding) string {
	src := bd.Source
	var s string
	switch src.Kind {
	case FromProducer:
		s = src.Scope.SimpleName() + "." + src.Producer.Name
	case FromParam:
		s = src.Scope.SimpleName() + "." + src.Param + " (param)"
	case FromScope:
		s = src.Scope.SimpleName() + " (scope)"
	default:
		return "<unresolved>"
	}
	if src.Distance > 0 {
		s += fmt.Sprintf(" @%d", src.Distance)
	}
	if bd.Cacheable {
		return s + " [cached]"
	}
	return s + " [uncached]"
}
