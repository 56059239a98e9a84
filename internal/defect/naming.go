package defect

import (
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// naming picks how types are printed in a defect. Simple names are the
// default; qualified is set when two distinct types in the same report
// share a simple name. identity renders the dedupe key.
type naming struct {
	qualified bool
	identity  bool
}

var identityNaming = naming{qualified: true, identity: true}

func (n naming) typ(t ir.Type) string {
	if n.qualified {
		return t.String()
	}
	return t.SimpleName()
}

func (n naming) dep(d ir.Dependency) string {
	if n.qualified {
		return d.String()
	}
	return d.SimpleString()
}

func (n naming) ref(r Ref) string {
	if !n.qualified {
		return r.String()
	}
	switch r.Kind {
	case ScopeRef:
		return r.Scope.String() + " (scope)"
	case ParamRef:
		return r.Scope.String() + "." + r.Name + " (param)"
	default:
		return r.Scope.String() + "." + r.Name
	}
}

func (n naming) refs(rs []Ref) string {
	items := make([]string, 0, len(rs))
	for _, r := range rs {
		items = append(items, n.ref(r))
	}
	return joinList(items)
}

func (n *naming) qualify() { n.qualified = true }

// rendered is implemented by every defect in this package.
type rendered interface {
	render(n naming) string
	mentions() []ir.Type
	qualify()
}

// identity is the structural key of a defect: its kind and its fully
// qualified rendering, independent of how names are shortened for output.
func identity(d Defect) string {
	if r, ok := d.(rendered); ok {
		return d.Kind().String() + "\x00" + r.render(identityNaming)
	}
	return d.Kind().String() + "\x00" + d.Primary().String() + "\x00" + d.Error()
}

// qualifyCollisions switches every defect that mentions an ambiguous simple
// name to fully qualified rendering.
func qualifyCollisions(defects []Defect) {
	full := make(map[string]map[string]bool)
	for _, d := range defects {
		r, ok := d.(rendered)
		if !ok {
			continue
		}
		for _, t := range r.mentions() {
			if t.Name == "" {
				continue
			}
			simple := t.SimpleName()
			if full[simple] == nil {
				full[simple] = make(map[string]bool)
			}
			full[simple][t.String()] = true
		}
	}
	for _, d := range defects {
		r, ok := d.(rendered)
		if !ok {
			continue
		}
		for _, t := range r.mentions() {
			if len(full[t.SimpleName()]) > 1 {
				r.qualify()
				break
			}
		}
	}
}
