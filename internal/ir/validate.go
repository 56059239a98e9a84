package ir

import (
	"errors"
	"fmt"
)

// Validate checks the IR contract a front-end must honour. It reports every
// problem it finds, joined, each wrapping ErrInvalidIR. Structural defects
// such as missing producers are not contract violations and are left to the
// validator.
func Validate(d *Declarations) error {
	if d == nil {
		return fmt.Errorf("%w: nil declarations", ErrInvalidIR)
	}
	v := &contractCheck{decls: d, seen: make(map[string]string)}

	for _, s := range d.Scopes {
		where := "scope " + s.Type.String()
		v.declare(s.Type, "scope")
		if s.Parent != nil && s.Parent.IsZero() {
			v.fail("%s: empty parent type", where)
		}
		v.types(where+": extends", s.Extends)
		v.producers(where, s.Producers)
		for i, a := range s.Access {
			v.dependency(fmt.Sprintf("%s: access #%d (%s)", where, i, a.Name), a.Dependency)
		}
		names := make(map[string]bool)
		for i, c := range s.Children {
			cw := fmt.Sprintf("%s: child #%d (%s)", where, i, c.Name)
			if c.Name != "" && names[c.Name] {
				v.fail("%s: duplicate child accessor name", cw)
			}
			names[c.Name] = true
			if c.Scope.IsZero() {
				v.fail("%s: empty target scope type", cw)
			}
			for j, p := range c.Params {
				v.dependency(fmt.Sprintf("%s: param #%d (%s)", cw, j, p.Name), p.Dependency)
			}
		}
	}
	for _, o := range d.Objects {
		where := "objects " + o.Type.String()
		v.declare(o.Type, "objects")
		v.types(where+": extends", o.Extends)
		v.producers(where, o.Producers)
	}

	spreadables := make(map[string]bool)
	for _, sp := range d.Spreadables {
		where := "spreadable " + sp.Type.String()
		if sp.Type.IsZero() {
			v.fail("spreadable: empty type")
			continue
		}
		if spreadables[sp.Type.String()] {
			v.fail("%s: declared more than once", where)
		}
		spreadables[sp.Type.String()] = true
		names := make(map[string]bool)
		for i, a := range sp.Accessors {
			aw := fmt.Sprintf("%s: accessor #%d (%s)", where, i, a.Name)
			if a.Name == "" {
				v.fail("%s: empty name", aw)
			} else if names[a.Name] {
				v.fail("%s: duplicate name", aw)
			}
			names[a.Name] = true
			v.dependency(aw, a.Provides)
			if a.Spread {
				v.spreadTarget(aw, a.Provides.Type)
			}
		}
	}
	for i, e := range d.External {
		if e.IsZero() {
			v.fail("external #%d: empty type", i)
			continue
		}
		v.declare(e, "external")
	}

	return errors.Join(v.errs...)
}

type contractCheck struct {
	decls *Declarations
	seen  map[string]string
	errs  []error
}

func (v *contractCheck) fail(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%w: %s", ErrInvalidIR, fmt.Sprintf(format, args...)))
}

func (v *contractCheck) declare(t Type, kind string) {
	if t.IsZero() {
		v.fail("%s: empty type", kind)
		return
	}
	key := t.String()
	if prev, ok := v.seen[key]; ok {
		v.fail("%s %s: already declared as %s", kind, key, prev)
		return
	}
	v.seen[key] = kind
}

func (v *contractCheck) types(where string, ts []Type) {
	for i, t := range ts {
		if t.IsZero() {
			v.fail("%s #%d: empty type", where, i)
		}
	}
}

func (v *contractCheck) dependency(where string, d Dependency) {
	if d.Type.IsZero() {
		v.fail("%s: empty dependency type", where)
	}
	if d.Qualifier != nil && d.Qualifier.Kind == "" {
		v.fail("%s: qualifier without kind", where)
	}
}

func (v *contractCheck) producers(where string, ps []Producer) {
	names := make(map[string]bool)
	for i, p := range ps {
		pw := fmt.Sprintf("%s: producer #%d (%s)", where, i, p.Name)
		if p.Name == "" {
			v.fail("%s: empty name", pw)
		} else if names[p.Signature()] {
			v.fail("%s: declared more than once", pw)
		}
		names[p.Signature()] = true
		v.dependency(pw, p.Provides)
		for j, r := range p.Requires {
			v.dependency(fmt.Sprintf("%s: requirement #%d", pw, j), r)
		}
		if p.Spread {
			v.spreadTarget(pw, p.Provides.Type)
		}
	}
}

func (v *contractCheck) spreadTarget(where string, t Type) {
	if t.IsZero() {
		return
	}
	if _, ok := v.decls.FindSpreadable(t); !ok {
		v.fail("%s: spread type %s has no declared accessor surface", where, t)
	}
}
