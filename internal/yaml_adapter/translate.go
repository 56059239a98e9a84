package yaml_adapter

import (
	"context"
	"fmt"

	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/ir"
)

func (l *Loader) translate(ctx context.Context, root *fileRoot) (*ir.Declarations, error) {
	decls := &ir.Declarations{}

	for i, doc := range root.Scopes {
		s, err := l.translateScope(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("scopes[%d] (%s): %w", i, doc.Type, err)
		}
		decls.Scopes = append(decls.Scopes, s)
	}
	for i, doc := range root.Objects {
		t, err := l.notation.Type(doc.Type)
		if err != nil {
			return nil, fmt.Errorf("objects[%d]: %w", i, err)
		}
		o := ir.ObjectsDecl{Type: t}
		if o.Extends, err = l.types(doc.Extends); err != nil {
			return nil, fmt.Errorf("objects[%d] (%s) extends: %w", i, doc.Type, err)
		}
		if o.Producers, err = l.producers(doc.Producers); err != nil {
			return nil, fmt.Errorf("objects[%d] (%s): %w", i, doc.Type, err)
		}
		decls.Objects = append(decls.Objects, o)
	}
	for i, doc := range root.Spreadables {
		s, err := l.translateSpreadable(doc)
		if err != nil {
			return nil, fmt.Errorf("spreadables[%d] (%s): %w", i, doc.Type, err)
		}
		decls.Spreadables = append(decls.Spreadables, s)
	}
	ext, err := l.types(root.External)
	if err != nil {
		return nil, fmt.Errorf("external: %w", err)
	}
	decls.External = ext
	return decls, nil
}

func (l *Loader) translateScope(ctx context.Context, doc scopeDoc) (ir.ScopeDecl, error) {
	ctxlog.FromContext(ctx).Debug("Translating YAML scope.", "scope", doc.Type)

	t, err := l.notation.Type(doc.Type)
	if err != nil {
		return ir.ScopeDecl{}, err
	}
	s := ir.ScopeDecl{Type: t}
	if doc.Parent != nil {
		p, err := l.notation.Type(*doc.Parent)
		if err != nil {
			return ir.ScopeDecl{}, fmt.Errorf("parent: %w", err)
		}
		s.Parent = &p
	}
	if s.Extends, err = l.types(doc.Extends); err != nil {
		return ir.ScopeDecl{}, fmt.Errorf("extends: %w", err)
	}
	for _, a := range doc.Access {
		d, err := l.notation.Dependency(a.Type)
		if err != nil {
			return ir.ScopeDecl{}, fmt.Errorf("access %q: %w", a.Name, err)
		}
		s.Access = append(s.Access, ir.AccessDecl{Name: a.Name, Dependency: d})
	}
	for _, c := range doc.Children {
		target, err := l.notation.Type(c.Scope)
		if err != nil {
			return ir.ScopeDecl{}, fmt.Errorf("child %q: %w", c.Name, err)
		}
		child := ir.ChildDecl{Name: c.Name, Scope: target}
		for _, p := range c.Params {
			d, err := l.notation.Dependency(p.Type)
			if err != nil {
				return ir.ScopeDecl{}, fmt.Errorf("child %q param %q: %w", c.Name, p.Name, err)
			}
			child.Params = append(child.Params, ir.ParamDecl{Name: p.Name, Dependency: d, Exposed: p.Expose})
		}
		s.Children = append(s.Children, child)
	}
	if s.Producers, err = l.producers(doc.Producers); err != nil {
		return ir.ScopeDecl{}, err
	}
	return s, nil
}

func (l *Loader) translateSpreadable(doc spreadableDoc) (ir.SpreadableDecl, error) {
	t, err := l.notation.Type(doc.Type)
	if err != nil {
		return ir.SpreadableDecl{}, err
	}
	s := ir.SpreadableDecl{Type: t}
	for _, a := range doc.Accessors {
		d, err := l.notation.Dependency(a.Type)
		if err != nil {
			return ir.SpreadableDecl{}, fmt.Errorf("accessor %q: %w", a.Name, err)
		}
		s.Accessors = append(s.Accessors, ir.AccessorDecl{
			Name:      a.Name,
			Provides:  d,
			Spread:    a.Spread,
			Cacheable: a.Cacheable,
			Exposed:   a.Expose,
		})
	}
	return s, nil
}

func (l *Loader) producers(docs []producerDoc) ([]ir.Producer, error) {
	var out []ir.Producer
	for _, doc := range docs {
		provides, err := l.notation.Dependency(doc.Type)
		if err != nil {
			return nil, fmt.Errorf("producer %q: %w", doc.Name, err)
		}
		p := ir.NewProducer(doc.Name, provides)
		for _, r := range doc.Requires {
			d, err := l.notation.Dependency(r)
			if err != nil {
				return nil, fmt.Errorf("producer %q: %w", doc.Name, err)
			}
			p.Requires = append(p.Requires, d)
		}
		if doc.Cacheable != nil {
			p.Cacheable = *doc.Cacheable
		}
		p.Exposed = doc.Expose
		p.Spread = doc.Spread
		out = append(out, p)
	}
	return out, nil
}

func (l *Loader) types(names []string) ([]ir.Type, error) {
	var out []ir.Type
	for _, n := range names {
		t, err := l.notation.Type(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
