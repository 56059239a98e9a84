// This file translates decoded HCL blocks into the format-agnostic IR.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/ir"
)

func (l *Loader) translate(ctx context.Context, root *fileRoot) (*ir.Declarations, error) {
	decls := &ir.Declarations{}

	for _, b := range root.Scopes {
		s, err := l.translateScope(ctx, b)
		if err != nil {
			return nil, err
		}
		decls.Scopes = append(decls.Scopes, s)
	}
	for _, b := range root.Objects {
		o, err := l.translateObjects(ctx, b)
		if err != nil {
			return nil, err
		}
		decls.Objects = append(decls.Objects, o)
	}
	for _, b := range root.Spreadables {
		s, err := l.translateSpreadable(ctx, b)
		if err != nil {
			return nil, err
		}
		decls.Spreadables = append(decls.Spreadables, s)
	}
	for _, b := range root.External {
		t, err := l.notation.Type(b.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: external %q: %w", b.DeclRange, b.Type, err)
		}
		decls.External = append(decls.External, t)
	}
	return decls, nil
}

func (l *Loader) translateScope(ctx context.Context, b *scopeBlock) (ir.ScopeDecl, error) {
	ctx, logger := ctxlog.With(ctx, "scope", b.Type)
	logger.Debug("Translating HCL scope block.")

	t, err := l.notation.Type(b.Type)
	if err != nil {
		return ir.ScopeDecl{}, fmt.Errorf("%s: scope %q: %w", b.DeclRange, b.Type, err)
	}
	s := ir.ScopeDecl{Type: t}

	if b.Parent != nil {
		p, err := l.notation.Type(*b.Parent)
		if err != nil {
			return ir.ScopeDecl{}, fmt.Errorf("%s: scope %q parent: %w", b.DeclRange, b.Type, err)
		}
		s.Parent = &p
	}

	if s.Extends, err = l.translateExtends(ctx, b.Extends); err != nil {
		return ir.ScopeDecl{}, fmt.Errorf("scope %q: %w", b.Type, err)
	}

	for _, a := range b.Access {
		d, err := l.notation.Dependency(a.Type)
		if err != nil {
			return ir.ScopeDecl{}, fmt.Errorf("%s: access %q: %w", a.DeclRange, a.Name, err)
		}
		s.Access = append(s.Access, ir.AccessDecl{Name: a.Name, Dependency: d})
	}

	for _, c := range b.Children {
		child, err := l.translateChild(ctx, c)
		if err != nil {
			return ir.ScopeDecl{}, err
		}
		s.Children = append(s.Children, child)
	}

	if s.Producers, err = l.translateProducers(ctx, b.Producers); err != nil {
		return ir.ScopeDecl{}, err
	}
	return s, nil
}

func (l *Loader) translateChild(ctx context.Context, c *childBlock) (ir.ChildDecl, error) {
	target, err := l.notation.Type(c.Scope)
	if err != nil {
		return ir.ChildDecl{}, fmt.Errorf("%s: child %q: %w", c.DeclRange, c.Name, err)
	}
	child := ir.ChildDecl{Name: c.Name, Scope: target}
	for _, p := range c.Params {
		d, err := l.notation.Dependency(p.Type)
		if err != nil {
			return ir.ChildDecl{}, fmt.Errorf("%s: param %q: %w", p.DeclRange, p.Name, err)
		}
		exposed, err := evalBool(ctx, p.Expose, "expose")
		if err != nil {
			return ir.ChildDecl{}, err
		}
		child.Params = append(child.Params, ir.ParamDecl{
			Name:       p.Name,
			Dependency: d,
			Exposed:    boolOr(exposed, false),
		})
	}
	return child, nil
}

func (l *Loader) translateObjects(ctx context.Context, b *objectsBlock) (ir.ObjectsDecl, error) {
	t, err := l.notation.Type(b.Type)
	if err != nil {
		return ir.ObjectsDecl{}, fmt.Errorf("%s: objects %q: %w", b.DeclRange, b.Type, err)
	}
	o := ir.ObjectsDecl{Type: t}
	if o.Extends, err = l.translateExtends(ctx, b.Extends); err != nil {
		return ir.ObjectsDecl{}, fmt.Errorf("objects %q: %w", b.Type, err)
	}
	if o.Producers, err = l.translateProducers(ctx, b.Producers); err != nil {
		return ir.ObjectsDecl{}, err
	}
	return o, nil
}

func (l *Loader) translateExtends(ctx context.Context, expr hcl.Expression) ([]ir.Type, error) {
	names, err := evalStrings(ctx, expr, "extends")
	if err != nil {
		return nil, err
	}
	var out []ir.Type
	for _, n := range names {
		t, err := l.notation.Type(n)
		if err != nil {
			return nil, fmt.Errorf("%s: extends %q: %w", expr.Range(), n, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (l *Loader) translateProducers(ctx context.Context, blocks []*producerBlock) ([]ir.Producer, error) {
	var out []ir.Producer
	for _, b := range blocks {
		p, err := l.translateProducer(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("%s: producer %q: %w", b.DeclRange, b.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (l *Loader) translateProducer(ctx context.Context, b *producerBlock) (ir.Producer, error) {
	provides, err := l.notation.Dependency(b.Type)
	if err != nil {
		return ir.Producer{}, err
	}
	p := ir.NewProducer(b.Name, provides)

	reqs, err := evalStrings(ctx, b.Requires, "requires")
	if err != nil {
		return ir.Producer{}, err
	}
	for _, r := range reqs {
		d, err := l.notation.Dependency(r)
		if err != nil {
			return ir.Producer{}, err
		}
		p.Requires = append(p.Requires, d)
	}

	cacheable, err := evalBool(ctx, b.Cacheable, "cacheable")
	if err != nil {
		return ir.Producer{}, err
	}
	exposed, err := evalBool(ctx, b.Expose, "expose")
	if err != nil {
		return ir.Producer{}, err
	}
	spread, err := evalBool(ctx, b.Spread, "spread")
	if err != nil {
		return ir.Producer{}, err
	}
	p.Cacheable = boolOr(cacheable, true)
	p.Exposed = boolOr(exposed, false)
	p.Spread = boolOr(spread, false)
	return p, nil
}

func (l *Loader) translateSpreadable(ctx context.Context, b *spreadableBlock) (ir.SpreadableDecl, error) {
	t, err := l.notation.Type(b.Type)
	if err != nil {
		return ir.SpreadableDecl{}, fmt.Errorf("%s: spreadable %q: %w", b.DeclRange, b.Type, err)
	}
	s := ir.SpreadableDecl{Type: t}
	for _, a := range b.Accessors {
		acc, err := l.translateAccessor(ctx, a)
		if err != nil {
			return ir.SpreadableDecl{}, fmt.Errorf("%s: accessor %q: %w", a.DeclRange, a.Name, err)
		}
		s.Accessors = append(s.Accessors, acc)
	}
	return s, nil
}

func (l *Loader) translateAccessor(ctx context.Context, a *accessorBlock) (ir.AccessorDecl, error) {
	provides, err := l.notation.Dependency(a.Type)
	if err != nil {
		return ir.AccessorDecl{}, err
	}
	spread, err := evalBool(ctx, a.Spread, "spread")
	if err != nil {
		return ir.AccessorDecl{}, err
	}
	acc := ir.AccessorDecl{Name: a.Name, Provides: provides, Spread: boolOr(spread, false)}
	if acc.Cacheable, err = evalBool(ctx, a.Cacheable, "cacheable"); err != nil {
		return ir.AccessorDecl{}, err
	}
	if acc.Exposed, err = evalBool(ctx, a.Expose, "expose"); err != nil {
		return ir.AccessorDecl{}, err
	}
	return acc, nil
}
