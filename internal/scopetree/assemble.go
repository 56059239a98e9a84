package scopetree

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/scopegraph/internal/ctxlog"
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// DefaultMaxSites bounds the number of instantiation sites a tree may unfold
// into when no other limit is given.
const DefaultMaxSites = 100_000

// ErrTooManySites is returned when well-formed declarations unfold into more
// instantiation sites than the limit allows. It is a resource bound, not a
// contract violation, and does not wrap ir.ErrInvalidIR.
var ErrTooManySites = errors.New("too many instantiation sites")

// Assemble builds a Tree from declarations that already passed ir.Validate,
// with the default site limit.
func Assemble(ctx context.Context, decls *ir.Declarations) (*Tree, error) {
	return AssembleLimited(ctx, decls, DefaultMaxSites)
}

// AssembleLimited is Assemble with an explicit bound on instantiation sites;
// a non-positive maxSites means DefaultMaxSites. It fails with
// ir.ErrInvalidIR when the declarations cannot form a tree (inheritance
// cycles) and with ErrTooManySites when unfolding exceeds the bound. Missing
// scopes are recorded as Unprocessed.
func AssembleLimited(ctx context.Context, decls *ir.Declarations, maxSites int) (*Tree, error) {
	if maxSites <= 0 {
		maxSites = DefaultMaxSites
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assemble: Starting scope tree assembly.", "scope_count", len(decls.Scopes))

	a := &assembler{
		decls:   decls,
		objects: make(map[string]*ir.ObjectsDecl),
		merged:  make(map[string]*mergeResult),
		tree: &Tree{
			byType:      make(map[string]*Scope),
			unprocessed: make(map[string]bool),
		},
		reported: make(map[string]bool),
		maxSites: maxSites,
	}
	for i := range decls.Objects {
		a.objects[decls.Objects[i].Type.String()] = &decls.Objects[i]
	}

	// First pass: scopes and their effective producer sets.
	if err := a.createScopes(); err != nil {
		return nil, err
	}
	logger.Debug("Assemble: Scope creation complete.", "scope_count", len(a.tree.Scopes))

	// Second pass: accessor and parent edges.
	a.linkScopes()
	logger.Debug("Assemble: Edge linking complete.", "unprocessed_count", len(a.tree.Unprocessed))

	// Third pass: unfold into instantiation sites.
	if err := a.unfold(); err != nil {
		return nil, err
	}
	logger.Debug("Assemble: Unfolding complete.", "root_count", len(a.tree.Roots), "node_count", len(a.tree.Nodes))

	return a.tree, nil
}

type assembler struct {
	decls    *ir.Declarations
	objects  map[string]*ir.ObjectsDecl
	merged   map[string]*mergeResult
	tree     *Tree
	reported map[string]bool
	maxSites int
}

func (a *assembler) markUnprocessed(u Unprocessed) {
	key := u.Referrer.String() + "|" + u.Via + "|" + u.Target.String()
	if a.reported[key] {
		return
	}
	a.reported[key] = true
	a.tree.Unprocessed = append(a.tree.Unprocessed, u)
	a.tree.unprocessed[u.Target.String()] = true
}

func (a *assembler) createScopes() error {
	for i := range a.decls.Scopes {
		decl := &a.decls.Scopes[i]
		s := &Scope{
			Type:   decl.Type,
			Access: decl.Access,
			Index:  i,
		}
		producers, missing, err := a.effective(decl.Type, decl.Extends, decl.Producers, nil)
		if err != nil {
			return err
		}
		for _, base := range missing {
			a.markUnprocessed(Unprocessed{
				Referrer: decl.Type,
				Target:   base,
				Via:      "extends",
				Known:    a.decls.IsExternal(base),
			})
		}
		for _, p := range producers {
			s.Add(p)
		}
		a.tree.Scopes = append(a.tree.Scopes, s)
		a.tree.byType[decl.Type.String()] = s
	}
	return nil
}

func (a *assembler) linkScopes() {
	for i, decl := range a.decls.Scopes {
		parent := a.tree.Scopes[i]
		for _, c := range decl.Children {
			child := a.tree.byType[c.Scope.String()]
			if child == nil {
				a.markUnprocessed(Unprocessed{
					Referrer: decl.Type,
					Target:   c.Scope,
					Via:      c.Name,
					Known:    a.decls.IsExternal(c.Scope),
				})
				continue
			}
			e := &Edge{Parent: parent, Child: child, Name: c.Name, Declared: true, Index: len(parent.Children)}
			for j, p := range c.Params {
				e.Params = append(e.Params, &Param{Name: p.Name, Dependency: p.Dependency, Exposed: p.Exposed, Index: j})
			}
			parent.Children = append(parent.Children, e)
			child.Parents = append(child.Parents, e)
		}
	}

	for i, decl := range a.decls.Scopes {
		if decl.Parent == nil {
			continue
		}
		child := a.tree.Scopes[i]
		parent := a.tree.byType[decl.Parent.String()]
		if parent == nil {
			child.Orphaned = true
			a.markUnprocessed(Unprocessed{
				Referrer: decl.Type,
				Target:   *decl.Parent,
				Via:      "parent",
				Known:    a.decls.IsExternal(*decl.Parent),
			})
			continue
		}
		linked := false
		for _, e := range child.Parents {
			if e.Parent == parent {
				linked = true
				break
			}
		}
		if linked {
			continue
		}
		e := &Edge{Parent: parent, Child: child, Index: len(parent.Children)}
		parent.Children = append(parent.Children, e)
		child.Parents = append(child.Parents, e)
	}
}

func (a *assembler) unfold() error {
	visited := make(map[*Scope]bool)
	onPath := make(map[*Scope]bool)

	var visit func(s *Scope, parent *Node, via *Edge) (*Node, error)
	visit = func(s *Scope, parent *Node, via *Edge) (*Node, error) {
		if len(a.tree.Nodes) >= a.maxSites {
			return nil, fmt.Errorf("%w: scope graph unfolds into more than %d", ErrTooManySites, a.maxSites)
		}
		n := &Node{Scope: s, Parent: parent, Via: via, Index: len(a.tree.Nodes)}
		n.Path = s.Type.SimpleName()
		if parent != nil {
			segment := s.Type.SimpleName()
			if via.Name != "" {
				segment = via.Name + ":" + segment
			}
			n.Path = parent.Path + "/" + segment
		}
		a.tree.Nodes = append(a.tree.Nodes, n)
		visited[s] = true

		if onPath[s] {
			n.BackReference = true
			return n, nil
		}
		onPath[s] = true
		defer delete(onPath, s)

		for _, e := range s.Children {
			child, err := visit(e.Child, n, e)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
		return n, nil
	}

	addRoot := func(s *Scope) error {
		root, err := visit(s, nil, nil)
		if err != nil {
			return err
		}
		a.tree.Roots = append(a.tree.Roots, root)
		return nil
	}

	for _, s := range a.tree.Scopes {
		if len(s.Parents) == 0 {
			if err := addRoot(s); err != nil {
				return err
			}
		}
	}
	// Scopes only reachable through accessor cycles have no natural root;
	// the first one declared becomes one.
	for _, s := range a.tree.Scopes {
		if !visited[s] {
			if err := addRoot(s); err != nil {
				return err
			}
		}
	}
	return nil
}
