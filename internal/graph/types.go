package graph

import (
	"errors"

	"github.com/specialistvlad/scopegraph/internal/defect"
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// Producer is a producer of a resolved scope.
type Producer struct {
	Name      string
	Provides  ir.Dependency
	Requires  []ir.Dependency
	Cacheable bool
	Exposed   bool
	Synthetic bool
	// SpreadOf names the producer a synthetic producer reads from.
	SpreadOf string
}

// Scope is a resolved scope.
type Scope struct {
	Type      ir.Type
	Producers []*Producer
	// Plan orders producers so each comes after the producers it requires
	// locally. It is nil when the scope has a dependency cycle.
	Plan   []*Producer
	Access []ir.AccessDecl
}

// SourceKind tells what a binding is satisfied by.
type SourceKind int

const (
	Unresolved SourceKind = iota
	FromProducer
	FromParam
	FromScope
)

// Source is what a binding resolved to.
type Source struct {
	Kind SourceKind
	// Scope owns the source. For parameters it is the scope whose accessor
	// passes the parameter.
	Scope    ir.Type
	Producer *Producer
	// Param is "accessor(param)" for parameter sources.
	Param string
	// Path is the instantiation site owning the source.
	Path     string
	Distance int
}

// Binding is the resolution of one need at one site.
type Binding struct {
	// Site is where the need is declared, e.g. "access config".
	Site       string
	Dependency ir.Dependency
	Source     Source
	Cacheable  bool
}

// Node is an instantiation site.
type Node struct {
	Scope         *Scope
	Path          string
	Via           string
	Parent        *Node
	Children      []*Node
	BackReference bool
	Bindings      []Binding
}

// ResolvedGraph is the result of a compilation.
type ResolvedGraph struct {
	Roots   []*Node
	Scopes  []*Scope
	Defects []defect.Defect

	nodes  []*Node
	byType map[string]*Scope
}

// Failed reports whether the compilation produced any defect.
func (g *ResolvedGraph) Failed() bool {
	return len(g.Defects) > 0
}

// Err joins all defects into one error, or returns nil.
func (g *ResolvedGraph) Err() error {
	if !g.Failed() {
		return nil
	}
	errs := make([]error, len(g.Defects))
	for i, d := range g.Defects {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// Scope returns the resolved scope for t, or nil.
func (g *ResolvedGraph) Scope(t ir.Type) *Scope {
	return g.byType[t.String()]
}

// Nodes returns every instantiation site in pre-order.
func (g *ResolvedGraph) Nodes() []*Node {
	return g.nodes
}

// Node returns the site with the given path, or nil.
func (g *ResolvedGraph) Node(path string) *Node {
	for _, n := range g.nodes {
		if n.Path == path {
			return n
		}
	}
	return nil
}

// Binding returns the first binding of n for the given dependency notation.
func (n *Node) Binding(dependency string) (Binding, bool) {
	for _, b := range n.Bindings {
		if string(b.Dependency.Key()) == dependency {
			return b, true
		}
	}
	return Binding{}, false
}
