package scopetree

import (
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// Producer is a producer as it appears in one scope's effective set.
type Producer struct {
	// Origin identifies the declaration this producer came from. Two
	// producers with the same origin are the same producer.
	Origin    string
	Scope     ir.Type
	Name      string
	Provides  ir.Dependency
	Requires  []ir.Dependency
	Cacheable bool
	Exposed   bool
	Spread    bool
	// Synthetic marks producers created by spread expansion; SpreadOf is
	// the producer whose value they are read from.
	Synthetic bool
	SpreadOf  *Producer
	// Index is the position in the owning scope's producer list.
	Index int
}

// Param is a dynamic dependency supplied at a child accessor call site.
type Param struct {
	Name       string
	Dependency ir.Dependency
	Exposed    bool
	Index      int
}

// Edge is a child accessor from Parent to Child. Edges synthesised from a
// scope's parent declaration have no name and no params.
type Edge struct {
	Parent   *Scope
	Child    *Scope
	Name     string
	Params   []*Param
	Declared bool
	Index    int
}

// Scope is an assembled scope.
type Scope struct {
	Type      ir.Type
	Producers []*Producer
	Access    []ir.AccessDecl
	Children  []*Edge
	Parents   []*Edge
	// Index is the declaration order.
	Index int
	// Orphaned is set when the declared parent has no IR.
	Orphaned bool

	byKey map[ir.Key][]*Producer
}

// Node is one instantiation site of a scope.
type Node struct {
	Scope    *Scope
	Parent   *Node
	Via      *Edge
	Children []*Node
	// BackReference marks a re-entry of a scope already on the path from
	// the root. Such nodes are never unfolded.
	BackReference bool
	// Index is the pre-order position.
	Index int
	Path  string
}

// Unprocessed records a reference to a scope type without IR.
type Unprocessed struct {
	Referrer ir.Type
	Target   ir.Type
	// Via is the accessor name, or "parent" / "extends".
	Via string
	// Known is set when the target was declared external.
	Known bool
}

// Tree is the assembled forest.
type Tree struct {
	Scopes      []*Scope
	Roots       []*Node
	Nodes       []*Node
	Unprocessed []Unprocessed

	byType      map[string]*Scope
	unprocessed map[string]bool
}
