package ir

// AccessDecl is a dependency a scope promises to external consumers.
type AccessDecl struct {
	Name       string
	Dependency Dependency
}

// ParamDecl is a dynamic dependency supplied when a child scope is created.
// Exposed parameters stay visible to the child's own descendants.
type ParamDecl struct {
	Name       string
	Dependency Dependency
	Exposed    bool
}

// ChildDecl is a child-scope accessor: calling it on the parent yields a new
// instance of Scope, seeded with Params.
type ChildDecl struct {
	Name   string
	Scope  Type
	Params []ParamDecl
}

// ScopeDecl is the front-end's description of one scope.
type ScopeDecl struct {
	Type Type
	// Parent is set when the scope names its parent explicitly instead of
	// (or in addition to) being reached through a ChildDecl.
	Parent    *Type
	Extends   []Type
	Producers []Producer
	Access    []AccessDecl
	Children  []ChildDecl
}

// ObjectsDecl is an abstract producer-bearing type. Scopes and other objects
// declarations inherit its producers through Extends.
type ObjectsDecl struct {
	Type      Type
	Extends   []Type
	Producers []Producer
}

// AccessorDecl is one public accessor of a spreadable type. Nil flags
// inherit from the spread producer.
type AccessorDecl struct {
	Name      string
	Provides  Dependency
	Spread    bool
	Cacheable *bool
	Exposed   *bool
}

// SpreadableDecl lists the public accessor surface of a type that producers
// may spread.
type SpreadableDecl struct {
	Type      Type
	Accessors []AccessorDecl
}

// Declarations is the full IR handed over by a front-end. Slice order is
// declaration order and drives every deterministic ordering downstream.
type Declarations struct {
	Scopes      []ScopeDecl
	Objects     []ObjectsDecl
	Spreadables []SpreadableDecl
	// External lists scope types known to exist without IR.
	External []Type
}

// Merge appends o to d, keeping declaration order.
func (d *Declarations) Merge(o *Declarations) {
	if o == nil {
		return
	}
	d.Scopes = append(d.Scopes, o.Scopes...)
	d.Objects = append(d.Objects, o.Objects...)
	d.Spreadables = append(d.Spreadables, o.Spreadables...)
	d.External = append(d.External, o.External...)
}

// FindScope returns the scope declaration for t, if any.
func (d *Declarations) FindScope(t Type) (*ScopeDecl, bool) {
	for i := range d.Scopes {
		if d.Scopes[i].Type.Equal(t) {
			return &d.Scopes[i], true
		}
	}
	return nil, false
}

// FindSpreadable returns the accessor surface for t, if any.
func (d *Declarations) FindSpreadable(t Type) (*SpreadableDecl, bool) {
	for i := range d.Spreadables {
		if d.Spreadables[i].Type.Equal(t) {
			return &d.Spreadables[i], true
		}
	}
	return nil, false
}

// IsExternal reports whether t was declared as a pre-compiled scope.
func (d *Declarations) IsExternal(t Type) bool {
	for _, e := range d.External {
		if e.Equal(t) {
			return true
		}
	}
	return false
}
