package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Scopes      []*scopeBlock      `hcl:"scope,block"`
	Objects     []*objectsBlock    `hcl:"objects,block"`
	Spreadables []*spreadableBlock `hcl:"spreadable,block"`
	External    []*externalBlock   `hcl:"external,block"`
	Remain      hcl.Body           `hcl:",remain"`
}

type scopeBlock struct {
	Type      string           `hcl:"type,label"`
	Parent    *string          `hcl:"parent,optional"`
	Extends   hcl.Expression   `hcl:"extends,optional"`
	Access    []*accessBlock   `hcl:"access,block"`
	Children  []*childBlock    `hcl:"child,block"`
	Producers []*producerBlock `hcl:"producer,block"`
	DeclRange hcl.Range        `hcl:",def_range"`
}

type objectsBlock struct {
	Type      string           `hcl:"type,label"`
	Extends   hcl.Expression   `hcl:"extends,optional"`
	Producers []*producerBlock `hcl:"producer,block"`
	DeclRange hcl.Range        `hcl:",def_range"`
}

type accessBlock struct {
	Name      string    `hcl:"name,label"`
	Type      string    `hcl:"type"`
	DeclRange hcl.Range `hcl:",def_range"`
}

type childBlock struct {
	Name      string        `hcl:"name,label"`
	Scope     string        `hcl:"scope"`
	Params    []*paramBlock `hcl:"param,block"`
	DeclRange hcl.Range     `hcl:",def_range"`
}

type paramBlock struct {
	Name      string         `hcl:"name,label"`
	Type      string         `hcl:"type"`
	Expose    hcl.Expression `hcl:"expose,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

// producerBlock is a `producer "name" { ... }` block. Flags are kept as
// expressions so an omitted flag can be told apart from an explicit false.
type producerBlock struct {
	Name      string         `hcl:"name,label"`
	Type      string         `hcl:"type"`
	Requires  hcl.Expression `hcl:"requires,optional"`
	Cacheable hcl.Expression `hcl:"cacheable,optional"`
	Expose    hcl.Expression `hcl:"expose,optional"`
	Spread    hcl.Expression `hcl:"spread,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

type spreadableBlock struct {
	Type      string           `hcl:"type,label"`
	Accessors []*accessorBlock `hcl:"accessor,block"`
	DeclRange hcl.Range        `hcl:",def_range"`
}

type accessorBlock struct {
	Name      string         `hcl:"name,label"`
	Type      string         `hcl:"type"`
	Spread    hcl.Expression `hcl:"spread,optional"`
	Cacheable hcl.Expression `hcl:"cacheable,optional"`
	Expose    hcl.Expression `hcl:"expose,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

type externalBlock struct {
	Type      string    `hcl:"type,label"`
	DeclRange hcl.Range `hcl:",def_range"`
}
