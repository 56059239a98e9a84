package spread

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

func dep(s string) ir.Dependency { return ir.MustParseDependency(s) }

func boolPtr(b bool) *bool { return &b }

func expand(t *testing.T, decls *ir.Declarations) *scopetree.Scope {
	t.Helper()
	ctx := context.Background()
	tree, err := scopetree.Assemble(ctx, decls)
	require.NoError(t, err)
	require.NoError(t, Expand(ctx, tree, decls))
	return tree.Scopes[0]
}

func TestExpand(t *testing.T) {
	sdk := ir.NewProducer("sdk", dep("app.Sdk"))
	sdk.Spread = true
	sdk.Exposed = true

	decls := &ir.Declarations{
		Scopes: []ir.ScopeDecl{{Type: ir.NewType("S"), Producers: []ir.Producer{sdk}}},
		Spreadables: []ir.SpreadableDecl{{
			Type: ir.NewType("app.Sdk"),
			Accessors: []ir.AccessorDecl{
				{Name: "client", Provides: dep("app.Client")},
				{Name: "clock", Provides: dep("app.Clock"), Cacheable: boolPtr(false), Exposed: boolPtr(false)},
			},
		}},
	}

	s := expand(t, decls)
	require.Len(t, s.Producers, 3)

	client := s.Producers[1]
	assert.Equal(t, "sdk.client", client.Name)
	assert.True(t, client.Synthetic)
	assert.Same(t, s.Producers[0], client.SpreadOf)
	assert.Equal(t, []ir.Dependency{dep("app.Sdk")}, client.Requires)
	assert.True(t, client.Cacheable, "inherits from the spread producer")
	assert.True(t, client.Exposed, "inherits from the spread producer")
	assert.Equal(t, "S#sdk().client", client.Origin)

	clock := s.Producers[2]
	assert.False(t, clock.Cacheable, "accessor override")
	assert.False(t, clock.Exposed, "accessor override")
}

func TestExpand_Nested(t *testing.T) {
	outer := ir.NewProducer("outer", dep("Outer"))
	outer.Spread = true

	decls := &ir.Declarations{
		Scopes: []ir.ScopeDecl{{Type: ir.NewType("S"), Producers: []ir.Producer{outer}}},
		Spreadables: []ir.SpreadableDecl{
			{Type: ir.NewType("Outer"), Accessors: []ir.AccessorDecl{
				{Name: "inner", Provides: dep("Inner"), Spread: true},
			}},
			{Type: ir.NewType("Inner"), Accessors: []ir.AccessorDecl{
				{Name: "leaf", Provides: dep("Leaf")},
				// Points back at Outer; must not recurse forever.
				{Name: "back", Provides: dep("Outer"), Spread: true},
			}},
		},
	}

	s := expand(t, decls)
	var got []string
	for _, p := range s.Producers {
		got = append(got, p.Name)
	}
	assert.Equal(t, []string{"outer", "outer.inner", "outer.inner.leaf", "outer.inner.back"}, got)

	leaf := s.Producers[2]
	assert.Equal(t, []ir.Dependency{dep("Inner")}, leaf.Requires)
	assert.Equal(t, "outer.inner", leaf.SpreadOf.Name)
}

func TestExpand_HandDeclaredWins(t *testing.T) {
	sdk := ir.NewProducer("sdk", dep("Sdk"))
	sdk.Spread = true

	decls := &ir.Declarations{
		Scopes: []ir.ScopeDecl{{
			Type:      ir.NewType("S"),
			Producers: []ir.Producer{sdk, ir.NewProducer("client", dep("Client"))},
		}},
		Spreadables: []ir.SpreadableDecl{{
			Type:      ir.NewType("Sdk"),
			Accessors: []ir.AccessorDecl{{Name: "client", Provides: dep("Client")}},
		}},
	}

	s := expand(t, decls)
	lookup := s.Lookup(dep("Client").Key())
	require.Len(t, lookup, 1)
	assert.Equal(t, "client", lookup[0].Name)
	require.Len(t, s.Shadowed(dep("Client").Key()), 1)
}

func TestExpand_MissingSurface(t *testing.T) {
	sdk := ir.NewProducer("sdk", dep("Sdk"))
	sdk.Spread = true
	decls := &ir.Declarations{
		Scopes: []ir.ScopeDecl{{Type: ir.NewType("S"), Producers: []ir.Producer{sdk}}},
	}

	ctx := context.Background()
	tree, err := scopetree.Assemble(ctx, decls)
	require.NoError(t, err)
	assert.ErrorIs(t, Expand(ctx, tree, decls), ir.ErrInvalidIR)
}
