package duplicate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/resolver"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

func dep(s string) ir.Dependency { return ir.MustParseDependency(s) }

func names(srcs []resolver.Source) []string {
	out := make([]string, len(srcs))
	for i, s := range srcs {
		out[i] = s.Producer.Name
	}
	return out
}

func TestStatic(t *testing.T) {
	decls := &ir.Declarations{Scopes: []ir.ScopeDecl{{
		Type: ir.NewType("S"),
		Producers: []ir.Producer{
			ir.NewProducer("sa", dep("String")),
			ir.NewProducer("sb", dep("String")),
			ir.NewProducer("sc", dep("String")),
			ir.NewProducer("n", dep(`@Named("x") String`)),
		},
	}}}
	tree, err := scopetree.Assemble(context.Background(), decls)
	require.NoError(t, err)

	groups := Static(tree.Scopes[0])
	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, dep("String"), g.Dependency)
	assert.True(t, g.Static)
	assert.Equal(t, "sc", g.Offending().Producer.Name)
	assert.Equal(t, []string{"sa", "sb"}, names(g.Existing()), "all N-1 pre-existing producers are listed")
}

func TestCollect_IsSymmetric(t *testing.T) {
	s := &scopetree.Scope{Type: ir.NewType("S")}
	sa := &scopetree.Producer{Name: "sa", Origin: "S#sa()", Provides: dep("String")}
	sb := &scopetree.Producer{Name: "sb", Origin: "S#sb()", Provides: dep("String")}
	s.Add(sa)
	s.Add(sb)

	ab := Group{Scope: s, Dependency: dep("String"), Candidates: []resolver.Source{
		{Kind: resolver.ProducerSource, Producer: sa},
		{Kind: resolver.ProducerSource, Producer: sb},
	}}
	ba := Group{Scope: s, Dependency: dep("String"), Candidates: []resolver.Source{
		{Kind: resolver.ProducerSource, Producer: sb},
		{Kind: resolver.ProducerSource, Producer: sa},
	}}

	got := Collect([]Group{ab}, []Group{ba, ab})
	require.Len(t, got, 1)
	assert.Equal(t, "sb", got[0].Offending().Producer.Name)
}

func TestFromResolution(t *testing.T) {
	_, ok := FromResolution(resolver.Resolution{Candidates: []resolver.Source{{Kind: resolver.ProducerSource}}})
	assert.False(t, ok)
}

func TestIdentity(t *testing.T) {
	p := &scopetree.Producer{Scope: ir.NewType("S"), Origin: "Base#cfg()"}
	assert.Equal(t, "S#Base#cfg()", Identity(resolver.Source{Kind: resolver.ProducerSource, Producer: p}))

	other := &scopetree.Producer{Scope: ir.NewType("T"), Origin: "Base#cfg()"}
	assert.NotEqual(t,
		Identity(resolver.Source{Kind: resolver.ProducerSource, Producer: p}),
		Identity(resolver.Source{Kind: resolver.ProducerSource, Producer: other}),
		"the same inherited declaration in two scopes is two producers")
}
