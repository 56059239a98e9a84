package scopetree

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/scopegraph/internal/ir"
)

func typ(s string) ir.Type { return ir.MustParseType(s) }
func dep(s string) ir.Dependency { return ir.MustParseDependency(s) }

func typPtr(s string) *ir.Type {
	t := typ(s)
	return &t
}

func prod(name, provides string, requires ...string) ir.Producer {
	p := ir.NewProducer(name, dep(provides))
	for _, r := range requires {
		p.Requires = append(p.Requires, dep(r))
	}
	return p
}

func paths(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path
	}
	return out
}

func names(ps []*Producer) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestAssemble_PreOrderUnfolding(t *testing.T) {
	decls := &ir.Declarations{
		Scopes: []ir.ScopeDecl{
			{Type: typ("app.Root"), Children: []ir.ChildDecl{
				{Name: "a", Scope: typ("app.A")},
				{Name: "b", Scope: typ("app.B")},
			}},
			{Type: typ("app.A"), Children: []ir.ChildDecl{{Name: "leaf", Scope: typ("app.Leaf")}}},
			{Type: typ("app.B"), Children: []ir.ChildDecl{{Name: "leaf", Scope: typ("app.Leaf")}}},
			{Type: typ("app.Leaf")},
		},
	}

	tree, err := Assemble(context.Background(), decls)
	require.NoError(t, err)

	require.Len(t, tree.Roots, 1)
	assert.Equal(t, []string{
		"Root",
		"Root/a:A",
		"Root/a:A/leaf:Leaf",
		"Root/b:B",
		"Root/b:B/leaf:Leaf",
	}, paths(tree.Nodes))
	for i, n := range tree.Nodes {
		assert.Equal(t, i, n.Index)
	}
	assert.Empty(t, tree.Unprocessed)
	assert.Len(t, tree.Scope(typ("app.Leaf")).Parents, 2)
}

func TestAssemble_AccessorCycleBecomesBackReference(t *testing.T) {
	decls := &ir.Declarations{
		Scopes: []ir.ScopeDecl{
			{Type: typ("A"), Children: []ir.ChildDecl{{Name: "b", Scope: typ("B")}}},
			{Type: typ("B"), Children: []ir.ChildDecl{{Name: "a", Scope: typ("A")}}},
		},
	}

	tree, err := Assemble(context.Background(), decls)
	require.NoError(t, err)

	require.Len(t, tree.Roots, 1, "the first declared scope of a parentless cycle becomes the root")
	assert.Equal(t, []string{"A", "A/b:B", "A/b:B/a:A"}, paths(tree.Nodes))
	assert.False(t, tree.Nodes[1].BackReference)
	assert.True(t, tree.Nodes[2].BackReference)
	assert.Empty(t, tree.Nodes[2].Children)
}

func TestAssemble_ParentDeclaration(t *testing.T) {
	decls := &ir.Declarations{
		Scopes: []ir.ScopeDecl{
			{Type: typ("Root")},
			{Type: typ("Child"), Parent: typPtr("Root")},
			{Type: typ("Lost"), Parent: typPtr("Nowhere")},
		},
	}

	tree, err := Assemble(context.Background(), decls)
	require.NoError(t, err)

	assert.Equal(t, []string{"Root", "Root/Child", "Lost"}, paths(tree.Nodes))
	edge := tree.Scope(typ("Root")).Children[0]
	assert.False(t, edge.Declared)
	assert.Empty(t, edge.Name)

	lost := tree.Scope(typ("Lost"))
	assert.True(t, lost.Orphaned)
	require.Len(t, tree.Unprocessed, 1)
	assert.Equal(t, Unprocessed{Referrer: typ("Lost"), Target: typ("Nowhere"), Via: "parent"}, tree.Unprocessed[0])
	assert.True(t, tree.IsUnprocessed(typ("Nowhere")))
}

func TestAssemble_UnprocessedAccessorTarget(t *testing.T) {
	decls := &ir.Declarations{
		Scopes: []ir.ScopeDecl{
			{Type: typ("Root"), Children: []ir.ChildDecl{{Name: "ext", Scope: typ("lib.Prebuilt")}}},
		},
		External: []ir.Type{typ("lib.Prebuilt")},
	}

	tree, err := Assemble(context.Background(), decls)
	require.NoError(t, err)

	require.Len(t, tree.Unprocessed, 1)
	u := tree.Unprocessed[0]
	assert.Equal(t, "ext", u.Via)
	assert.True(t, u.Known)
	assert.True(t, tree.MentionsUnprocessed(dep("java.util.List<lib.Prebuilt>")))
	assert.False(t, tree.MentionsUnprocessed(dep("Other")))
	assert.Equal(t, []string{"Root"}, paths(tree.Nodes))
}

func TestAssemble_InheritanceMerge(t *testing.T) {
	decls := &ir.Declarations{
		Objects: []ir.ObjectsDecl{
			{Type: typ("Base"), Producers: []ir.Producer{prod("cfg", "Config"), prod("log", "Logger")}},
			{Type: typ("Left"), Extends: []ir.Type{typ("Base")}, Producers: []ir.Producer{prod("left", "L")}},
			{Type: typ("Right"), Extends: []ir.Type{typ("Base")}, Producers: []ir.Producer{prod("right", "R")}},
		},
		Scopes: []ir.ScopeDecl{{
			Type:      typ("S"),
			Extends:   []ir.Type{typ("Left"), typ("Right")},
			Producers: []ir.Producer{prod("log", "Logger"), prod("own", "O")},
		}},
	}

	tree, err := Assemble(context.Background(), decls)
	require.NoError(t, err)

	s := tree.Scope(typ("S"))
	assert.Equal(t, []string{"cfg", "log", "left", "right", "own"}, names(s.Producers),
		"diamond producers appear once and the override keeps the inherited position")
	assert.Equal(t, "S#log()", s.Producers[1].Origin)
	assert.Equal(t, "Base#cfg()", s.Producers[0].Origin)
	for i, p := range s.Producers {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, "S", p.Scope.String())
	}
}

func TestAssemble_InheritanceErrors(t *testing.T) {
	t.Run("missing base is unprocessed", func(t *testing.T) {
		decls := &ir.Declarations{
			Scopes: []ir.ScopeDecl{{Type: typ("S"), Extends: []ir.Type{typ("lib.Base")}}},
		}
		tree, err := Assemble(context.Background(), decls)
		require.NoError(t, err)
		require.Len(t, tree.Unprocessed, 1)
		assert.Equal(t, "extends", tree.Unprocessed[0].Via)
	})

	t.Run("inheritance cycle is a contract error", func(t *testing.T) {
		decls := &ir.Declarations{
			Objects: []ir.ObjectsDecl{
				{Type: typ("X"), Extends: []ir.Type{typ("Y")}},
				{Type: typ("Y"), Extends: []ir.Type{typ("X")}},
			},
			Scopes: []ir.ScopeDecl{{Type: typ("S"), Extends: []ir.Type{typ("X")}}},
		}
		_, err := Assemble(context.Background(), decls)
		assert.ErrorIs(t, err, ir.ErrInvalidIR)
		assert.ErrorContains(t, err, "inheritance cycle")
	})
}

func TestScope_LookupPrecedence(t *testing.T) {
	s := &Scope{Type: typ("S")}
	synthetic := &Producer{Name: "sdk.client", Provides: dep("Client"), Synthetic: true}
	declared := &Producer{Name: "client", Provides: dep("Client")}
	onlySynthetic := &Producer{Name: "sdk.auth", Provides: dep("Auth"), Synthetic: true}
	s.Add(synthetic)
	s.Add(declared)
	s.Add(onlySynthetic)

	assert.Equal(t, []*Producer{declared}, s.Lookup(dep("Client").Key()))
	assert.Equal(t, []*Producer{synthetic}, s.Shadowed(dep("Client").Key()))
	assert.Equal(t, []*Producer{onlySynthetic}, s.Lookup(dep("Auth").Key()))
	assert.Nil(t, s.Shadowed(dep("Auth").Key()))
	assert.Equal(t, []ir.Key{"Client", "Auth"}, s.Keys())
}

// diamond declares levels scopes where each level reaches the next through
// two accessors, so the tree unfolds into 2^levels - 1 sites.
func diamond(levels int) *ir.Declarations {
	decls := &ir.Declarations{}
	for i := 0; i < levels; i++ {
		sd := ir.ScopeDecl{Type: typ(fmt.Sprintf("d.L%d", i))}
		if i+1 < levels {
			next := typ(fmt.Sprintf("d.L%d", i+1))
			sd.Children = []ir.ChildDecl{{Name: "x", Scope: next}, {Name: "y", Scope: next}}
		}
		decls.Scopes = append(decls.Scopes, sd)
	}
	return decls
}

func TestAssemble_SiteLimit(t *testing.T) {
	decls := diamond(12)

	tree, err := Assemble(context.Background(), decls)
	require.NoError(t, err)
	assert.Len(t, tree.Nodes, 1<<12-1)

	_, err = AssembleLimited(context.Background(), decls, 1000)
	require.ErrorIs(t, err, ErrTooManySites)
	assert.NotErrorIs(t, err, ir.ErrInvalidIR, "a well-formed graph is not a contract violation")
}
