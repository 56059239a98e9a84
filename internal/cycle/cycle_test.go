package cycle

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/resolver"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

func dep(s string) ir.Dependency { return ir.MustParseDependency(s) }

func prod(name, provides string, requires ...string) ir.Producer {
	p := ir.NewProducer(name, dep(provides))
	for _, r := range requires {
		p.Requires = append(p.Requires, dep(r))
	}
	return p
}

func assemble(t *testing.T, scopes ...ir.ScopeDecl) *scopetree.Tree {
	t.Helper()
	tree, err := scopetree.Assemble(context.Background(), &ir.Declarations{Scopes: scopes})
	require.NoError(t, err)
	return tree
}

func producerNames(ps []*scopetree.Producer) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func scopeNames(ss []*scopetree.Scope) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Type.String()
	}
	return out
}

func TestDependencyCycles(t *testing.T) {
	testCases := []struct {
		name      string
		producers []ir.Producer
		want      [][]string
	}{
		{
			name:      "two producers need each other",
			producers: []ir.Producer{prod("a", "A", "B"), prod("b", "B", "A")},
			want:      [][]string{{"a", "b"}},
		},
		{
			name:      "acyclic chain",
			producers: []ir.Producer{prod("a", "A", "B"), prod("b", "B", "C"), prod("c", "C")},
			want:      nil,
		},
		{
			name:      "self requirement",
			producers: []ir.Producer{prod("a", "A", "A")},
			want:      [][]string{{"a"}},
		},
		{
			name: "independent cycles all reported",
			producers: []ir.Producer{
				prod("a", "A", "B"), prod("b", "B", "A"),
				prod("x", "X", "Y"), prod("y", "Y", "Z"), prod("z", "Z", "X"),
			},
			want: [][]string{{"a", "b"}, {"x", "y", "z"}},
		},
		{
			name:      "requirement order drives the reported path",
			producers: []ir.Producer{prod("a", "A", "C", "B"), prod("b", "B", "A"), prod("c", "C")},
			want:      [][]string{{"a", "b"}},
		},
		{
			name:      "unresolved requirement is no edge",
			producers: []ir.Producer{prod("a", "A", "Missing")},
			want:      nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := assemble(t, ir.ScopeDecl{Type: ir.NewType("S"), Producers: tc.producers})

			var got [][]string
			for _, c := range DependencyCycles(tree.Scopes[0]) {
				assert.Same(t, tree.Scopes[0], c.Scope)
				got = append(got, producerNames(c.Path))
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("DependencyCycles() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScopeCycles(t *testing.T) {
	t.Run("logical re-entry is a cycle", func(t *testing.T) {
		tree := assemble(t,
			ir.ScopeDecl{
				Type:      ir.NewType("A"),
				Producers: []ir.Producer{{Name: "s", Provides: dep("String"), Exposed: true, Cacheable: true}},
				Children:  []ir.ChildDecl{{Name: "b", Scope: ir.NewType("B")}},
			},
			ir.ScopeDecl{
				Type:      ir.NewType("B"),
				Producers: []ir.Producer{prod("x", "Foo", "String")},
				Children:  []ir.ChildDecl{{Name: "a", Scope: ir.NewType("A")}},
			},
		)

		cycles := ScopeCycles(tree, resolver.Residual(tree))
		require.Len(t, cycles, 1)
		assert.Equal(t, []string{"A", "B"}, scopeNames(cycles[0].Path))
		assert.Equal(t, []ir.Dependency{dep("String")}, cycles[0].Carried)
		require.Len(t, cycles[0].Demands, 1)
		assert.Equal(t, "B", cycles[0].Demands[0].Scope.Type.String(), "only the consuming child demands String")
		assert.Equal(t, dep("String"), cycles[0].Demands[0].Dependency)
	})

	t.Run("purely structural accessor loop is not reported", func(t *testing.T) {
		tree := assemble(t,
			ir.ScopeDecl{Type: ir.NewType("A"), Children: []ir.ChildDecl{{Name: "b", Scope: ir.NewType("B")}}},
			ir.ScopeDecl{Type: ir.NewType("B"), Children: []ir.ChildDecl{{Name: "a", Scope: ir.NewType("A")}}},
		)
		assert.Empty(t, ScopeCycles(tree, resolver.Residual(tree)))
	})

	t.Run("parameters break the logical edge", func(t *testing.T) {
		tree := assemble(t,
			ir.ScopeDecl{Type: ir.NewType("A"), Children: []ir.ChildDecl{{
				Name: "b", Scope: ir.NewType("B"),
				Params: []ir.ParamDecl{{Name: "s", Dependency: dep("String")}},
			}}},
			ir.ScopeDecl{
				Type:      ir.NewType("B"),
				Producers: []ir.Producer{prod("x", "Foo", "String")},
				Children:  []ir.ChildDecl{{Name: "a", Scope: ir.NewType("A")}},
			},
		)
		assert.Empty(t, ScopeCycles(tree, resolver.Residual(tree)))
	})

	t.Run("path starts at the root of unfolding", func(t *testing.T) {
		tree := assemble(t,
			ir.ScopeDecl{Type: ir.NewType("Root"), Children: []ir.ChildDecl{{Name: "b", Scope: ir.NewType("B")}}},
			ir.ScopeDecl{
				Type:      ir.NewType("B"),
				Producers: []ir.Producer{prod("x", "X", "Y")},
				Children:  []ir.ChildDecl{{Name: "c", Scope: ir.NewType("C")}},
			},
			ir.ScopeDecl{
				Type:      ir.NewType("C"),
				Producers: []ir.Producer{prod("y", "Y", "Z")},
				Children:  []ir.ChildDecl{{Name: "b", Scope: ir.NewType("B")}},
			},
		)
		cycles := ScopeCycles(tree, resolver.Residual(tree))
		require.Len(t, cycles, 1)
		assert.Equal(t, []string{"B", "C"}, scopeNames(cycles[0].Path))
	})
}
