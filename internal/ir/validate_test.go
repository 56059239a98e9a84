package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	decls := &Declarations{
		Scopes: []ScopeDecl{{
			Type: MustParseType("app.Root"),
			Producers: []Producer{
				NewProducer("cfg", MustParseDependency("app.Config")),
				{Name: "sdk", Provides: MustParseDependency("app.Sdk"), Spread: true, Cacheable: true},
			},
			Access:   []AccessDecl{{Name: "config", Dependency: MustParseDependency("app.Config")}},
			Children: []ChildDecl{{Name: "child", Scope: MustParseType("app.Child")}},
		}, {
			Type: MustParseType("app.Child"),
		}},
		Spreadables: []SpreadableDecl{{
			Type:      MustParseType("app.Sdk"),
			Accessors: []AccessorDecl{{Name: "client", Provides: MustParseDependency("app.Client")}},
		}},
	}
	require.NoError(t, Validate(decls))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	decls := &Declarations{
		Scopes: []ScopeDecl{
			{
				Type: MustParseType("app.Root"),
				Producers: []Producer{
					NewProducer("", MustParseDependency("A")),
					NewProducer("a", MustParseDependency("A")),
					NewProducer("a", MustParseDependency("A")),
					{Name: "s", Provides: MustParseDependency("app.NoSurface"), Spread: true},
				},
				Children: []ChildDecl{{Name: "c"}},
			},
			{Type: MustParseType("app.Root")},
		},
		Objects:  []ObjectsDecl{{Type: MustParseType("app.Root")}},
		External: []Type{{}},
	}

	err := Validate(decls)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIR)

	msg := err.Error()
	assert.Contains(t, msg, "producer #0 (): empty name")
	assert.Contains(t, msg, "producer #2 (a): declared more than once")
	assert.Contains(t, msg, "spread type app.NoSurface has no declared accessor surface")
	assert.Contains(t, msg, "child #0 (c): empty target scope type")
	assert.Contains(t, msg, "scope app.Root: already declared as scope")
	assert.Contains(t, msg, "objects app.Root: already declared as scope")
	assert.Contains(t, msg, "external #0: empty type")
}

func TestValidate_Nil(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrInvalidIR)
}

func TestDeclarations_Merge(t *testing.T) {
	a := &Declarations{Scopes: []ScopeDecl{{Type: NewType("A")}}}
	b := &Declarations{Scopes: []ScopeDecl{{Type: NewType("B")}}, External: []Type{NewType("X")}}
	a.Merge(b)
	a.Merge(nil)

	require.Len(t, a.Scopes, 2)
	assert.Equal(t, "B", a.Scopes[1].Type.String())
	assert.True(t, a.IsExternal(NewType("X")))
	_, ok := a.FindScope(NewType("B"))
	assert.True(t, ok)
}
