package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want Type
		str  string
	}{
		{
			name: "simple",
			in:   "java.lang.String",
			want: NewType("java.lang.String"),
			str:  "java.lang.String",
		},
		{
			name: "nested generics with spacing",
			in:   "  java.util.Map< String ,java.util.List<a.Foo>> ",
			want: NewType("java.util.Map", NewType("String"), NewType("java.util.List", NewType("a.Foo"))),
			str:  "java.util.Map<String, java.util.List<a.Foo>>",
		},
		{
			name: "array suffix",
			in:   "kotlin.Array<byte[]>",
			want: NewType("kotlin.Array", NewType("byte[]")),
			str:  "kotlin.Array<byte[]>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseType(tc.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseType() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.str, got.String())
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	for _, in := range []string{"", "<A>", "A<", "A<B", "A<B,>", "a..B", "a.", "A B", "1A"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseType(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParseDependency(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		key  Key
	}{
		{name: "unqualified", in: "String", key: "String"},
		{name: "positional string", in: `@Named("p") String`, key: `@Named(value="p") String`},
		{name: "marker qualifier", in: "@Blue  a.Thing", key: "@Blue a.Thing"},
		{name: "empty parens", in: "@Blue() a.Thing", key: "@Blue a.Thing"},
		{name: "keyed values", in: `@Q(a = 1, b=Color.RED, c="x y") T`, key: `@Q(a=1, b=Color.RED, c="x y") T`},
		{name: "bareword positional", in: "@Named(FOO) T", key: "@Named(value=FOO) T"},
		{name: "escapes are canonical", in: `@Named("a\x41") T`, key: `@Named(value="aA") T`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDependency(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.key, d.Key())

			again, err := ParseDependency(string(d.Key()))
			require.NoError(t, err)
			assert.True(t, d.Equal(again), "canonical form must parse back to the same dependency")
		})
	}
}

func TestParseDependency_Errors(t *testing.T) {
	for _, in := range []string{
		"@ String",
		`@Named("x" String`,
		`@Named("x", "y") String`,
		`@Named(a=1, a=2) String`,
		`@Named("unterminated) String`,
		"@Named(=) String",
		"@Named",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDependency(in)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestQualifierEquality(t *testing.T) {
	plain := MustParseDependency("String")
	empty := MustParseDependency("@Named String")
	p := MustParseDependency(`@Named("p") String`)
	q := MustParseDependency(`@Named("q") String`)

	assert.False(t, plain.Equal(empty), "absent qualifier differs from an empty one")
	assert.False(t, p.Equal(q))
	assert.True(t, p.Equal(MustParseDependency(`@Named(value="p") String`)))
	assert.NotEqual(t, plain.Key(), empty.Key())
}

func TestSimpleNames(t *testing.T) {
	d := MustParseDependency(`@Named("p") java.util.List<com.example.Foo>`)
	assert.Equal(t, `@Named(value="p") List<Foo>`, d.SimpleString())
	assert.True(t, d.Type.Mentions("com.example.Foo"))
	assert.False(t, d.Type.Mentions("Foo"))
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParseType("A<") })
	assert.Panics(t, func() { MustParseDependency("@") })
}
