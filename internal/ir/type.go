package ir

import "strings"

// Type is a fully-qualified type name plus its ordered type arguments.
// Equality is structural.
type Type struct {
	Name string
	Args []Type
}

// NewType builds a Type from a qualified name and its arguments.
func NewType(name string, args ...Type) Type {
	return Type{Name: name, Args: args}
}

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool {
	return t.Name == ""
}

// Equal reports structural equality.
func (t Type) Equal(o Type) bool {
	if t.Name != o.Name || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Mentions reports whether name appears anywhere in t, including its type
// arguments.
func (t Type) Mentions(name string) bool {
	if t.Name == name {
		return true
	}
	for _, a := range t.Args {
		if a.Mentions(name) {
			return true
		}
	}
	return false
}

// String returns the canonical notation, e.g. "java.util.List<java.lang.String>".
func (t Type) String() string {
	var b strings.Builder
	writeType(&b, t, false)
	return b.String()
}

// SimpleName drops package qualifiers at every level, e.g. "List<String>".
func (t Type) SimpleName() string {
	var b strings.Builder
	writeType(&b, t, true)
	return b.String()
}

func writeType(b *strings.Builder, t Type, simple bool) {
	name := t.Name
	if simple {
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
	}
	b.WriteString(name)
	if len(t.Args) == 0 {
		return
	}
	b.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		writeType(b, a, simple)
	}
	b.WriteByte('>')
}
