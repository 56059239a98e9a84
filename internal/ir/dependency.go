package ir

import "strings"

// QualifierValue is one key/literal pair of a qualifier. Literal keeps the
// source text of the value, so strings carry their quotes.
type QualifierValue struct {
	Key     string
	Literal string
}

// Qualifier tags a Type. Two qualifiers are equal iff the kind and every
// key/literal pair match in order. A nil *Qualifier (absent) is distinct
// from a qualifier with no values.
type Qualifier struct {
	Kind   string
	Values []QualifierValue
}

// Equal compares two possibly-nil qualifiers.
func (q *Qualifier) Equal(o *Qualifier) bool {
	if q == nil || o == nil {
		return q == nil && o == nil
	}
	if q.Kind != o.Kind || len(q.Values) != len(o.Values) {
		return false
	}
	for i := range q.Values {
		if q.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

// String renders "@Kind(key=literal, ...)", or "@Kind" when there are no values.
func (q *Qualifier) String() string {
	if q == nil {
		return ""
	}
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(q.Kind)
	if len(q.Values) == 0 {
		return b.String()
	}
	b.WriteByte('(')
	for i, v := range q.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Key)
		b.WriteByte('=')
		b.WriteString(v.Literal)
	}
	b.WriteByte(')')
	return b.String()
}

// Key is the canonical notation of a Dependency. It is comparable and is
// used as the map key for dependencies everywhere.
type Key string

// Dependency is the unit of matching between a need and a producer.
type Dependency struct {
	Type      Type
	Qualifier *Qualifier
}

// NewDependency is a convenience for an unqualified dependency.
func NewDependency(t Type) Dependency {
	return Dependency{Type: t}
}

// Key returns the canonical notation.
func (d Dependency) Key() Key {
	return Key(d.String())
}

// Equal reports structural equality of type and qualifier.
func (d Dependency) Equal(o Dependency) bool {
	return d.Type.Equal(o.Type) && d.Qualifier.Equal(o.Qualifier)
}

func (d Dependency) String() string {
	if d.Qualifier == nil {
		return d.Type.String()
	}
	return d.Qualifier.String() + " " + d.Type.String()
}

// SimpleString is String with simple type names; the qualifier is kept as is.
func (d Dependency) SimpleString() string {
	if d.Qualifier == nil {
		return d.Type.SimpleName()
	}
	return d.Qualifier.String() + " " + d.Type.SimpleName()
}
