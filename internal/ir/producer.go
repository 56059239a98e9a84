package ir

import "strings"

// Producer is a declared rule that provides one Dependency from an ordered
// list of required Dependencies. The order of Requires is preserved all the
// way to cycle-path reporting.
type Producer struct {
	Name      string
	Provides  Dependency
	Requires  []Dependency
	Cacheable bool
	Exposed   bool
	// Spread promotes the accessor surface of the provided type into the
	// owning scope.
	Spread bool
}

// NewProducer returns a cacheable, unexposed producer.
func NewProducer(name string, provides Dependency, requires ...Dependency) Producer {
	return Producer{
		Name:      name,
		Provides:  provides,
		Requires:  requires,
		Cacheable: true,
	}
}

// Signature identifies a producer for override purposes: a producer declared
// by a scope replaces an inherited one with the same signature.
func (p Producer) Signature() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte('(')
	for i, r := range p.Requires {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.String())
	}
	b.WriteByte(')')
	return b.String()
}
