package resolver

import (
	"fmt"

	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

// NeedKind distinguishes where a need is declared.
type NeedKind int

const (
	// AccessNeed is a dependency the scope promises to external consumers.
	AccessNeed NeedKind = iota
	// RequirementNeed is a parameter of one of the scope's producers.
	RequirementNeed
)

// Need is one declared requirement of a scope.
type Need struct {
	Kind       NeedKind
	Dependency ir.Dependency
	// Name is the access method name for AccessNeed.
	Name string
	// Producer and Index locate the requirement for RequirementNeed.
	Producer *scopetree.Producer
	Index    int
}

// Site renders where the need is declared, e.g. "access config" or
// "producer db, requirement #1".
func (n Need) Site() string {
	if n.Kind == AccessNeed {
		return "access " + n.Name
	}
	return fmt.Sprintf("producer %s, requirement #%d", n.Producer.Name, n.Index)
}

// SourceKind is the kind of thing that satisfies a need.
type SourceKind int

const (
	NoSource SourceKind = iota
	ProducerSource
	ParamSource
	// ScopeSource is the implicit source every scope has for its own type.
	ScopeSource
)

func (k SourceKind) String() string {
	switch k {
	case ProducerSource:
		return "producer"
	case ParamSource:
		return "param"
	case ScopeSource:
		return "scope"
	default:
		return "none"
	}
}

// Source is a candidate for a need.
type Source struct {
	Kind     SourceKind
	Producer *scopetree.Producer
	Param    *scopetree.Param
	// Node is the site that owns the source. For parameters it is the
	// site the parameter is passed into.
	Node *scopetree.Node
	// Distance counts levels from the consuming site; 0 is the site itself.
	Distance int
}

// Cacheable reports whether the bound value is memoised. Parameters and the
// scope itself are fixed for the lifetime of the scope instance.
func (s Source) Cacheable() bool {
	if s.Kind == ProducerSource {
		return s.Producer.Cacheable
	}
	return s.Kind != NoSource
}

// Same reports whether two sources are the same declaration at the same site.
func (s Source) Same(o Source) bool {
	return s.Kind == o.Kind && s.Producer == o.Producer && s.Param == o.Param && s.Node == o.Node
}

// Resolution is the outcome of searching for one need at one site.
type Resolution struct {
	Node *scopetree.Node
	Need Need
	// Source is the nearest candidate, or a NoSource value.
	Source Source
	// Candidates are all visible candidates in search order.
	Candidates []Source
	// Hidden are sources that match but are not exposed to the site.
	Hidden []Source
	// HiddenNearer is set when a hidden source sits closer to the site
	// than the bound one.
	HiddenNearer bool
}

// Bound reports whether the need found a source.
func (r Resolution) Bound() bool {
	return r.Source.Kind != NoSource
}

// Ambiguous reports whether more than one candidate is visible.
func (r Resolution) Ambiguous() bool {
	return len(r.Candidates) > 1
}
