package defect

import (
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// Kind is a defect kind. Lower values take precedence when two defects
// describe the same subject.
type Kind int

const (
	UnprocessedScopeKind Kind = iota
	ScopeCycleKind
	DependencyCycleKind
	DuplicateProducerKind
	MissingDependencyKind
	NotExposedKind
)

func (k Kind) String() string {
	switch k {
	case UnprocessedScopeKind:
		return "UnprocessedScope"
	case ScopeCycleKind:
		return "ScopeCycle"
	case DependencyCycleKind:
		return "DependencyCycle"
	case DuplicateProducerKind:
		return "DuplicateProducer"
	case MissingDependencyKind:
		return "MissingDependency"
	case NotExposedKind:
		return "NotExposed"
	default:
		return "Unknown"
	}
}

// Subject is a (scope, dependency) pair a defect is about. An empty
// Dependency means the scope as a whole.
type Subject struct {
	Scope      string
	Dependency ir.Key
}

// Defect is a structural problem in the declarations.
type Defect interface {
	error
	Kind() Kind
	// Primary is the canonical type of the scope the defect is reported on.
	Primary() ir.Type
	Subjects() []Subject
}

// RefKind tells what a Ref points at.
type RefKind int

const (
	ProducerRef RefKind = iota
	ParamRef
	ScopeRef
)

// Ref names a source of a dependency in rendered output.
type Ref struct {
	Kind RefKind
	// Scope owns the producer; for parameters it is the scope whose
	// accessor passes the parameter.
	Scope ir.Type
	// Name is the producer name, or "accessor(param)" for parameters.
	Name     string
	Provides ir.Dependency
}

func (r Ref) String() string {
	switch r.Kind {
	case ScopeRef:
		return r.Scope.SimpleName() + " (scope)"
	case ParamRef:
		return r.Scope.SimpleName() + "." + r.Name + " (param)"
	default:
		return r.Scope.SimpleName() + "." + r.Name
	}
}
