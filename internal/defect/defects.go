package defect

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/scopegraph/internal/ir"
)

// MissingDependency: no source is visible for a need.
type MissingDependency struct {
	naming
	Scope      ir.Type
	Dependency ir.Dependency
	RequiredBy []string
	// Hidden lists matching sources that are not exposed to the scope.
	Hidden []Ref
}

func (d *MissingDependency) Kind() Kind       { return MissingDependencyKind }
func (d *MissingDependency) Primary() ir.Type { return d.Scope }
func (d *MissingDependency) Subjects() []Subject {
	return []Subject{{Scope: d.Scope.String(), Dependency: d.Dependency.Key()}}
}

func (d *MissingDependency) Error() string { return d.render(d.naming) }

func (d *MissingDependency) render(n naming) string {
	msg := fmt.Sprintf("%s: scope %s: no visible producer for %s, required by %s",
		d.Kind(), n.typ(d.Scope), n.dep(d.Dependency), joinList(d.RequiredBy))
	if len(d.Hidden) > 0 {
		msg += ", not exposed: " + n.refs(d.Hidden)
	}
	return msg
}

func (d *MissingDependency) mentions() []ir.Type {
	out := []ir.Type{d.Scope, d.Dependency.Type}
	return append(out, refTypes(d.Hidden...)...)
}

// DependencyCycle: producers of one scope require each other.
type DependencyCycle struct {
	naming
	Scope ir.Type
	Path  []Ref
}

func (d *DependencyCycle) Kind() Kind       { return DependencyCycleKind }
func (d *DependencyCycle) Primary() ir.Type { return d.Scope }
func (d *DependencyCycle) Subjects() []Subject {
	out := make([]Subject, 0, len(d.Path))
	for _, p := range d.Path {
		out = append(out, Subject{Scope: d.Scope.String(), Dependency: p.Provides.Key()})
	}
	return out
}

// Names returns the producer names along the cycle.
func (d *DependencyCycle) Names() []string {
	out := make([]string, 0, len(d.Path))
	for _, p := range d.Path {
		out = append(out, p.Name)
	}
	return out
}

func (d *DependencyCycle) Error() string { return d.render(d.naming) }

func (d *DependencyCycle) render(n naming) string {
	names := d.Names()
	return fmt.Sprintf("%s: scope %s: %s -> %s",
		d.Kind(), n.typ(d.Scope), strings.Join(names, " -> "), names[0])
}

func (d *DependencyCycle) mentions() []ir.Type { return []ir.Type{d.Scope} }

// Demand is a dependency a scope on a cycle expects from the scope that
// creates it.
type Demand struct {
	Scope      ir.Type
	Dependency ir.Dependency
}

// ScopeCycle: child accessors form a loop and at least one scope on it
// needs something from the scope that creates it.
type ScopeCycle struct {
	naming
	Path    []ir.Type
	Carried []ir.Dependency
	// Demands pair each carried dependency with the child scope that
	// consumes it across a logical edge of the cycle.
	Demands []Demand
}

func (d *ScopeCycle) Kind() Kind       { return ScopeCycleKind }
func (d *ScopeCycle) Primary() ir.Type { return d.Path[0] }

// Subjects are the consuming scopes of the logical edges only; other scopes
// on the path keep their own defects.
func (d *ScopeCycle) Subjects() []Subject {
	out := make([]Subject, 0, len(d.Demands))
	for _, dm := range d.Demands {
		out = append(out, Subject{Scope: dm.Scope.String(), Dependency: dm.Dependency.Key()})
	}
	return out
}

// Names returns the simple scope names along the cycle.
func (d *ScopeCycle) Names() []string {
	out := make([]string, 0, len(d.Path))
	for _, t := range d.Path {
		out = append(out, t.SimpleName())
	}
	return out
}

func (d *ScopeCycle) Error() string { return d.render(d.naming) }

func (d *ScopeCycle) render(n naming) string {
	names := make([]string, 0, len(d.Path))
	for _, t := range d.Path {
		names = append(names, n.typ(t))
	}
	carried := make([]string, 0, len(d.Carried))
	for _, c := range d.Carried {
		carried = append(carried, n.dep(c))
	}
	return fmt.Sprintf("%s: %s -> %s, carrying %s",
		d.Kind(), strings.Join(names, " -> "), names[0], joinList(carried))
}

func (d *ScopeCycle) mentions() []ir.Type {
	out := append([]ir.Type(nil), d.Path...)
	for _, c := range d.Carried {
		out = append(out, c.Type)
	}
	return out
}

// DuplicateProducer: more than one distinct source is visible for a
// dependency.
type DuplicateProducer struct {
	naming
	Scope      ir.Type
	Dependency ir.Dependency
	Offending  Ref
	Existing   []Ref
	// Local is set when the colliding producers belong to Scope itself. Such
	// a collision stands on its own and is never shadowed by another kind.
	Local bool
}

func (d *DuplicateProducer) Kind() Kind       { return DuplicateProducerKind }
func (d *DuplicateProducer) Primary() ir.Type { return d.Scope }
func (d *DuplicateProducer) Subjects() []Subject {
	return []Subject{{Scope: d.Scope.String(), Dependency: d.Dependency.Key()}}
}

func (d *DuplicateProducer) Error() string { return d.render(d.naming) }

func (d *DuplicateProducer) render(n naming) string {
	return fmt.Sprintf("%s: scope %s: %s from %s collides with %s",
		d.Kind(), n.typ(d.Scope), n.dep(d.Dependency), n.ref(d.Offending), n.refs(d.Existing))
}

func (d *DuplicateProducer) mentions() []ir.Type {
	out := []ir.Type{d.Scope, d.Dependency.Type, d.Offending.Scope}
	return append(out, refTypes(d.Existing...)...)
}

// NotExposed: a need was satisfied further out, but a nearer ancestor has a
// matching source that it does not expose.
type NotExposed struct {
	naming
	Scope      ir.Type
	Dependency ir.Dependency
	Hidden     Ref
	BoundTo    Ref
	RequiredBy []string
}

func (d *NotExposed) Kind() Kind       { return NotExposedKind }
func (d *NotExposed) Primary() ir.Type { return d.Scope }
func (d *NotExposed) Subjects() []Subject {
	return []Subject{{Scope: d.Scope.String(), Dependency: d.Dependency.Key()}}
}

func (d *NotExposed) Error() string { return d.render(d.naming) }

func (d *NotExposed) render(n naming) string {
	return fmt.Sprintf("%s: scope %s: %s is provided by %s but not exposed, bound to %s instead, required by %s",
		d.Kind(), n.typ(d.Scope), n.dep(d.Dependency), n.ref(d.Hidden), n.ref(d.BoundTo), joinList(d.RequiredBy))
}

func (d *NotExposed) mentions() []ir.Type {
	return []ir.Type{d.Scope, d.Dependency.Type, d.Hidden.Scope, d.BoundTo.Scope}
}

// UnprocessedScope: a referenced scope has no IR.
type UnprocessedScope struct {
	naming
	Referrer ir.Type
	Target   ir.Type
	// Via is the accessor name, or "parent" / "extends".
	Via      string
	External bool
	// Suppressed counts dependent defects withheld because of this one.
	Suppressed int
}

func (d *UnprocessedScope) Kind() Kind       { return UnprocessedScopeKind }
func (d *UnprocessedScope) Primary() ir.Type { return d.Referrer }
func (d *UnprocessedScope) Subjects() []Subject {
	return []Subject{{Scope: d.Target.String()}}
}

func (d *UnprocessedScope) Error() string { return d.render(d.naming) }

// render leaves out the suppression count, which is bookkeeping rather than
// part of the defect's identity.
func (d *UnprocessedScope) render(n naming) string {
	via := "accessor " + d.Via
	if d.Via == "parent" || d.Via == "extends" {
		via = d.Via
	}
	msg := fmt.Sprintf("%s: scope %s references %s via %s, which has no IR",
		d.Kind(), n.typ(d.Referrer), d.Target.String(), via)
	if d.External {
		msg += " (external)"
	}
	if d.Suppressed > 0 && !n.identity {
		msg += fmt.Sprintf(", %d dependent defect(s) suppressed", d.Suppressed)
	}
	return msg
}

func (d *UnprocessedScope) mentions() []ir.Type { return []ir.Type{d.Referrer, d.Target} }

func joinList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

func refTypes(refs ...Ref) []ir.Type {
	out := make([]ir.Type, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Scope)
	}
	return out
}
