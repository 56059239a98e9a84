package validator

import (
	"slices"

	"github.com/specialistvlad/scopegraph/internal/cycle"
	"github.com/specialistvlad/scopegraph/internal/defect"
	"github.com/specialistvlad/scopegraph/internal/duplicate"
	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/specialistvlad/scopegraph/internal/resolver"
	"github.com/specialistvlad/scopegraph/internal/scopetree"
)

type missingKey struct {
	scope string
	dep   ir.Key
}

type notExposedKey struct {
	scope  string
	dep    ir.Key
	hidden string
}

// suppressKey identifies a defect that an unprocessed scope explains.
type suppressKey struct {
	kind  defect.Kind
	scope string
	dep   ir.Key
}

// collector turns analysis results into defects. Missing and not-exposed
// defects from different sites of the same scope are merged.
type collector struct {
	tree    *scopetree.Tree
	defects []defect.Defect

	unprocessedDefects []*defect.UnprocessedScope

	missing      map[missingKey]*defect.MissingDependency
	missingOrder []*defect.MissingDependency
	hiddenSeen   map[missingKey]map[string]bool

	notExposed      map[notExposedKey]*defect.NotExposed
	notExposedOrder []*defect.NotExposed

	suppressed      map[suppressKey]*defect.UnprocessedScope
	suppressedOrder []suppressKey
}

func newCollector(tree *scopetree.Tree) *collector {
	return &collector{
		tree:       tree,
		missing:    make(map[missingKey]*defect.MissingDependency),
		hiddenSeen: make(map[missingKey]map[string]bool),
		notExposed: make(map[notExposedKey]*defect.NotExposed),
		suppressed: make(map[suppressKey]*defect.UnprocessedScope),
	}
}

func (c *collector) unprocessed() {
	for _, u := range c.tree.Unprocessed {
		d := &defect.UnprocessedScope{
			Referrer: u.Referrer,
			Target:   u.Target,
			Via:      u.Via,
			External: u.Known,
		}
		c.unprocessedDefects = append(c.unprocessedDefects, d)
		c.defects = append(c.defects, d)
	}
}

func (c *collector) scopeCycles(cycles []cycle.ScopeCycle) {
	for _, sc := range cycles {
		d := &defect.ScopeCycle{Carried: sc.Carried}
		for _, s := range sc.Path {
			d.Path = append(d.Path, s.Type)
		}
		for _, dm := range sc.Demands {
			d.Demands = append(d.Demands, defect.Demand{Scope: dm.Scope.Type, Dependency: dm.Dependency})
		}
		c.defects = append(c.defects, d)
	}
}

func (c *collector) dependencyCycles(cycles []cycle.DependencyCycle) {
	for _, dc := range cycles {
		d := &defect.DependencyCycle{Scope: dc.Scope.Type}
		for _, p := range dc.Path {
			d.Path = append(d.Path, producerRef(p))
		}
		c.defects = append(c.defects, d)
	}
}

func (c *collector) duplicates(a *analysis) {
	var fromResolution []duplicate.Group
	for _, rs := range a.resolutions {
		for _, r := range rs {
			if g, ok := duplicate.FromResolution(r); ok {
				fromResolution = append(fromResolution, g)
			}
		}
	}
	groups := duplicate.Collect(append(slices.Clone(a.static), fromResolution)...)
	for _, g := range groups {
		d := &defect.DuplicateProducer{
			Scope:      g.Scope.Type,
			Dependency: g.Dependency,
			Offending:  sourceRef(g.Offending()),
			Local:      g.Static,
		}
		for _, e := range g.Existing() {
			d.Existing = append(d.Existing, sourceRef(e))
		}
		c.defects = append(c.defects, d)
	}
}

func (c *collector) resolutions(rs []resolver.Resolution) {
	for _, r := range rs {
		switch {
		case !r.Bound():
			if !c.suppressInSubtree(r, defect.MissingDependencyKind) {
				c.addMissing(r)
			}
		case r.HiddenNearer:
			if !c.suppressInSubtree(r, defect.NotExposedKind) {
				c.addNotExposed(r)
			}
		}
	}
}

// suppressInSubtree records r against the nearest unprocessed scope on its
// site's ancestor path and reports whether one was found. A scope whose
// parent has no IR cannot see its real ancestors, and neither can anything
// it creates. A base without IR hides producers from the extending scope
// and its descendants, which only matters for missing dependencies.
func (c *collector) suppressInSubtree(r resolver.Resolution, kind defect.Kind) bool {
	missing := kind == defect.MissingDependencyKind
	for cur := r.Node; cur != nil; cur = cur.Parent {
		for _, u := range c.unprocessedDefects {
			if !u.Referrer.Equal(cur.Scope.Type) {
				continue
			}
			if u.Via != "parent" && !(missing && u.Via == "extends") {
				continue
			}
			key := suppressKey{kind: kind, scope: r.Node.Scope.Type.String(), dep: r.Need.Dependency.Key()}
			if _, ok := c.suppressed[key]; !ok {
				c.suppressed[key] = u
				c.suppressedOrder = append(c.suppressedOrder, key)
			}
			return true
		}
	}
	return false
}

func (c *collector) addMissing(r resolver.Resolution) {
	scope := r.Node.Scope.Type
	key := missingKey{scope: scope.String(), dep: r.Need.Dependency.Key()}
	d, ok := c.missing[key]
	if !ok {
		d = &defect.MissingDependency{Scope: scope, Dependency: r.Need.Dependency}
		c.missing[key] = d
		c.missingOrder = append(c.missingOrder, d)
		c.hiddenSeen[key] = make(map[string]bool)
	}
	site := r.Need.Site()
	if !slices.Contains(d.RequiredBy, site) {
		d.RequiredBy = append(d.RequiredBy, site)
	}
	for _, h := range r.Hidden {
		id := duplicate.Identity(h)
		if c.hiddenSeen[key][id] {
			continue
		}
		c.hiddenSeen[key][id] = true
		d.Hidden = append(d.Hidden, sourceRef(h))
	}
}

func (c *collector) addNotExposed(r resolver.Resolution) {
	var hidden resolver.Source
	for _, h := range r.Hidden {
		if h.Distance < r.Source.Distance {
			hidden = h
			break
		}
	}
	scope := r.Node.Scope.Type
	key := notExposedKey{scope: scope.String(), dep: r.Need.Dependency.Key(), hidden: duplicate.Identity(hidden)}
	d, ok := c.notExposed[key]
	if !ok {
		d = &defect.NotExposed{
			Scope:      scope,
			Dependency: r.Need.Dependency,
			Hidden:     sourceRef(hidden),
			BoundTo:    sourceRef(r.Source),
		}
		c.notExposed[key] = d
		c.notExposedOrder = append(c.notExposedOrder, d)
	}
	if site := r.Need.Site(); !slices.Contains(d.RequiredBy, site) {
		d.RequiredBy = append(d.RequiredBy, site)
	}
}

// finish applies unprocessed-scope suppression and finalizes the list. A
// problem suppressed at one site but reported from another is not counted.
func (c *collector) finish() []defect.Defect {
	reported := make(map[suppressKey]bool)
	for _, d := range c.missingOrder {
		if u := c.mentionedBy(d.Dependency); u != nil {
			u.Suppressed++
			continue
		}
		reported[suppressKey{kind: d.Kind(), scope: d.Scope.String(), dep: d.Dependency.Key()}] = true
		c.defects = append(c.defects, d)
	}
	for _, d := range c.notExposedOrder {
		if u := c.mentionedBy(d.Dependency); u != nil {
			u.Suppressed++
			continue
		}
		reported[suppressKey{kind: d.Kind(), scope: d.Scope.String(), dep: d.Dependency.Key()}] = true
		c.defects = append(c.defects, d)
	}
	for _, key := range c.suppressedOrder {
		if !reported[key] {
			c.suppressed[key].Suppressed++
		}
	}

	order := make(map[string]int, len(c.tree.Scopes))
	for _, n := range c.tree.Nodes {
		if _, ok := order[n.Scope.Type.String()]; !ok {
			order[n.Scope.Type.String()] = n.Index
		}
	}
	return defect.Finalize(c.defects, func(scope string) (int, bool) {
		i, ok := order[scope]
		return i, ok
	})
}

// mentionedBy returns the unprocessed-scope defect whose target appears in
// dep's type, if any.
func (c *collector) mentionedBy(dep ir.Dependency) *defect.UnprocessedScope {
	for _, u := range c.unprocessedDefects {
		if dep.Type.Mentions(u.Target.Name) {
			return u
		}
	}
	return nil
}

func producerRef(p *scopetree.Producer) defect.Ref {
	return defect.Ref{Kind: defect.ProducerRef, Scope: p.Scope, Name: p.Name, Provides: p.Provides}
}

func sourceRef(s resolver.Source) defect.Ref {
	switch s.Kind {
	case resolver.ProducerSource:
		return producerRef(s.Producer)
	case resolver.ParamSource:
		e := s.Node.Via
		return defect.Ref{
			Kind:     defect.ParamRef,
			Scope:    e.Parent.Type,
			Name:     e.Name + "(" + s.Param.Name + ")",
			Provides: s.Param.Dependency,
		}
	case resolver.ScopeSource:
		return defect.Ref{Kind: defect.ScopeRef, Scope: s.Node.Scope.Type, Provides: ir.NewDependency(s.Node.Scope.Type)}
	default:
		return defect.Ref{}
	}
}

