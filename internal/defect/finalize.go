package defect

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Finalize applies kind precedence and sorts the defects.
//
// A defect is dropped when one of its subjects is already claimed by a
// defect of a higher-precedence kind. Duplicate producers local to one scope
// are never dropped this way. Repeats are recognised by kind and fully
// qualified content, so two scopes that share a simple name stay distinct;
// such defects are then rendered with qualified names. What remains is
// ordered by the position of its primary scope (as reported by order), then
// by kind, then by text. Defects on scopes unknown to order sort last.
func Finalize(defects []Defect, order func(scope string) (int, bool)) []Defect {
	byKind := slices.Clone(defects)
	slices.SortStableFunc(byKind, func(a, b Defect) int {
		return cmp.Compare(a.Kind(), b.Kind())
	})

	claimed := make(map[Subject]Kind)
	seen := make(map[string]bool)
	var kept []Defect
	for _, d := range byKind {
		key := identity(d)
		if seen[key] {
			continue
		}
		if shadowed(d, claimed) {
			continue
		}
		seen[key] = true
		for _, s := range d.Subjects() {
			if _, ok := claimed[s]; !ok {
				claimed[s] = d.Kind()
			}
		}
		kept = append(kept, d)
	}
	qualifyCollisions(kept)

	position := func(d Defect) int {
		if i, ok := order(d.Primary().String()); ok {
			return i
		}
		return math.MaxInt
	}
	slices.SortStableFunc(kept, func(a, b Defect) int {
		if c := cmp.Compare(position(a), position(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
			return c
		}
		return strings.Compare(a.Error(), b.Error())
	})
	return kept
}

func shadowed(d Defect, claimed map[Subject]Kind) bool {
	if dup, ok := d.(*DuplicateProducer); ok && dup.Local {
		return false
	}
	for _, s := range d.Subjects() {
		if k, ok := claimed[s]; ok && k < d.Kind() {
			return true
		}
	}
	return false
}

// Render returns the text form of a defect list, one numbered line each.
func Render(defects []Defect) string {
	var b strings.Builder
	b.WriteString("DEFECTS (")
	b.WriteString(strconv.Itoa(len(defects)))
	b.WriteString(")\n")
	for i, d := range defects {
		b.WriteString("  ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(d.Error())
		b.WriteByte('\n')
	}
	return b.String()
}
