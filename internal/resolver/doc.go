// Package resolver binds every need of every instantiation site to the
// source that satisfies it.
//
// The search for a need starts at the site's own scope, then the dynamic
// parameters of the accessor that created the site, then each ancestor in
// turn. Ancestors only contribute exposed producers and exposed parameters;
// everything else they could have offered is recorded as hidden so the
// validator can explain why a need went unsatisfied.
package resolver
