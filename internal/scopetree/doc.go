// Package scopetree assembles scope declarations into a navigable tree.
//
// Assembly runs in phases: scopes are created in declaration order with
// their effective producer sets (inherited producers merged in, overrides
// applied), accessor and parent edges are linked, and finally the scope
// graph is unfolded into instantiation sites in pre-order. A scope reached
// again while it is still on the current path becomes a back-reference
// node; whether that re-entry is a real cycle is decided later, by
// resolution.
//
// References to scope types without IR are recorded as Unprocessed rather
// than failing assembly.
package scopetree
