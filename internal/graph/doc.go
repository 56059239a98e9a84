// Package graph holds the resolved graph: the final, read-only result of a
// compilation that a code generator consumes.
//
// # What It Contains
//
//   - Scopes: every scope with its effective producers and an instantiation
//     plan, which lists producers with dependencies first.
//   - Nodes: every instantiation site of a scope, in pre-order, with one
//     binding per need. A binding names its source (a producer, a dynamic
//     parameter, the scope itself, or nothing) and whether the value is
//     memoised.
//   - Defects: the finalized defect list.
//
// A graph with defects is still fully populated as far as resolution got,
// so tooling can show what did resolve. Failed reports whether a driver
// must treat the compilation as failed.
//
// # Rendering
//
// Render produces a stable text form that golden tests compare byte for
// byte. It uses simple type names throughout.
package graph
