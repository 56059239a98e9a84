// Package dag is a small, generic directed graph with deterministic
// traversal. Nodes and edges are visited in insertion order, so every cycle
// report and topological order is reproducible across runs.
//
// An edge from -> to means "from depends on to".
package dag
