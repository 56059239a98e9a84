package dag

import (
	"errors"
	"sync"
)

// ErrCycle is returned by TopologicalOrder when the graph is not acyclic.
var ErrCycle = errors.New("cycle detected")

// Graph is a collection of nodes and their dependencies.
// All operations on the graph are concurrency-safe.
type Graph[K comparable] struct {
	// mutex protects nodes and order during concurrent access.
	mutex sync.RWMutex
	// order holds node IDs in insertion order.
	order []K
	nodes map[K]*node[K]
}

// node is a single vertex. It is un-exported to enforce interaction with the
// graph through its IDs.
type node[K comparable] struct {
	id    K
	index int
	// deps keeps the outgoing edges in insertion order; depSet dedupes them.
	deps   []K
	depSet map[K]bool
}
