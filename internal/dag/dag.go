package dag

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		nodes: make(map[K]*node[K]),
	}
}

// AddNode adds a node with the given ID. Adding an existing ID is a no-op
// and does not change its position in the insertion order.
func (g *Graph[K]) AddNode(id K) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node[K]{id: id, index: len(g.order), depSet: make(map[K]bool)}
	g.order = append(g.order, id)
}

// AddEdge records that from depends on to. Both nodes must exist. Repeated
// edges are ignored; self edges are allowed and form a cycle of length one.
func (g *Graph[K]) AddEdge(from, to K) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("source node not found: %v", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("destination node not found: %v", to)
	}
	if fromNode.depSet[to] {
		return nil
	}
	fromNode.depSet[to] = true
	fromNode.deps = append(fromNode.deps, to)
	return nil
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.order)
}

// Nodes returns node IDs in insertion order.
func (g *Graph[K]) Nodes() []K {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return slices.Clone(g.order)
}

// Dependencies returns the IDs the given node depends on, in edge insertion
// order.
func (g *Graph[K]) Dependencies(id K) ([]K, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %v", id)
	}
	return slices.Clone(n.deps), nil
}

const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // finished
)

// Cycles returns every cycle found by a three-colour depth-first search that
// starts from each node in insertion order. Each back edge yields one cycle,
// listed from the node the path re-enters. Cycles that are rotations of an
// already reported one are dropped.
func (g *Graph[K]) Cycles() [][]K {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	color := make(map[K]int, len(g.nodes))
	var stack []K
	var cycles [][]K
	seen := make(map[string]bool)

	var visit func(n *node[K])
	visit = func(n *node[K]) {
		color[n.id] = gray
		stack = append(stack, n.id)
		for _, dep := range n.deps {
			switch color[dep] {
			case gray:
				start := slices.Index(stack, dep)
				cycle := slices.Clone(stack[start:])
				if key := g.rotationKey(cycle); !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			case white:
				visit(g.nodes[dep])
			}
		}
		stack = stack[:len(stack)-1]
		color[n.id] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			visit(g.nodes[id])
		}
	}
	return cycles
}

// rotationKey identifies a cycle independently of its starting node.
func (g *Graph[K]) rotationKey(cycle []K) string {
	minAt := 0
	for i, id := range cycle {
		if g.nodes[id].index < g.nodes[cycle[minAt]].index {
			minAt = i
		}
	}
	parts := make([]string, 0, len(cycle))
	for i := range cycle {
		id := cycle[(minAt+i)%len(cycle)]
		parts = append(parts, strconv.Itoa(g.nodes[id].index))
	}
	return strings.Join(parts, ",")
}

// TopologicalOrder returns all nodes with every node placed after the nodes
// it depends on. Ties follow insertion order. It fails with ErrCycle if the
// graph has a cycle.
func (g *Graph[K]) TopologicalOrder() ([]K, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	color := make(map[K]int, len(g.nodes))
	out := make([]K, 0, len(g.order))

	var visit func(n *node[K]) error
	visit = func(n *node[K]) error {
		switch color[n.id] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("%w involving node '%v'", ErrCycle, n.id)
		}
		color[n.id] = gray
		for _, dep := range n.deps {
			if err := visit(g.nodes[dep]); err != nil {
				return err
			}
		}
		color[n.id] = black
		out = append(out, n.id)
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
