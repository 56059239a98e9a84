// Package lazy implements the construct-at-most-once contract for cacheable
// dependencies of a runtime scope instance.
package lazy

import (
	"sync"
	"sync/atomic"
)

// Cell holds a value constructed at most once, even under concurrent first
// access. Reads after construction take the atomic fast path only. A
// constructor that fails leaves the cell empty, so a later Get retries.
//
// The zero Cell is ready to use. A Cell must not be copied after first use.
type Cell[T any] struct {
	done  atomic.Bool
	mu    sync.Mutex
	value T
}

// Get returns the cell's value, calling build to construct it if needed.
func (c *Cell[T]) Get(build func() (T, error)) (T, error) {
	if c.done.Load() {
		return c.value, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done.Load() {
		return c.value, nil
	}
	v, err := build()
	if err != nil {
		var zero T
		return zero, err
	}
	c.value = v
	c.done.Store(true)
	return v, nil
}

// Loaded reports whether the value has been constructed.
func (c *Cell[T]) Loaded() bool {
	return c.done.Load()
}
