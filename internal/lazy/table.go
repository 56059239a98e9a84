package lazy

import "sync"

// Table provides the dependencies of one runtime scope instance. Cacheable
// keys get a Cell each; uncacheable keys call their constructor every time.
type Table[K comparable] struct {
	mu    sync.Mutex
	cells map[K]*Cell[any]
}

// NewTable returns an empty Table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{cells: make(map[K]*Cell[any])}
}

// Get returns the value for key.
func (t *Table[K]) Get(key K, cacheable bool, build func() (any, error)) (any, error) {
	if !cacheable {
		return build()
	}
	return t.cell(key).Get(build)
}

func (t *Table[K]) cell(key K) *Cell[any] {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.cells[key]
	if !ok {
		c = &Cell[any]{}
		t.cells[key] = c
	}
	return c
}
