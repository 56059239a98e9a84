package config

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/scopegraph/internal/ir"
)

// DefaultNotationCacheSize bounds the number of distinct notations kept.
const DefaultNotationCacheSize = 4096

// NotationCache memoizes dependency and type notation parsing. Declaration
// files repeat the same few notations many times, and both front-ends share
// one cache per load. It is safe for concurrent use.
type NotationCache struct {
	deps  *lru.Cache[string, ir.Dependency]
	types *lru.Cache[string, ir.Type]
}

// NewNotationCache returns a cache holding at most size entries per kind.
func NewNotationCache(size int) (*NotationCache, error) {
	if size <= 0 {
		size = DefaultNotationCacheSize
	}
	deps, err := lru.New[string, ir.Dependency](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create dependency cache: %w", err)
	}
	types, err := lru.New[string, ir.Type](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create type cache: %w", err)
	}
	return &NotationCache{deps: deps, types: types}, nil
}

// Dependency parses s, reusing an earlier result. Parse errors are not cached.
func (c *NotationCache) Dependency(s string) (ir.Dependency, error) {
	if d, ok := c.deps.Get(s); ok {
		return d, nil
	}
	d, err := ir.ParseDependency(s)
	if err != nil {
		return ir.Dependency{}, err
	}
	c.deps.Add(s, d)
	return d, nil
}

// Type parses s, reusing an earlier result.
func (c *NotationCache) Type(s string) (ir.Type, error) {
	if t, ok := c.types.Get(s); ok {
		return t, nil
	}
	t, err := ir.ParseType(s)
	if err != nil {
		return ir.Type{}, err
	}
	c.types.Add(s, t)
	return t, nil
}

// Len returns the number of cached dependency and type notations.
func (c *NotationCache) Len() int {
	return c.deps.Len() + c.types.Len()
}
