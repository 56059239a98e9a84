package config

import (
	"errors"
	"sync"
	"testing"

	"github.com/specialistvlad/scopegraph/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotationCache(t *testing.T) {
	c, err := NewNotationCache(0)
	require.NoError(t, err)

	d, err := c.Dependency(`@Named("a") java.util.List<String>`)
	require.NoError(t, err)
	assert.Equal(t, `@Named(value="a") java.util.List<String>`, d.String())

	again, err := c.Dependency(`@Named("a") java.util.List<String>`)
	require.NoError(t, err)
	assert.True(t, d.Equal(again))

	typ, err := c.Type("Foo")
	require.NoError(t, err)
	assert.Equal(t, "Foo", typ.String())
	assert.Equal(t, 2, c.Len())

	_, err = c.Dependency("List<")
	assert.True(t, errors.Is(err, ir.ErrSyntax))
	assert.Equal(t, 2, c.Len(), "parse failures are not cached")
}

func TestNotationCache_Eviction(t *testing.T) {
	c, err := NewNotationCache(1)
	require.NoError(t, err)

	_, err = c.Type("A")
	require.NoError(t, err)
	_, err = c.Type("B")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestNotationCache_Concurrent(t *testing.T) {
	c, err := NewNotationCache(16)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := c.Dependency("Map<String, Foo>")
			assert.NoError(t, err)
			assert.Equal(t, "Map<String, Foo>", d.String())
		}()
	}
	wg.Wait()
}
