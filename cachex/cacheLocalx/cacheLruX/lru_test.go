package cacheLruX

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLruEvictByAccess(t *testing.T) {
	var evicted []string
	c, err := NewLruCacheStr[string, int](2, func(key string, _ int) {
		evicted = append(evicted, key)
	})
	require.NoError(t, err)

	c.Add("A", 1)
	c.Add("B", 2)
	_, ok := c.Get("A") // A 最近访问，B 变成最久未访问
	require.True(t, ok)

	assert.True(t, c.Add("C", 3))
	assert.Equal(t, []string{"B"}, evicted)
	assert.Equal(t, []string{"A", "C"}, c.Keys())
}

func TestLruPeekNoRefresh(t *testing.T) {
	c, err := NewLruCacheStr[string, int](2, nil)
	require.NoError(t, err)

	c.Add("A", 1)
	c.Add("B", 2)
	_, ok := c.Peek("A")
	require.True(t, ok)
	c.Add("C", 3)

	_, ok = c.Peek("A")
	assert.False(t, ok)
}

func TestLruResize(t *testing.T) {
	c, err := NewLruCacheStr[int, int](5, nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		c.Add(i, i)
	}
	c.Get(0)

	assert.Equal(t, 3, c.Resize(2))
	assert.Equal(t, 2, c.Cap())
	assert.Equal(t, []int{4, 0}, c.Keys())

	assert.Equal(t, 0, c.Resize(10))
	assert.Equal(t, 2, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}
