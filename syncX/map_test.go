package syncX

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	m := NewMap[string, string]()
	assert.True(t, m.IsEmpty())

	m.Store("10001", "logo/logo.png")
	prev, loaded := m.Swap("10001", "logo/logo2.png")
	assert.True(t, loaded)
	assert.Equal(t, "logo/logo.png", prev)

	_, loaded = m.Swap("10002", "icon/app.ico")
	assert.False(t, loaded)

	val, ok := m.Load("10001")
	assert.True(t, ok)
	assert.Equal(t, "logo/logo2.png", val)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, map[string]string{"10001": "logo/logo2.png", "10002": "icon/app.ico"}, m.Snapshot())

	m.Delete("10002")
	_, ok = m.Load("10002")
	assert.False(t, ok)

	m.Clear()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
}

func TestMapConcurrent(t *testing.T) {
	m := NewMap[string, int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Store(strconv.Itoa(i), i)
			_, _ = m.Load(strconv.Itoa(i))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, m.Len())
}
