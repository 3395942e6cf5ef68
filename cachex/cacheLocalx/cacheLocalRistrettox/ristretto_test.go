package cacheLocalRistrettox

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountLimited(t *testing.T) {
	ca, err := NewCountLimited[string, string](100)
	require.NoError(t, err)
	defer ca.Close()

	require.NoError(t, ca.Set("10005|zh-cn", "系统信息", time.Minute, 1))
	ca.WaitSet()

	val, err := ca.Get("10005|zh-cn")
	require.NoError(t, err)
	assert.Equal(t, "系统信息", val)

	_, err = ca.Get("10005|en-us")
	assert.ErrorIs(t, err, ErrNoKey)

	require.NoError(t, ca.Del("10005|zh-cn"))
	_, err = ca.Get("10005|zh-cn")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestTTLExpire(t *testing.T) {
	ca, err := NewCountLimited[string, string](100)
	require.NoError(t, err)
	defer ca.Close()

	require.NoError(t, ca.Set("k", "v", 50*time.Millisecond, 1))
	ca.WaitSet()
	_, err = ca.Get("k")
	require.NoError(t, err)

	time.Sleep(120 * time.Millisecond)
	_, err = ca.Get("k")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestClear(t *testing.T) {
	ca, err := NewCountLimited[string, string](100)
	require.NoError(t, err)
	defer ca.Close()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, ca.Set(k, k, time.Minute, 1))
	}
	ca.WaitSet()
	ca.Clear()
	for _, k := range []string{"a", "b", "c"} {
		_, err = ca.Get(k)
		assert.ErrorIs(t, err, ErrNoKey)
	}
}

func TestCountLimitedCapacity(t *testing.T) {
	testCases := []struct {
		name       string
		maxEntries int64
		inserted   int
	}{
		{name: "默认上限", maxEntries: 1000, inserted: 200},
		{name: "小上限写到一半", maxEntries: 100, inserted: 50},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ca, err := NewCountLimited[string, string](tc.maxEntries)
			require.NoError(t, err)
			defer ca.Close()

			for i := 0; i < tc.inserted; i++ {
				k := strconv.Itoa(10000+i) + "|zh-cn"
				require.NoError(t, ca.Set(k, k, time.Minute, 1))
				ca.WaitSet()
			}

			retained := 0
			for i := 0; i < tc.inserted; i++ {
				k := strconv.Itoa(10000+i) + "|zh-cn"
				if v, err := ca.Get(k); err == nil && v == k {
					retained++
				}
			}
			assert.Equal(t, tc.inserted, retained)
		})
	}
}
