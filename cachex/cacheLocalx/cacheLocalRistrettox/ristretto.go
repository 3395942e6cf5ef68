package cacheLocalRistrettox

import (
	"errors"
	"time"

	"gitee.com/hgg_test/sign_res/cachex/cacheLocalx"
	"github.com/dgraph-io/ristretto/v2"
)

var (
	ErrNoKey   = errors.New("get localCache error, no key --> value, 查询缓存失败, Key不存在")
	ErrSetFail = errors.New("set localCache fail error, 写入被ristretto准入策略拒绝")
)

type CacheLocalRistrettoStr[K cacheLocalx.Key, V any] struct {
	cache *ristretto.Cache[K, V]
}

// NewCacheLocalRistrettoStr 是高性能、并发安全、带准入策略的内存缓存库
func NewCacheLocalRistrettoStr[K cacheLocalx.Key, V any](cache *ristretto.Cache[K, V]) cacheLocalx.CacheLocalIn[K, V] {
	return &CacheLocalRistrettoStr[K, V]{
		cache: cache,
	}
}

// NewCountLimited 按条数限制的缓存【每条 cost=1，MaxCost 即最大条数】
func NewCountLimited[K cacheLocalx.Key, V any](maxEntries int64) (cacheLocalx.CacheLocalIn[K, V], error) {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters:        maxEntries * 10, // 官方建议为最大条数的10倍
		MaxCost:            maxEntries,
		BufferItems:        64,
		// 不忽略时 ristretto 会把每条的内部结构体大小累加到 cost 上，MaxCost 就不再是条数
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return NewCacheLocalRistrettoStr[K, V](cache), nil
}

func (c *CacheLocalRistrettoStr[K, V]) Set(key K, value V, ttl time.Duration, weight int64) error {
	if weight <= 0 {
		weight = 1
	}
	if c.cache.SetWithTTL(key, value, weight, ttl) {
		return nil
	}
	return ErrSetFail
}

// Get 过期的条目 ristretto 自身不会返回
func (c *CacheLocalRistrettoStr[K, V]) Get(key K) (V, error) {
	if value, ok := c.cache.Get(key); ok {
		return value, nil
	}
	var v V
	return v, ErrNoKey
}

func (c *CacheLocalRistrettoStr[K, V]) Del(key K) error {
	c.cache.Del(key)
	return nil
}

func (c *CacheLocalRistrettoStr[K, V]) Clear() {
	c.cache.Clear()
}

func (c *CacheLocalRistrettoStr[K, V]) Close() {
	c.cache.Close()
}

func (c *CacheLocalRistrettoStr[K, V]) WaitSet() {
	c.cache.Wait()
}
