package cacheLruX

import (
	"sync/atomic"

	"gitee.com/hgg_test/sign_res/cachex/cacheLocalx"
	lru "github.com/hashicorp/golang-lru/v2"
)

// LruCacheStr 基于 hashicorp/golang-lru 的并发安全 LRU【双向链表+哈希表，命中即移动到链表头部】
type LruCacheStr[K comparable, V any] struct {
	cache *lru.Cache[K, V]
	size  atomic.Int64
}

// NewLruCacheStr 创建 LRU 缓存
//   - size: 初始容量，<=0 时按1处理
//   - onEvicted: 条目被淘汰/移除/清空时回调，可为 nil【回调在锁外执行】
func NewLruCacheStr[K comparable, V any](size int, onEvicted func(key K, value V)) (cacheLocalx.LruCacheIn[K, V], error) {
	if size <= 0 {
		size = 1
	}
	var (
		c   *lru.Cache[K, V]
		err error
	)
	if onEvicted != nil {
		c, err = lru.NewWithEvict[K, V](size, onEvicted)
	} else {
		c, err = lru.New[K, V](size)
	}
	if err != nil {
		return nil, err
	}
	res := &LruCacheStr[K, V]{cache: c}
	res.size.Store(int64(size))
	return res, nil
}

func (l *LruCacheStr[K, V]) Get(key K) (V, bool) {
	return l.cache.Get(key)
}

func (l *LruCacheStr[K, V]) Peek(key K) (V, bool) {
	return l.cache.Peek(key)
}

// Add 已满时淘汰最久未访问的一条，返回是否发生淘汰
func (l *LruCacheStr[K, V]) Add(key K, value V) bool {
	return l.cache.Add(key, value)
}

func (l *LruCacheStr[K, V]) Purge() {
	l.cache.Purge()
}

func (l *LruCacheStr[K, V]) Len() int {
	return l.cache.Len()
}

func (l *LruCacheStr[K, V]) Cap() int {
	return int(l.size.Load())
}

func (l *LruCacheStr[K, V]) Resize(size int) int {
	if size <= 0 {
		size = 1
	}
	l.size.Store(int64(size))
	return l.cache.Resize(size)
}

func (l *LruCacheStr[K, V]) Keys() []K {
	return l.cache.Keys()
}
