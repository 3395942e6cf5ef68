package cacheLocalx

import (
	"time"
)

// Key ristretto 支持的 key 类型
type Key interface {
	uint64 | string | int | int32 | uint32 | int64
}

/*
	本地缓存：
	cost权重建议：【Set时的cost权重配置建议】
	【场景:】							【推荐 cost 设置:】
	缓存 []byte、string					cost = len(value)
	按条数限制（本地化字符串缓存）			固定 cost=1，靠 MaxCost 控制总条数
*/

// CacheLocalIn 带过期时间的本地缓存接口【i18nX 字符串缓存】
type CacheLocalIn[K Key, V any] interface {
	Set(key K, value V, ttl time.Duration, weight int64) error
	Get(key K) (V, error)
	Del(key K) error
	// Clear 清空全部缓存
	Clear()

	// WaitSet 等待值通过缓冲区【ristretto 写入是异步的，要求立即可读时调用】
	WaitSet()
	// Close 关闭会停止所有goroutines并关闭所有频道。【ristretto实现一定记着】 defer cache.Close()
	Close()
}

// LruCacheIn 容量可调的 LRU 缓存接口【assetX 已解码资源缓存】
//   - Get 命中会刷新最近访问顺序，Peek 不会
//   - Resize 缩容时立即按最近最少使用顺序淘汰，返回淘汰条数
type LruCacheIn[K comparable, V any] interface {
	Get(key K) (V, bool)
	Peek(key K) (V, bool)
	Add(key K, value V) (evicted bool)
	Purge()
	Len() int
	Cap() int
	Resize(size int) (evicted int)
	// Keys 从最久未访问到最近访问
	Keys() []K
}
