package syncX

import (
	"sync"
)

// Map 是对 sync.Map 的一个泛型封装【读多写少：sign_id -> 资源路径表】
// 要注意，K 必须是 comparable 的，谨慎使用指针作为 K。
// key 不存在和 key 存在但值恰好为零值，是两码事
type Map[K comparable, V any] struct {
	m sync.Map
}

// NewMap 为了防止有时使用时忘记&取地址，所以又加了New构造
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// Load 加载键值对
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	var anyVal any
	anyVal, ok = m.m.Load(key)
	if anyVal != nil {
		value = anyVal.(V)
	}
	return
}

// Store 存储键值对
func (m *Map[K, V]) Store(key K, value V) {
	m.m.Store(key, value)
}

// Swap 存储键值对并返回旧值，loaded 为 true 表示 key 之前已存在【用于重复 sign_id 告警】
func (m *Map[K, V]) Swap(key K, value V) (previous V, loaded bool) {
	var anyVal any
	anyVal, loaded = m.m.Swap(key, value)
	if anyVal != nil {
		previous = anyVal.(V)
	}
	return
}

// Delete 删除键值对
func (m *Map[K, V]) Delete(key K) {
	m.m.Delete(key)
}

// Range 遍历, f 不能为 nil，f 返回 false 中断遍历
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.m.Range(func(key, value any) bool {
		var (
			k K
			v V
		)
		if value != nil {
			v = value.(V)
		}
		if key != nil {
			k = key.(K)
		}
		return f(k, v)
	})
}

// Len 元素数量【遍历计数，O(n)】
func (m *Map[K, V]) Len() int {
	n := 0
	m.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Clear 清空
func (m *Map[K, V]) Clear() {
	m.m.Clear()
}

// IsEmpty 判断 Map 是否为空
func (m *Map[K, V]) IsEmpty() bool {
	empty := true
	m.m.Range(func(_, _ any) bool {
		empty = false
		return false
	})
	return empty
}

// Snapshot 拷贝一份普通 map，便于比较或序列化
func (m *Map[K, V]) Snapshot() map[K]V {
	res := make(map[K]V)
	m.Range(func(key K, value V) bool {
		res[key] = value
		return true
	})
	return res
}
