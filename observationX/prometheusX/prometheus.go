package prometheusX

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics 缓存指标【label cache: asset / i18n】
//   - 所有方法对 nil 接收者安全，组件未配置指标时可直接传 nil
type CacheMetrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
	size      *prometheus.GaugeVec
	limit     *prometheus.GaugeVec
	lowMemory *prometheus.GaugeVec
}

// NewCacheMetrics 创建并注册缓存指标
//   - reg 为空时使用 prometheus.DefaultRegisterer
//   - 重复注册时复用已注册的 collector
func NewCacheMetrics(namespace string, reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"cache"}
	m := &CacheMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "hits_total",
			Help: "缓存命中次数",
		}, labels),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "misses_total",
			Help: "缓存未命中次数",
		}, labels),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "evictions_total",
			Help: "缓存淘汰条数",
		}, labels),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "cache", Name: "entries",
			Help: "当前缓存条数",
		}, labels),
		limit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "cache", Name: "limit",
			Help: "当前生效的缓存容量上限",
		}, labels),
		lowMemory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "cache", Name: "low_memory_mode",
			Help: "是否处于低内存模式，1为是",
		}, labels),
	}
	m.hits = register(reg, m.hits)
	m.misses = register(reg, m.misses)
	m.evictions = register(reg, m.evictions)
	m.size = register(reg, m.size)
	m.limit = register(reg, m.limit)
	m.lowMemory = register(reg, m.lowMemory)
	return m
}

// register 使用 Register 代替 MustRegister，已注册时使用已有的 collector，其他错误 panic
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(C)
		}
		panic(err)
	}
	return c
}

func (m *CacheMetrics) Hit(cache string) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(cache).Inc()
}

func (m *CacheMetrics) Miss(cache string) {
	if m == nil {
		return
	}
	m.misses.WithLabelValues(cache).Inc()
}

func (m *CacheMetrics) Evict(cache string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.evictions.WithLabelValues(cache).Add(float64(n))
}

func (m *CacheMetrics) SetSize(cache string, n int) {
	if m == nil {
		return
	}
	m.size.WithLabelValues(cache).Set(float64(n))
}

func (m *CacheMetrics) SetLimit(cache string, n int) {
	if m == nil {
		return
	}
	m.limit.WithLabelValues(cache).Set(float64(n))
}

func (m *CacheMetrics) SetLowMemory(cache string, low bool) {
	if m == nil {
		return
	}
	v := 0.0
	if low {
		v = 1
	}
	m.lowMemory.WithLabelValues(cache).Set(v)
}
