package ginPrometheusx

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Builder struct {
	Namespace  string // 命名空间
	Subsystem  string // 子系统
	Name       string // 指标名称前缀
	InstanceId string // 实例ID
	Help       string // 指标描述

	reg prometheus.Registerer
}

type BuilderConfig struct {
	Namespace  string
	Subsystem  string
	Name       string
	InstanceId string
	Help       string
}

// NewBuilder reg 为空时注册到 prometheus.DefaultRegisterer
func NewBuilder(builderConf BuilderConfig, reg prometheus.Registerer) PrometheusGinBuilder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Builder{
		Namespace:  builderConf.Namespace,
		Subsystem:  builderConf.Subsystem,
		Name:       builderConf.Name,
		InstanceId: builderConf.InstanceId,
		Help:       builderConf.Help,
		reg:        reg,
	}
}

// BuildResponseTime 响应时间（毫秒），按 method / 命中路由 / 状态码
func (b *Builder) BuildResponseTime() gin.HandlerFunc {
	labels := []string{"method", "pattern", "status"}
	vector := register(b.reg, prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		// Name 只能包含下划线这一种特殊字符
		Name: b.Name + "_resp_time",
		ConstLabels: map[string]string{
			"instance_id": b.InstanceId,
		},
		Objectives: map[float64]float64{
			0.5:  0.01,
			0.9:  0.01,
			0.99: 0.001,
		},
		Help: b.Help,
	}, labels))

	return func(ctx *gin.Context) {
		start := time.Now()
		defer func() {
			vector.WithLabelValues(ctx.Request.Method, ctx.FullPath(), strconv.Itoa(ctx.Writer.Status())).
				Observe(float64(time.Since(start).Milliseconds()))
		}()
		ctx.Next()
	}
}

// BuildActiveRequest 活跃请求数
func (b *Builder) BuildActiveRequest() gin.HandlerFunc {
	gauge := register(b.reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      b.Name + "_active_req",
		ConstLabels: map[string]string{
			"instance_id": b.InstanceId,
		},
		Help: b.Help,
	}))

	return func(ctx *gin.Context) {
		gauge.Inc()
		defer gauge.Dec()
		ctx.Next()
	}
}

// register 使用 Register 代替 MustRegister，已注册时使用已有的 collector
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
