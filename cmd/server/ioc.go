package main

import (
	"os"

	"gitee.com/hgg_test/sign_res/assetX"
	"gitee.com/hgg_test/sign_res/configx"
	"gitee.com/hgg_test/sign_res/configx/viperX"
	"gitee.com/hgg_test/sign_res/i18nX"
	"gitee.com/hgg_test/sign_res/logx"
	"gitee.com/hgg_test/sign_res/logx/zaplogx"
	"gitee.com/hgg_test/sign_res/logx/zerologx"
	"gitee.com/hgg_test/sign_res/observationX/prometheusX"
	"gitee.com/hgg_test/sign_res/serviceLogicX/memMonitorX"
	"gitee.com/hgg_test/sign_res/systemLoad/gopsutilx"
	"gitee.com/hgg_test/sign_res/webx/ginx"
	"gitee.com/hgg_test/sign_res/webx/ginx/middleware/accessLogx"
	"gitee.com/hgg_test/sign_res/webx/ginx/middleware/ginPrometheusx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ConfigFile 配置文件路径，来自 --config
type ConfigFile string

// InitConfigService 读取并监听配置文件，日志配置尚未读取，使用控制台日志
func InitConfigService(path ConfigFile) (configx.ConfigIn, error) {
	l := zerologx.NewZeroLogger(zerologx.InitZerolog("info", "console", os.Stderr))
	c := viperX.NewViperConfigStr(l)
	if err := c.InitViperLocalWatch(string(path), configx.DefaultConfigs()...); err != nil {
		return nil, err
	}
	return c, nil
}

func InitAppConfig(c configx.ConfigIn) (*configx.AppConfig, error) {
	return configx.LoadAppConfig(c)
}

// InitLogger log.logger 为 zap 时使用 zap，否则使用 zerolog
func InitLogger(cfg *configx.AppConfig) (logx.Loggerx, error) {
	if cfg.Log.Logger == "zap" {
		zl, err := zaplogx.InitZap(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return nil, err
		}
		return zaplogx.NewZapLogger(zl), nil
	}
	return zerologx.NewZeroLogger(zerologx.InitZerolog(cfg.Log.Level, cfg.Log.Format, os.Stdout)), nil
}

// InitRegistry 私有 registry，附带进程与 go runtime 指标
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// InitCacheMetrics metrics.enabled 为 false 时返回 nil，组件内部对 nil 安全
func InitCacheMetrics(cfg *configx.AppConfig, reg *prometheus.Registry) *prometheusX.CacheMetrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return prometheusX.NewCacheMetrics(cfg.Metrics.Namespace, reg)
}

func InitLocalization(cfg *configx.AppConfig, metrics *prometheusX.CacheMetrics, l logx.Loggerx) (*i18nX.Store, func(), error) {
	cache, err := i18nX.NewStringCache(cfg.Localization)
	if err != nil {
		return nil, nil, err
	}
	store := i18nX.NewStore(cfg.Localization, cache, metrics, l)
	return store, store.Close, nil
}

// InitResolver 内存采样使用 gopsutil，状态变化通知本地化存储
func InitResolver(cfg *configx.AppConfig, probe *gopsutilx.SystemLoad, store *i18nX.Store, metrics *prometheusX.CacheMetrics, l logx.Loggerx) (*assetX.Resolver, error) {
	return assetX.NewResolver(cfg.Asset, probe, store, metrics, l)
}

// InitMonitor 只通知资源解析器，由其转发给本地化存储
func InitMonitor(cfg *configx.AppConfig, probe *gopsutilx.SystemLoad, resolver *assetX.Resolver, l logx.Loggerx) *memMonitorX.Monitor {
	return memMonitorX.NewMonitor(cfg.Monitor, probe, l, resolver)
}

func InitWebServer(cfg *configx.AppConfig, h *ginx.Handler, reg *prometheus.Registry, l logx.Loggerx) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	server := gin.New()
	server.Use(gin.Recovery())

	ginx.NewLogMdlHandlerFunc(l)
	if cfg.Metrics.Enabled {
		ginx.InitCounter(reg, prometheus.CounterOpts{
			Namespace: cfg.Metrics.Namespace,
			Subsystem: "http",
			Name:      "biz_code",
			Help:      "按响应 code 统计的请求数",
		})
		pb := ginPrometheusx.NewBuilder(ginPrometheusx.BuilderConfig{
			Namespace:  cfg.Metrics.Namespace,
			Subsystem:  "http",
			Name:       "gin",
			InstanceId: instanceId(),
			Help:       "gin http 请求",
		}, reg)
		server.Use(pb.BuildActiveRequest(), pb.BuildResponseTime())
		ginx.RegisterMetrics(server, cfg.Metrics.Path, reg)
	}
	// 访问日志放在中间件最后
	server.Use(accessLogx.NewGinLogx(l).BuildGinHandlerLog())

	h.RegisterRoutes(server)
	return server
}

func instanceId() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}
