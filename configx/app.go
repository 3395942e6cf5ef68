package configx

import (
	"time"

	"gitee.com/hgg_test/sign_res/assetX"
	"gitee.com/hgg_test/sign_res/i18nX"
	"gitee.com/hgg_test/sign_res/serviceLogicX/memMonitorX"
)

// AppConfig 服务完整配置【config/config.yaml】
type AppConfig struct {
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	Asset        assetX.Config      `mapstructure:"asset"`
	Localization i18nX.Config       `mapstructure:"localization"`
	Monitor      memMonitorX.Config `mapstructure:"monitor"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// ServerConfig http 服务
//   - Mode: gin 模式 debug / release / test
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig 日志
//   - Logger: zerolog（默认）或 zap
//   - Format: json 或 console
type LogConfig struct {
	Logger string `mapstructure:"logger"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// DefaultConfigs 默认配置，配置文件缺少对应项时使用
func DefaultConfigs() []DefaultConfig {
	return []DefaultConfig{
		{Key: "server.addr", Val: ":8089"},
		{Key: "server.mode", Val: "release"},
		{Key: "server.shutdown_timeout", Val: "5s"},

		{Key: "log.logger", Val: "zerolog"},
		{Key: "log.level", Val: "info"},
		{Key: "log.format", Val: "json"},

		{Key: "asset.config_path", Val: "./config/assets.json"},
		{Key: "asset.normal_cache_limit", Val: assetX.DefaultCacheLimit},
		{Key: "asset.low_memory_cache_limit", Val: assetX.DefaultLowMemoryCacheLimit},
		{Key: "asset.mem_check_interval", Val: "1s"},
		{Key: "asset.http_timeout", Val: "30s"},

		{Key: "localization.data_path", Val: "./config/localization.json"},
		{Key: "localization.default_language", Val: i18nX.DefaultLanguage},
		{Key: "localization.current_language", Val: i18nX.DefaultLanguage},
		{Key: "localization.load_only_current_language", Val: false},
		{Key: "localization.cache_ttl", Val: "30m"},
		{Key: "localization.cache_max_entries", Val: i18nX.DefaultCacheMaxEntries},

		{Key: "monitor.enabled", Val: true},
		{Key: "monitor.spec", Val: memMonitorX.DefaultSpec},

		{Key: "metrics.enabled", Val: true},
		{Key: "metrics.namespace", Val: "sign_res"},
		{Key: "metrics.path", Val: "/metrics"},
	}
}

// LoadAppConfig 从已初始化的配置服务读取完整配置
func LoadAppConfig(c ConfigIn) (*AppConfig, error) {
	var res AppConfig
	if err := c.Unmarshal(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
