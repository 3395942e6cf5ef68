package viperX

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"gitee.com/hgg_test/sign_res/configx"
	"gitee.com/hgg_test/sign_res/logx"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYaml = `
server:
  addr: ":9000"
log:
  level: debug
asset:
  config_path: ./res/assets.json
  normal_cache_limit: 80
localization:
  data_path: ./res/localization.json
  current_language: enUs
  cache_ttl: 10m
monitor:
  spec: "@every 3s"
`

func writeYaml(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeYaml(t, t.TempDir(), sampleYaml)
	c := NewViperConfigStr(logx.NewNopLogger())
	require.NoError(t, c.InitViperLocal(path, configx.DefaultConfigs()...))

	cfg, err := configx.LoadAppConfig(c)
	require.NoError(t, err)

	testCases := []struct {
		name string
		got  any
		want any
	}{
		{name: "文件值", got: cfg.Server.Addr, want: ":9000"},
		{name: "默认值", got: cfg.Server.Mode, want: "release"},
		{name: "默认关闭超时", got: cfg.Server.ShutdownTimeout, want: 5 * time.Second},
		{name: "日志级别", got: cfg.Log.Level, want: "debug"},
		{name: "默认日志实现", got: cfg.Log.Logger, want: "zerolog"},
		{name: "资源配置路径", got: cfg.Asset.ConfigPath, want: "./res/assets.json"},
		{name: "资源缓存上限", got: cfg.Asset.NormalCacheLimit, want: 80},
		{name: "低内存上限默认", got: cfg.Asset.LowMemoryCacheLimit, want: 10},
		{name: "http超时", got: cfg.Asset.HTTPTimeout, want: 30 * time.Second},
		{name: "当前语言原样保留", got: cfg.Localization.CurrentLanguage, want: "enUs"},
		{name: "缓存ttl", got: cfg.Localization.CacheTTL, want: 10 * time.Minute},
		{name: "缓存条数默认", got: cfg.Localization.CacheMaxEntries, want: int64(1000)},
		{name: "监控表达式", got: cfg.Monitor.Spec, want: "@every 3s"},
		{name: "监控默认开启", got: cfg.Monitor.Enabled, want: true},
		{name: "指标路径", got: cfg.Metrics.Path, want: "/metrics"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}

	var server configx.ServerConfig
	require.NoError(t, c.GetUnmarshalKey("server", &server))
	assert.Equal(t, ":9000", server.Addr)
	assert.Equal(t, "debug", c.Get("log.level"))
}

func TestInitViperLocalMissingFile(t *testing.T) {
	c := NewViperConfigStr(logx.NewNopLogger())
	assert.Error(t, c.InitViperLocal(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestInitViperLocalWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeYaml(t, dir, sampleYaml)
	c := NewViperConfigStr(logx.NewNopLogger())

	var changed atomic.Int32
	c.OnChange(func(in fsnotify.Event) {
		changed.Add(1)
	})
	require.NoError(t, c.InitViperLocalWatch(path, configx.DefaultConfigs()...))

	writeYaml(t, dir, sampleYaml+"\nmetrics:\n  path: /prom\n")
	require.Eventually(t, func() bool {
		return changed.Load() > 0 && c.Get("metrics.path") == "/prom"
	}, 5*time.Second, 50*time.Millisecond)
}
