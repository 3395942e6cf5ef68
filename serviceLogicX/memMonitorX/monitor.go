package memMonitorX

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"gitee.com/hgg_test/sign_res/logx"
	"github.com/robfig/cron/v3"
)

// DefaultSpec 默认每10秒采样一次内存
const DefaultSpec = "@every 10s"

var ErrStarted = errors.New("memory monitor already started, 内存监控已启动")

// Config 内存监控配置
//   - Spec: cron 表达式（支持秒级，或 @every 描述符）
type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
}

// Probe 内存压力采样【gopsutilx.SystemLoad】
type Probe interface {
	IsLowMemory() (bool, error)
}

// Target 低内存状态变化时被通知的组件【assetX.Resolver / i18nX.Store】
type Target interface {
	EnterLowMemoryMode()
	ExitLowMemoryMode()
}

// Monitor 定时采样内存，只在状态变化时通知 targets
type Monitor struct {
	mu      sync.Mutex
	cron    *cron.Cron
	spec    string
	started bool

	probe   Probe
	targets []Target
	low     atomic.Bool

	l logx.Loggerx
}

func NewMonitor(cfg Config, probe Probe, l logx.Loggerx, targets ...Target) *Monitor {
	spec := cfg.Spec
	if spec == "" {
		spec = DefaultSpec
	}
	return &Monitor{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:    spec,
		probe:   probe,
		targets: targets,
		l:       l,
	}
}

// Start 注册采样任务并启动调度
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return ErrStarted
	}
	if _, err := m.cron.AddFunc(m.spec, func() { _, _ = m.CheckOnce() }); err != nil {
		m.l.Error("添加内存监控任务失败", logx.String("spec", m.spec), logx.Error(err))
		return err
	}
	m.cron.Start()
	m.started = true
	m.l.Info("内存监控已启动", logx.String("spec", m.spec), logx.Int("targets", len(m.targets)))
	return nil
}

// Stop 停止调度，返回的 ctx 在正在执行的采样结束后 Done
func (m *Monitor) Stop() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
	return m.cron.Stop()
}

// CheckOnce 立即采样一次，状态变化时通知全部 targets
func (m *Monitor) CheckOnce() (bool, error) {
	low, err := m.probe.IsLowMemory()
	if err != nil {
		m.l.Warn("内存采样失败", logx.Error(err))
		return m.low.Load(), err
	}
	if m.low.Swap(low) == low {
		return low, nil
	}
	if low {
		m.l.Warn("系统进入低内存状态")
		for _, t := range m.targets {
			t.EnterLowMemoryMode()
		}
		return low, nil
	}
	m.l.Info("系统内存恢复")
	for _, t := range m.targets {
		t.ExitLowMemoryMode()
	}
	return low, nil
}

// IsLowMemory 最近一次采样结果
func (m *Monitor) IsLowMemory() bool {
	return m.low.Load()
}
