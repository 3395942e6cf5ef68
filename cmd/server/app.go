package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gitee.com/hgg_test/sign_res/assetX"
	"gitee.com/hgg_test/sign_res/configx"
	"gitee.com/hgg_test/sign_res/i18nX"
	"gitee.com/hgg_test/sign_res/logx"
	"gitee.com/hgg_test/sign_res/serviceLogicX/memMonitorX"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 5 * time.Second

type App struct {
	cfg      *configx.AppConfig
	conf     configx.ConfigIn
	server   *gin.Engine
	resolver *assetX.Resolver
	store    *i18nX.Store
	monitor  *memMonitorX.Monitor
	l        logx.Loggerx
}

func NewApp(cfg *configx.AppConfig, conf configx.ConfigIn, server *gin.Engine, resolver *assetX.Resolver,
	store *i18nX.Store, monitor *memMonitorX.Monitor, l logx.Loggerx) *App {
	return &App{
		cfg:      cfg,
		conf:     conf,
		server:   server,
		resolver: resolver,
		store:    store,
		monitor:  monitor,
		l:        l,
	}
}

// Run 预加载、启动内存监控与 http 服务，ctx 结束后优雅关闭
func (a *App) Run(ctx context.Context) error {
	a.preload()
	a.conf.OnChange(func(in fsnotify.Event) {
		a.applyConfig()
	})

	if a.cfg.Monitor.Enabled {
		if err := a.monitor.Start(); err != nil {
			return err
		}
		defer func() {
			<-a.monitor.Stop().Done()
		}()
	}

	srv := &http.Server{Addr: a.cfg.Server.Addr, Handler: a.server}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a.l.Info("http 服务启动", logx.String("addr", a.cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		timeout := a.cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.l.Info("http 服务关闭中")
		return srv.Shutdown(sctx)
	})
	return eg.Wait()
}

// preload 两个组件并发加载，失败只记录日志，首次使用时会重试
func (a *App) preload() {
	var eg errgroup.Group
	eg.Go(a.resolver.Initialize)
	eg.Go(a.store.Initialize)
	if err := eg.Wait(); err != nil {
		a.l.Warn("预加载失败，首次使用时重试", logx.Error(err))
	}
}

// applyConfig 配置文件变更后热更新缓存上限、当前语言与加载模式
func (a *App) applyConfig() {
	cfg, err := configx.LoadAppConfig(a.conf)
	if err != nil {
		a.l.Error("配置变更解析失败", logx.Error(err))
		return
	}
	a.resolver.UpdateCacheSizeLimit(cfg.Asset.NormalCacheLimit)
	if cfg.Localization.CurrentLanguage != "" &&
		i18nX.NormalizeLanguageTag(cfg.Localization.CurrentLanguage) != a.store.GetCurrentLanguage() {
		a.store.SetCurrentLanguage(cfg.Localization.CurrentLanguage)
	}
	if err = a.store.SetLoadOnlyCurrentLanguage(cfg.Localization.LoadOnlyCurrentLanguage); err != nil {
		a.l.Error("切换本地化加载模式失败", logx.Error(err))
	}
}
