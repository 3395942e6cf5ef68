//go:build wireinject

package main

import (
	"gitee.com/hgg_test/sign_res/assetX"
	"gitee.com/hgg_test/sign_res/i18nX"
	"gitee.com/hgg_test/sign_res/systemLoad/gopsutilx"
	"gitee.com/hgg_test/sign_res/webx/ginx"
	"github.com/google/wire"
)

func InitApp(configFile ConfigFile) (*App, func(), error) {
	wire.Build(
		InitConfigService,
		InitAppConfig,
		InitLogger,
		InitRegistry,
		InitCacheMetrics,
		gopsutilx.NewSystemLoad,
		InitLocalization,
		InitResolver,
		InitMonitor,

		ginx.NewHandler,
		wire.Bind(new(ginx.AssetService), new(*assetX.Resolver)),
		wire.Bind(new(ginx.LocalizationService), new(*i18nX.Store)),
		InitWebServer,

		NewApp,
	)
	return nil, nil, nil
}
