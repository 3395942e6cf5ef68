package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.String("config", "config/config.yaml", "配置文件路径")
	pflag.Parse()

	app, cleanup, err := InitApp(ConfigFile(*configFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, "初始化失败:", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err = app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "服务异常退出:", err)
		cleanup()
		os.Exit(1)
	}
}
