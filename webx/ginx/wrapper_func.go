package ginx

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"gitee.com/hgg_test/sign_res/assetX"
	"gitee.com/hgg_test/sign_res/logx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	vector *prometheus.CounterVec
	L      logx.Loggerx = logx.NewNopLogger()
)

func NewLogMdlHandlerFunc(l logx.Loggerx) {
	if l == nil {
		return
	}
	L = l
	L.Info("init log prometheus middleware success")
}

// InitCounter 按响应 code 统计请求数，重复注册时复用已有的 collector
func InitCounter(reg prometheus.Registerer, opt prometheus.CounterOpts) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	vector = prometheus.NewCounterVec(opt, []string{"code"})
	if err := reg.Register(vector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
		vector = are.ExistingCollector.(*prometheus.CounterVec)
	}
}

// StatusFromError 资源错误映射为 http 状态码
func StatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, assetX.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, assetX.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, assetX.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, assetX.ErrConfigurationNotFound):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// WrapBody bizFn 就是你的业务逻辑，请求体绑定失败返回 400
func WrapBody[Req any](bizFn func(ctx *gin.Context, req Req) (Result, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req Req
		if err := ctx.ShouldBind(&req); err != nil {
			L.Warn("输入错误", logx.String("path", ctx.Request.URL.Path), logx.Error(err))
			writeResult(ctx, Result{Code: http.StatusBadRequest, Msg: "请求参数错误"})
			return
		}
		L.Debug("输入参数", logx.Any("req", req))
		res, err := bizFn(ctx, req)
		finish(ctx, res, err)
	}
}

func Wrap(fn func(ctx *gin.Context) (Result, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := fn(ctx)
		finish(ctx, res, err)
	}
}

func finish(ctx *gin.Context, res Result, err error) {
	if err != nil {
		// 开始处理 error，其实就是记录一下日志
		L.Error("处理业务逻辑出错",
			logx.String("path", ctx.Request.URL.Path),
			// 命中的路由
			logx.String("route", ctx.FullPath()),
			logx.Error(err))
		if res.Code == 0 || res.Code == http.StatusOK {
			res.Code = StatusFromError(err)
		}
		if res.Msg == "" {
			res.Msg = err.Error()
		}
	}
	if res.Code == 0 {
		res.Code = http.StatusOK
	}
	if res.Msg == "" {
		res.Msg = "OK"
	}
	writeResult(ctx, res)
}

func writeResult(ctx *gin.Context, res Result) {
	if vector != nil {
		vector.WithLabelValues(strconv.Itoa(res.Code)).Inc()
	}
	ctx.JSON(res.Code, res)
}
