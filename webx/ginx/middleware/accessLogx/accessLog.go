package accessLogx

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitee.com/hgg_test/sign_res/logx"
	"github.com/gin-gonic/gin"
)

const (
	maxPathLen = 1024
	maxBodyLen = 2048
	disabled   = "Disable Display"
)

type GinLogx struct {
	l             logx.Loggerx
	allowReqBody  bool // 是否允许打印请求体
	allowRespBody bool // 是否允许打印响应体
}

// NewGinLogx 自定义Gin访问日志中间件
func NewGinLogx(l logx.Loggerx) *GinLogx {
	return &GinLogx{l: l}
}

// AllowReqBody 允许打印请求体
func (g *GinLogx) AllowReqBody() *GinLogx {
	g.allowReqBody = true
	return g
}

// AllowRespBody 允许打印响应体
func (g *GinLogx) AllowRespBody() *GinLogx {
	g.allowRespBody = true
	return g
}

// BuildGinHandlerLog 请求结束后打印一条访问日志，4xx 为 Warn，5xx 为 Error
func (g *GinLogx) BuildGinHandlerLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		al := initAccessLog(c, start)

		if g.allowReqBody && c.Request.Body != nil {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			// 恢复请求体，以便后续处理
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			al.ReqBody = truncate(string(bodyBytes))
		}
		if g.allowRespBody {
			c.Writer = &responseWriter{ResponseWriter: c.Writer, al: al}
		}

		c.Next()

		al.Status = c.Writer.Status()
		al.Duration = time.Since(start)
		al.print(g.l)
	}
}

func initAccessLog(c *gin.Context, start time.Time) *AccessLog {
	al := &AccessLog{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		Query:    c.Request.URL.RawQuery,
		ClientIP: c.ClientIP(),
		ReqBody:  disabled,
		RespBody: disabled,
	}
	// 防止伪造过长 path 撑大日志
	if len(al.Path) > maxPathLen {
		al.Path = al.Path[:maxPathLen]
	}
	al.LogId = start.Format("20060102150405") + fmt.Sprintf("%09d", start.Nanosecond())
	return al
}

type AccessLog struct {
	LogId    string
	Method   string
	Path     string
	Query    string
	ClientIP string
	ReqBody  string
	RespBody string
	Status   int
	Duration time.Duration
}

func (a *AccessLog) print(l logx.Loggerx) {
	fields := []logx.Field{
		logx.String("log_id", a.LogId),
		logx.String("client_ip", a.ClientIP),
		logx.String("method", a.Method),
		logx.String("path", a.Path),
		logx.String("query", a.Query),
		logx.Int("status", a.Status),
		logx.TimeDuration("duration", a.Duration),
		logx.String("req_body", a.ReqBody),
		logx.String("resp_body", a.RespBody),
	}
	switch {
	case a.Status >= http.StatusInternalServerError:
		l.Error("HTTP access", fields...)
	case a.Status >= http.StatusBadRequest:
		l.Warn("HTTP access", fields...)
	default:
		l.Info("HTTP access", fields...)
	}
}

func truncate(s string) string {
	if len(s) > maxBodyLen {
		return s[:maxBodyLen]
	}
	return s
}

// responseWriter gin 没有暴露响应体，包一层记录写出的内容
type responseWriter struct {
	gin.ResponseWriter
	al *AccessLog
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.al.RespBody = truncate(string(data))
	return w.ResponseWriter.Write(data)
}
