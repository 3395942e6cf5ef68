package zaplogx

import (
	"strings"

	"gitee.com/hgg_test/sign_res/logx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	l *zap.Logger
}

func NewZapLogger(l *zap.Logger) logx.Loggerx {
	return &ZapLogger{
		l: l,
	}
}

func (z *ZapLogger) Debug(msg string, fields ...logx.Field) {
	z.l.Debug(msg, z.toArgs(fields)...)
}

func (z *ZapLogger) Info(msg string, fields ...logx.Field) {
	z.l.Info(msg, z.toArgs(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields ...logx.Field) {
	z.l.Warn(msg, z.toArgs(fields)...)
}

func (z *ZapLogger) Error(msg string, fields ...logx.Field) {
	z.l.Error(msg, z.toArgs(fields)...)
}

// 转换参数
func (z *ZapLogger) toArgs(args []logx.Field) []zap.Field {
	res := make([]zap.Field, 0, len(args))
	for _, arg := range args {
		if err, ok := arg.Value.(error); ok {
			res = append(res, zap.NamedError(arg.Key, err))
			continue
		}
		res = append(res, zap.Any(arg.Key, arg.Value))
	}
	return res
}

// InitZap 按级别和格式构建 zap.Logger【format: console 为开发格式，其它为 json 生产格式】
func InitZap(level, format string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	}
	lv, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lv = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lv)
	return cfg.Build()
}
