package zerologx

import (
	"io"
	"os"
	"strings"
	"time"

	"gitee.com/hgg_test/sign_res/logx"
	"github.com/rs/zerolog"
)

// ZeroLogger 将 zerolog.Logger 适配为 logx.Loggerx
type ZeroLogger struct {
	logger *zerolog.Logger
}

func NewZeroLogger(l *zerolog.Logger) logx.Loggerx {
	return &ZeroLogger{
		logger: l,
	}
}

func (z *ZeroLogger) Debug(msg string, fields ...logx.Field) {
	z.write(z.logger.Debug(), msg, fields)
}

func (z *ZeroLogger) Info(msg string, fields ...logx.Field) {
	z.write(z.logger.Info(), msg, fields)
}

func (z *ZeroLogger) Warn(msg string, fields ...logx.Field) {
	z.write(z.logger.Warn(), msg, fields)
}

func (z *ZeroLogger) Error(msg string, fields ...logx.Field) {
	z.write(z.logger.Error(), msg, fields)
}

// GetZerolog 获取底层 zerolog 实例
func (z *ZeroLogger) GetZerolog() *zerolog.Logger {
	return z.logger
}

// write 按字段类型写入 event，级别被过滤时 event 为 nil，zerolog 的方法均可安全调用
func (z *ZeroLogger) write(e *zerolog.Event, msg string, fields []logx.Field) {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			e = e.AnErr(f.Key, v)
		case string:
			e = e.Str(f.Key, v)
		case []string:
			e = e.Strs(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}

// InitZerolog 初始化zerolog日志模块
//   - level: debug/info/warn/error，解析失败默认 debug
//   - format: console 为人类可读格式，其它为 json
//   - w 为空时输出到 os.Stderr
func InitZerolog(level, format string, w io.Writer) *zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	lv, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lv = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).Level(lv).With().Timestamp().Caller().Logger()
	return &logger
}
