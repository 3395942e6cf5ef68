package logx

// Loggerx 日志接口（依赖抽象），assetX、i18nX 等组件只依赖该接口
//   - 具体实现见 zerologx（默认）与 zaplogx
type Loggerx interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

type Field struct {
	Key   string
	Value any
}

// NopLogger 什么都不输出，单测或调用方不关心日志时使用
type NopLogger struct{}

func NewNopLogger() Loggerx {
	return NopLogger{}
}

func (NopLogger) Debug(msg string, fields ...Field) {}
func (NopLogger) Info(msg string, fields ...Field)  {}
func (NopLogger) Warn(msg string, fields ...Field)  {}
func (NopLogger) Error(msg string, fields ...Field) {}
