package logx

import (
	"time"
)

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Bool(key string, val bool) Field {
	return Field{Key: key, Value: val}
}

func Int(key string, val int) Field {
	return Field{Key: key, Value: val}
}

func Int64(key string, val int64) Field {
	return Field{Key: key, Value: val}
}

func Uint64(key string, val uint64) Field {
	return Field{Key: key, Value: val}
}

func Float64(key string, val float64) Field {
	return Field{Key: key, Value: val}
}

func String(key string, val string) Field {
	return Field{Key: key, Value: val}
}

// SignId 资源/本地化条目的标识id，统一使用 sign_id 作为日志key
func SignId(val string) Field {
	return Field{Key: "sign_id", Value: val}
}

func Strings(key string, val []string) Field {
	return Field{Key: key, Value: val}
}

func TimeDuration(key string, val time.Duration) Field {
	return Field{Key: key, Value: val}
}

func Any(key string, val any) Field {
	return Field{Key: key, Value: val}
}
