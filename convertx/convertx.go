// Package convertx 宽松 JSON 值转换【配置文件里 sign_id 既可能是数字也可能是数字字符串】
package convertx

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToInt64 将 JSON 反序列化得到的值转换为整数
//   - 支持 json.Number、float64（必须为整数值）、各整数类型、十进制数字字符串
//   - 小数、超出范围、非数字字符串、bool、nil 均返回 false
func ToInt64(src any) (int64, bool) {
	switch v := src.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint32:
		return int64(v), true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt64(f)
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// ToSignId 将 sign_id 规整为十进制字符串【"0010" -> "10"，10001.0 -> "10001"】
func ToSignId(src any) (string, bool) {
	i, ok := ToInt64(src)
	if !ok {
		return "", false
	}
	return strconv.FormatInt(i, 10), true
}

// ToFlag 将 bool 或数字转换为开关值，非 0 为 true
//   - 字符串等其它类型视为非法，返回 false
func ToFlag(src any) (bool, bool) {
	switch v := src.(type) {
	case bool:
		return v, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	}
	return false, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
