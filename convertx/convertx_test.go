package convertx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSignId(t *testing.T) {
	testCases := []struct {
		name string
		src  any

		wantId string
		wantOk bool
	}{
		{name: "json数字", src: json.Number("10001"), wantId: "10001", wantOk: true},
		{name: "float64整数", src: float64(10001), wantId: "10001", wantOk: true},
		{name: "数字字符串", src: "10002", wantId: "10002", wantOk: true},
		{name: "前导0规整", src: "0010", wantId: "10", wantOk: true},
		{name: "负数", src: json.Number("-3"), wantId: "-3", wantOk: true},
		{name: "小数非法", src: 1.5, wantOk: false},
		{name: "json小数非法", src: json.Number("1.5"), wantOk: false},
		{name: "非数字字符串", src: "abc", wantOk: false},
		{name: "空字符串", src: "", wantOk: false},
		{name: "bool非法", src: true, wantOk: false},
		{name: "nil非法", src: nil, wantOk: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ToSignId(tc.src)
			assert.Equal(t, tc.wantOk, ok)
			assert.Equal(t, tc.wantId, id)
		})
	}
}

func TestToFlag(t *testing.T) {
	testCases := []struct {
		name string
		src  any

		wantVal bool
		wantOk  bool
	}{
		{name: "bool", src: true, wantVal: true, wantOk: true},
		{name: "数字0", src: json.Number("0"), wantVal: false, wantOk: true},
		{name: "数字1", src: json.Number("1"), wantVal: true, wantOk: true},
		{name: "字符串非法", src: "yes", wantOk: false},
		{name: "nil非法", src: nil, wantOk: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := ToFlag(tc.src)
			assert.Equal(t, tc.wantOk, ok)
			assert.Equal(t, tc.wantVal, v)
		})
	}
}
