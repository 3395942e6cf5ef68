package zaplogx

import (
	"errors"
	"testing"

	"gitee.com/hgg_test/sign_res/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewZapLogger(zap.New(core))

	l.Debug("被过滤")
	l.Warn("资源文件不存在", logx.SignId("10001"), logx.String("path", "Resources/logo.png"))
	l.Error("加载失败", logx.Error(errors.New("boom")))

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "资源文件不存在", entries[0].Message)
	assert.Equal(t, "10001", entries[0].ContextMap()["sign_id"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestInitZap(t *testing.T) {
	l, err := InitZap("warn", "json")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}
