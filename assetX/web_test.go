package assetX

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWebContent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		switch req.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("<html>help</html>"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	path, _ := writeConfig(t, dir, []map[string]any{
		{"sign_id": 1, "Asset": srv.URL + "/ok"},
		{"sign_id": 2, "Asset": srv.URL + "/bad"},
		{"sign_id": 3, "Asset": "docs/help.html"},
		{"sign_id": 4, "Asset": "ftp://example.com/a"},
		{"sign_id": 5, "Asset": srv.URL + "/slow"},
	})
	r := newTestResolver(t, Config{ConfigPath: path, HTTPTimeout: 50 * time.Millisecond}, nil, nil)
	ctx := context.Background()

	body, err := r.GetWebContent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "<html>help</html>", body)

	// 第二次命中缓存
	body, err = r.GetWebContent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "<html>help</html>", body)
	assert.Equal(t, int32(1), hits.Load())
	assert.Contains(t, r.CachedKeys(), "web:1")

	testCases := []struct {
		name    string
		signId  string
		wantErr error
	}{
		{name: "非2xx", signId: "2"},
		{name: "相对路径", signId: "3", wantErr: ErrUnsupportedFormat},
		{name: "非http协议", signId: "4", wantErr: ErrUnsupportedFormat},
		{name: "超时", signId: "5"},
		{name: "未注册", signId: "404", wantErr: ErrNotFound},
		{name: "空id", signId: "", wantErr: ErrInvalidArgument},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			size := r.GetCacheSize()
			_, err := r.GetWebContent(ctx, tc.signId)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.Error(t, err)
			}
			assert.Equal(t, size, r.GetCacheSize(), "失败结果不进入缓存")
		})
	}
}
