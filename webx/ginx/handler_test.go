package ginx

import (
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitee.com/hgg_test/sign_res/assetX"
	"gitee.com/hgg_test/sign_res/i18nX"
	"gitee.com/hgg_test/sign_res/logx"
	"gitee.com/hgg_test/sign_res/observationX/prometheusX"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const localizationJson = `{"Localization":[
	{"sign_id":10005,"zhCn":"系统信息","ghYh":"System Info"},
	{"sign_id":10006,"zhCn":"设置","enUs":"Settings"}
]}`

func newTestServer(t *testing.T) (*gin.Engine, *assetX.Resolver) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	base := filepath.Join(dir, "Resources")
	require.NoError(t, os.MkdirAll(base, 0o755))

	assetsJson, err := json.Marshal(map[string]any{
		"Resources": base,
		"AssetList": []map[string]any{
			{"sign_id": 1, "Asset": "logo.png"},
			{"sign_id": 2, "Asset": "icon.svg"},
			{"sign_id": 3, "Asset": "click.mp3"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets.json"), assetsJson, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "icon.svg"), []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`), 0o644))
	f, err := os.Create(filepath.Join(base, "logo.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "localization.json"), []byte(localizationJson), 0o644))

	l := logx.NewNopLogger()
	reg := prometheus.NewRegistry()
	metrics := prometheusX.NewCacheMetrics("test", reg)

	i18nCfg := i18nX.Config{DataPath: filepath.Join(dir, "localization.json")}
	cache, err := i18nX.NewStringCache(i18nCfg)
	require.NoError(t, err)
	store := i18nX.NewStore(i18nCfg, cache, metrics, l)
	t.Cleanup(store.Close)

	resolver, err := assetX.NewResolver(assetX.Config{ConfigPath: filepath.Join(dir, "assets.json")}, nil, store, metrics, l)
	require.NoError(t, err)

	server := gin.New()
	NewHandler(resolver, store).RegisterRoutes(server)
	RegisterMetrics(server, "", reg)
	return server, resolver
}

func doRequest(server *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestHandlerRoutes(t *testing.T) {
	server, _ := newTestServer(t)

	testCases := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{name: "资源路径", method: http.MethodGet, path: "/api/assets/1/path", wantCode: http.StatusOK, wantBody: "logo.png"},
		{name: "未注册资源", method: http.MethodGet, path: "/api/assets/99/path", wantCode: http.StatusNotFound},
		{name: "svg", method: http.MethodGet, path: "/api/assets/2/svg", wantCode: http.StatusOK, wantBody: "<svg"},
		{name: "mp3按svg读取", method: http.MethodGet, path: "/api/assets/3/svg", wantCode: http.StatusUnsupportedMediaType},
		{name: "本地路径不是网址", method: http.MethodGet, path: "/api/assets/1/web", wantCode: http.StatusUnsupportedMediaType},
		{name: "文本", method: http.MethodGet, path: "/api/i18n/strings/10006", wantCode: http.StatusOK, wantBody: "设置"},
		{name: "指定语言", method: http.MethodGet, path: "/api/i18n/strings/10006?lang=enUs", wantCode: http.StatusOK, wantBody: "Settings"},
		{name: "兜底", method: http.MethodGet, path: "/api/i18n/strings/10005?lang=en-us", wantCode: http.StatusOK, wantBody: "System Info"},
		{name: "非整数id", method: http.MethodGet, path: "/api/i18n/strings/abc", wantCode: http.StatusBadRequest},
		{name: "语言列表", method: http.MethodGet, path: "/api/i18n/languages", wantCode: http.StatusOK, wantBody: `"en-us"`},
		{name: "切换不支持的语言", method: http.MethodPut, path: "/api/i18n/language", body: `{"language":"xx"}`, wantCode: http.StatusBadRequest},
		{name: "切换语言缺参数", method: http.MethodPut, path: "/api/i18n/language", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "调整缓存上限", method: http.MethodPut, path: "/api/cache/limit", body: `{"limit":1000}`, wantCode: http.StatusOK, wantBody: `"limit":200`},
		{name: "缓存上限为0按下限处理", method: http.MethodPut, path: "/api/cache/limit", body: `{"limit":0}`, wantCode: http.StatusOK, wantBody: `"limit":5`},
		{name: "缓存上限缺参数", method: http.MethodPut, path: "/api/cache/limit", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "资源列表", method: http.MethodGet, path: "/api/assets", wantCode: http.StatusOK, wantBody: `"sign_id":"3"`},
		{name: "重新加载", method: http.MethodPost, path: "/api/assets/reload", wantCode: http.StatusOK},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(server, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantBody != "" {
				assert.Contains(t, w.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestHandlerImageAndCache(t *testing.T) {
	server, resolver := newTestServer(t)

	w := doRequest(server, http.MethodGet, "/api/assets/1/image", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Image-Hash"))
	_, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, resolver.GetCacheSize())

	w = doRequest(server, http.MethodGet, "/api/cache", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Code int        `json:"code"`
		Data CacheStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, 1, res.Data.AssetSize)
	assert.Equal(t, assetX.DefaultCacheLimit, res.Data.AssetLimit)

	w = doRequest(server, http.MethodGet, "/api/cache/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries struct {
		Data []assetX.CacheEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Equal(t, []assetX.CacheEntry{{Key: "image:1", Kind: "image", Bytes: 8 * 8 * 4}}, entries.Data)

	w = doRequest(server, http.MethodDelete, "/api/cache", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resolver.GetCacheSize())

	w = doRequest(server, http.MethodPut, "/api/i18n/language", `{"language":"enUs"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"current":"en-us"`)

	w = doRequest(server, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_cache_misses_total{cache="asset"}`)
}

func TestStatusFromError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "参数", err: assetX.ErrInvalidArgument, want: http.StatusBadRequest},
		{name: "未注册", err: assetX.ErrNotFound, want: http.StatusNotFound},
		{name: "文件不存在", err: os.ErrNotExist, want: http.StatusNotFound},
		{name: "格式", err: assetX.ErrUnsupportedFormat, want: http.StatusUnsupportedMediaType},
		{name: "配置缺失", err: assetX.ErrConfigurationNotFound, want: http.StatusServiceUnavailable},
		{name: "其他", err: assert.AnError, want: http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFromError(tc.err))
		})
	}
}
