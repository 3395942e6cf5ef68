package ginx

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"strconv"

	"gitee.com/hgg_test/sign_res/assetX"
	"github.com/gin-gonic/gin"
)

// AssetService 资源解析【assetX.Resolver】
type AssetService interface {
	GetAssetPath(signId string) (string, error)
	GetSvgAssetContent(signId string) (string, error)
	GetImageAsset(signId string) (*assetX.ImageAsset, error)
	GetWebContent(ctx context.Context, signId string) (string, error)
	ReloadConfiguration() error
	ClearCache()
	UpdateCacheSizeLimit(limit int) int
	GetCacheSize() int
	CacheLimit() int
	CachedEntries() []assetX.CacheEntry
	ListAssets() ([]assetX.AssetEntry, error)
	IsLowMemoryMode() bool
}

// LocalizationService 本地化【i18nX.Store】
type LocalizationService interface {
	GetString(signId int, lang ...string) string
	GetCurrentLanguage() string
	GetSupportedLanguages() []string
	SetCurrentLanguage(lang string) bool
	ClearCache()
	IsLowMemoryMode() bool
}

type Handler struct {
	assets AssetService
	i18n   LocalizationService
}

func NewHandler(assets AssetService, i18n LocalizationService) *Handler {
	return &Handler{assets: assets, i18n: i18n}
}

// RegisterRoutes 注册 /api 路由
func (h *Handler) RegisterRoutes(server *gin.Engine) {
	ag := server.Group("/api/assets")
	ag.GET("", Wrap(h.ListAssets))
	ag.GET("/:id/path", Wrap(h.AssetPath))
	ag.GET("/:id/svg", h.AssetSvg)
	ag.GET("/:id/image", h.AssetImage)
	ag.GET("/:id/web", Wrap(h.AssetWeb))
	ag.POST("/reload", Wrap(h.ReloadAssets))

	cg := server.Group("/api/cache")
	cg.GET("", Wrap(h.CacheStats))
	cg.GET("/entries", Wrap(h.CacheEntries))
	cg.PUT("/limit", WrapBody(h.UpdateCacheLimit))
	cg.DELETE("", Wrap(h.ClearCache))

	ig := server.Group("/api/i18n")
	ig.GET("/strings/:id", Wrap(h.GetString))
	ig.GET("/languages", Wrap(h.Languages))
	ig.PUT("/language", WrapBody(h.SetLanguage))
}

func (h *Handler) ListAssets(ctx *gin.Context) (Result, error) {
	assets, err := h.assets.ListAssets()
	if err != nil {
		return Result{}, err
	}
	return Result{Data: assets}, nil
}

func (h *Handler) AssetPath(ctx *gin.Context) (Result, error) {
	p, err := h.assets.GetAssetPath(ctx.Param("id"))
	if err != nil {
		return Result{}, err
	}
	return Result{Data: gin.H{"path": p}}, nil
}

// AssetSvg 成功时直接返回 SVG 文本，失败时返回 Result
func (h *Handler) AssetSvg(ctx *gin.Context) {
	svg, err := h.assets.GetSvgAssetContent(ctx.Param("id"))
	if err != nil {
		finish(ctx, Result{}, err)
		return
	}
	ctx.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(svg))
}

// AssetImage 已解码图片统一编码为 PNG 返回，感知哈希放在响应头
func (h *Handler) AssetImage(ctx *gin.Context) {
	img, err := h.assets.GetImageAsset(ctx.Param("id"))
	if err != nil {
		finish(ctx, Result{}, err)
		return
	}
	var buf bytes.Buffer
	if err = png.Encode(&buf, img.Image); err != nil {
		finish(ctx, Result{}, err)
		return
	}
	if img.Hash != nil {
		ctx.Header("X-Image-Hash", img.Hash.ToString())
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) AssetWeb(ctx *gin.Context) (Result, error) {
	content, err := h.assets.GetWebContent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		return Result{}, err
	}
	return Result{Data: gin.H{"content": content}}, nil
}

func (h *Handler) ReloadAssets(ctx *gin.Context) (Result, error) {
	if err := h.assets.ReloadConfiguration(); err != nil {
		return Result{}, err
	}
	return Result{Msg: "reloaded"}, nil
}

type CacheStats struct {
	AssetSize      int  `json:"asset_size"`
	AssetLimit     int  `json:"asset_limit"`
	AssetLowMemory bool `json:"asset_low_memory"`
	I18nLowMemory  bool `json:"i18n_low_memory"`
}

func (h *Handler) CacheStats(ctx *gin.Context) (Result, error) {
	return Result{Data: CacheStats{
		AssetSize:      h.assets.GetCacheSize(),
		AssetLimit:     h.assets.CacheLimit(),
		AssetLowMemory: h.assets.IsLowMemoryMode(),
		I18nLowMemory:  h.i18n.IsLowMemoryMode(),
	}}, nil
}

// CacheEntries 查看资源缓存条目，不影响 LRU 顺序
func (h *Handler) CacheEntries(ctx *gin.Context) (Result, error) {
	return Result{Data: h.assets.CachedEntries()}, nil
}

// LimitReq 上限由资源解析限制在 [5,200]，0 同样合法
type LimitReq struct {
	Limit *int `json:"limit" binding:"required"`
}

func (h *Handler) UpdateCacheLimit(ctx *gin.Context, req LimitReq) (Result, error) {
	limit := h.assets.UpdateCacheSizeLimit(*req.Limit)
	return Result{Data: gin.H{"limit": limit}}, nil
}

func (h *Handler) ClearCache(ctx *gin.Context) (Result, error) {
	h.assets.ClearCache()
	h.i18n.ClearCache()
	return Result{Msg: "cleared"}, nil
}

// GetString ?lang= 为空时使用当前语言
func (h *Handler) GetString(ctx *gin.Context) (Result, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return Result{Code: http.StatusBadRequest, Msg: "sign_id 必须是整数"}, nil
	}
	lang := ctx.Query("lang")
	return Result{Data: gin.H{
		"sign_id": id,
		"text":    h.i18n.GetString(id, lang),
	}}, nil
}

func (h *Handler) Languages(ctx *gin.Context) (Result, error) {
	return Result{Data: gin.H{
		"current":   h.i18n.GetCurrentLanguage(),
		"supported": h.i18n.GetSupportedLanguages(),
	}}, nil
}

type LanguageReq struct {
	Language string `json:"language" binding:"required"`
}

func (h *Handler) SetLanguage(ctx *gin.Context, req LanguageReq) (Result, error) {
	if !h.i18n.SetCurrentLanguage(req.Language) {
		return Result{Code: http.StatusBadRequest, Msg: "不支持的语言"}, nil
	}
	return Result{Data: gin.H{"current": h.i18n.GetCurrentLanguage()}}, nil
}
