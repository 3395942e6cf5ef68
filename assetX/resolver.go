package assetX

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gitee.com/hgg_test/sign_res/cachex/cacheLocalx"
	"gitee.com/hgg_test/sign_res/cachex/cacheLocalx/cacheLruX"
	"gitee.com/hgg_test/sign_res/convertx"
	"gitee.com/hgg_test/sign_res/logx"
	"gitee.com/hgg_test/sign_res/observationX/prometheusX"
	"gitee.com/hgg_test/sign_res/syncX"
)

const metricsName = "asset"

// Resolver sign_id -> 资源文件解析器
//   - 路径表来自 JSON 资源分配文件，首次使用时自动加载
//   - 已解码资源放在同一个 LRU 中，key 为 "<kind>:<sign_id>"，总条数不超过当前生效上限
//   - 插入缓存前采样内存，进入/退出低内存时调整上限并通知 listener
type Resolver struct {
	cfg Config

	initMu      sync.Mutex
	initialized atomic.Bool
	baseDir     atomic.Pointer[string]
	paths       *syncX.Map[string, string]

	cacheMu      sync.Mutex
	cache        cacheLocalx.LruCacheIn[string, Resource]
	normalLimit  atomic.Int64
	lowMemory    atomic.Bool
	lastMemCheck atomic.Int64

	probe    MemoryProbe
	listener LowMemoryListener
	client   *http.Client
	metrics  *prometheusX.CacheMetrics
	l        logx.Loggerx
}

// NewResolver 创建资源解析器，不会立即读取配置
//   - probe 为 nil 时不做内存采样，listener / metrics 可为 nil
func NewResolver(cfg Config, probe MemoryProbe, listener LowMemoryListener, metrics *prometheusX.CacheMetrics, l logx.Loggerx) (*Resolver, error) {
	cfg = cfg.withDefaults()
	cache, err := cacheLruX.NewLruCacheStr[string, Resource](cfg.NormalCacheLimit, nil)
	if err != nil {
		return nil, err
	}
	r := &Resolver{
		cfg:      cfg,
		paths:    syncX.NewMap[string, string](),
		cache:    cache,
		probe:    probe,
		listener: listener,
		client:   &http.Client{Timeout: cfg.HTTPTimeout},
		metrics:  metrics,
		l:        l,
	}
	base := DefaultResourcesDir
	r.baseDir.Store(&base)
	r.normalLimit.Store(int64(cfg.NormalCacheLimit))
	metrics.SetLimit(metricsName, cfg.NormalCacheLimit)
	metrics.SetLowMemory(metricsName, false)
	return r, nil
}

// Initialize 读取资源分配文件，已初始化时直接返回
//   - 配置文件不存在返回 ErrConfigurationNotFound，此时保持未初始化，下次使用会重试
func (r *Resolver) Initialize() error {
	r.initMu.Lock()
	defer r.initMu.Unlock()
	if r.initialized.Load() {
		return nil
	}
	return r.initLocked()
}

// ReloadConfiguration 重新读取资源分配文件，清空路径表与缓存
func (r *Resolver) ReloadConfiguration() error {
	r.initMu.Lock()
	defer r.initMu.Unlock()
	r.initialized.Store(false)
	return r.initLocked()
}

func (r *Resolver) initLocked() error {
	r.paths.Clear()
	r.ClearCache()

	doc, err := loadAssetConfig(r.cfg.ConfigPath, r.l)
	if err != nil {
		r.l.Error("加载资源配置失败", logx.String("path", r.cfg.ConfigPath), logx.Error(err))
		return err
	}
	if err = os.MkdirAll(doc.BaseDir, 0o755); err != nil {
		r.l.Warn("创建资源目录失败", logx.String("dir", doc.BaseDir), logx.Error(err))
	}
	base := doc.BaseDir
	r.baseDir.Store(&base)

	seenPath := make(map[string]string, len(doc.Entries))
	for _, e := range doc.Entries {
		if prev, loaded := r.paths.Swap(e.SignId, e.Asset); loaded {
			r.l.Warn("sign_id 重复，使用后出现的配置", logx.SignId(e.SignId), logx.String("old", prev), logx.String("new", e.Asset))
		}
		if other, ok := seenPath[e.Asset]; ok && other != e.SignId {
			r.l.Warn("多个 sign_id 指向同一资源", logx.String("asset", e.Asset), logx.Strings("sign_ids", []string{other, e.SignId}))
		}
		seenPath[e.Asset] = e.SignId
	}

	r.initialized.Store(true)
	r.l.Info("资源配置加载完成",
		logx.String("path", r.cfg.ConfigPath),
		logx.String("base_dir", base),
		logx.Int("assets", r.paths.Len()),
	)
	return nil
}

func (r *Resolver) ensureInitialized() error {
	if r.initialized.Load() {
		return nil
	}
	return r.Initialize()
}

// canonicalId 数字 sign_id 统一为十进制形式（"007" 与 7 等价）
func canonicalId(signId string) (string, error) {
	signId = strings.TrimSpace(signId)
	if signId == "" {
		return "", fmt.Errorf("%w: sign_id 为空", ErrInvalidArgument)
	}
	if id, ok := convertx.ToSignId(signId); ok {
		return id, nil
	}
	return signId, nil
}

func (r *Resolver) rawValue(signId string) (string, string, error) {
	id, err := canonicalId(signId)
	if err != nil {
		return "", "", err
	}
	if err = r.ensureInitialized(); err != nil {
		return "", "", err
	}
	raw, ok := r.paths.Load(id)
	if !ok {
		return "", "", fmt.Errorf("%w: sign_id=%s", ErrNotFound, id)
	}
	return id, raw, nil
}

// GetAssetPath sign_id 对应的资源完整路径
//   - 文件不存在只记录告警，仍返回路径
func (r *Resolver) GetAssetPath(signId string) (string, error) {
	id, raw, err := r.rawValue(signId)
	if err != nil {
		return "", err
	}
	p := r.join(raw)
	if _, err = os.Stat(p); err != nil {
		r.l.Warn("资源文件不存在", logx.SignId(id), logx.String("path", p))
	}
	return p, nil
}

// GetAssetPathByID 同 GetAssetPath
func (r *Resolver) GetAssetPathByID(signId int) (string, error) {
	return r.GetAssetPath(strconv.Itoa(signId))
}

// join 相对路径拼接到资源目录下，绝对路径原样返回
//   - 保留配置中资源目录的写法（./Resources + logo/logo.png -> ./Resources/logo/logo.png），只规整相对部分
func (r *Resolver) join(raw string) string {
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	rel := path.Clean(strings.TrimLeft(strings.ReplaceAll(raw, `\`, "/"), "/"))
	base := *r.baseDir.Load()
	switch {
	case rel == ".":
		return base
	case base == "":
		return filepath.FromSlash(rel)
	}
	return strings.TrimRight(base, `/\`) + string(filepath.Separator) + filepath.FromSlash(rel)
}

// load 缓存优先，未命中时解析路径、校验扩展名、解码并写入缓存
func (r *Resolver) load(signId string, kind Kind, decode decodeFunc) (Resource, error) {
	id, err := canonicalId(signId)
	if err != nil {
		return Resource{}, err
	}
	key := kind.String() + ":" + id
	if res, ok := r.cache.Get(key); ok {
		r.metrics.Hit(metricsName)
		return res, nil
	}
	r.metrics.Miss(metricsName)

	path, err := r.GetAssetPath(id)
	if err != nil {
		return Resource{}, err
	}
	if ext := filepath.Ext(path); !kind.Allows(ext) {
		return Resource{}, fmt.Errorf("%w: %s 不支持扩展名 %q", ErrUnsupportedFormat, kind, ext)
	}
	res, err := decode(path)
	if err != nil {
		r.l.Error("资源解码失败", logx.SignId(id), logx.String("kind", kind.String()), logx.String("path", path), logx.Error(err))
		return Resource{}, err
	}
	r.insert(key, res)
	return res, nil
}

// GetImageAsset 已解码图片
func (r *Resolver) GetImageAsset(signId string) (*ImageAsset, error) {
	res, err := r.load(signId, KindImage, decodeImage)
	if err != nil {
		return nil, err
	}
	return res.Image, nil
}

// GetIconAsset 已解析图标（.ico / .png）
func (r *Resolver) GetIconAsset(signId string) (*IconAsset, error) {
	res, err := r.load(signId, KindIcon, decodeIcon)
	if err != nil {
		return nil, err
	}
	return res.Icon, nil
}

// GetSvgAssetContent SVG 文本
func (r *Resolver) GetSvgAssetContent(signId string) (string, error) {
	res, err := r.load(signId, KindSvg, decodeSvg)
	if err != nil {
		return "", err
	}
	return res.Svg, nil
}

func (r *Resolver) GetAudioAsset(signId string) (*MediaAsset, error) {
	res, err := r.load(signId, KindAudio, decodeMedia(KindAudio))
	if err != nil {
		return nil, err
	}
	return res.Media, nil
}

func (r *Resolver) GetVideoAsset(signId string) (*MediaAsset, error) {
	res, err := r.load(signId, KindVideo, decodeMedia(KindVideo))
	if err != nil {
		return nil, err
	}
	return res.Media, nil
}

// OpenAssetStream 打开资源原始文件流，不经过缓存，调用方负责 Close
func (r *Resolver) OpenAssetStream(signId string) (io.ReadCloser, error) {
	path, err := r.GetAssetPath(signId)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// insert 写入前采样内存，状态变化时在锁外通知 listener
func (r *Resolver) insert(key string, res Resource) {
	r.cacheMu.Lock()
	t := r.checkMemoryLocked()
	if r.cache.Add(key, res) {
		r.metrics.Evict(metricsName, 1)
	}
	r.metrics.SetSize(metricsName, r.cache.Len())
	r.cacheMu.Unlock()
	r.notify(t)
}

type transition int8

const (
	noTransition transition = iota
	enteredLowMemory
	exitedLowMemory
)

func (r *Resolver) checkMemoryLocked() transition {
	if r.probe == nil {
		return noTransition
	}
	now := time.Now().UnixNano()
	if iv := r.cfg.MemCheckInterval; iv > 0 && now-r.lastMemCheck.Load() < int64(iv) {
		return noTransition
	}
	r.lastMemCheck.Store(now)

	low, err := r.probe.IsLowMemory()
	if err != nil {
		r.l.Debug("内存采样失败", logx.Error(err))
		return noTransition
	}
	if low {
		if r.enterLocked() {
			return enteredLowMemory
		}
		return noTransition
	}
	if r.exitLocked() {
		return exitedLowMemory
	}
	return noTransition
}

func (r *Resolver) notify(t transition) {
	if r.listener == nil {
		return
	}
	switch t {
	case enteredLowMemory:
		r.listener.EnterLowMemoryMode()
	case exitedLowMemory:
		r.listener.ExitLowMemoryMode()
	}
}

func (r *Resolver) effectiveLimitLocked() int {
	normal := int(r.normalLimit.Load())
	if r.lowMemory.Load() {
		return min(r.cfg.LowMemoryCacheLimit, normal)
	}
	return normal
}

func (r *Resolver) resizeLocked() {
	limit := r.effectiveLimitLocked()
	if evicted := r.cache.Resize(limit); evicted > 0 {
		r.metrics.Evict(metricsName, evicted)
		r.l.Info("资源缓存缩容淘汰", logx.Int("evicted", evicted), logx.Int("limit", limit))
	}
	r.metrics.SetLimit(metricsName, limit)
	r.metrics.SetSize(metricsName, r.cache.Len())
}

func (r *Resolver) enterLocked() bool {
	if r.lowMemory.Swap(true) {
		return false
	}
	r.resizeLocked()
	r.metrics.SetLowMemory(metricsName, true)
	r.l.Warn("资源缓存进入低内存模式", logx.Int("limit", r.cache.Cap()))
	return true
}

func (r *Resolver) exitLocked() bool {
	if !r.lowMemory.Swap(false) {
		return false
	}
	r.resizeLocked()
	r.metrics.SetLowMemory(metricsName, false)
	r.l.Info("资源缓存退出低内存模式", logx.Int("limit", r.cache.Cap()))
	return true
}

// EnterLowMemoryMode 缓存上限切换为低内存上限并立即淘汰超出部分，通知 listener
func (r *Resolver) EnterLowMemoryMode() {
	r.cacheMu.Lock()
	changed := r.enterLocked()
	r.cacheMu.Unlock()
	if changed {
		r.notify(enteredLowMemory)
	}
}

// ExitLowMemoryMode 恢复正常上限，通知 listener
func (r *Resolver) ExitLowMemoryMode() {
	r.cacheMu.Lock()
	changed := r.exitLocked()
	r.cacheMu.Unlock()
	if changed {
		r.notify(exitedLowMemory)
	}
}

func (r *Resolver) IsLowMemoryMode() bool {
	return r.lowMemory.Load()
}

// ClearCache 清空已解码资源缓存，路径表保留
func (r *Resolver) ClearCache() {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.cache.Purge()
	r.metrics.SetSize(metricsName, 0)
}

// UpdateCacheSizeLimit 设置正常上限（限制在 [5,200]），超出部分立即按 LRU 淘汰，返回实际生效的正常上限
//   - 低内存模式下生效上限取低内存上限与新上限的较小值
func (r *Resolver) UpdateCacheSizeLimit(limit int) int {
	limit = ClampCacheLimit(limit)
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.normalLimit.Store(int64(limit))
	r.resizeLocked()
	r.l.Info("资源缓存上限已更新", logx.Int("limit", limit), logx.Bool("low_memory", r.lowMemory.Load()))
	return limit
}

// GetCacheSize 当前缓存条数
func (r *Resolver) GetCacheSize() int {
	return r.cache.Len()
}

// CacheLimit 当前生效的缓存上限
func (r *Resolver) CacheLimit() int {
	return r.cache.Cap()
}

// CachedKeys 缓存 key，从最久未访问到最近访问
func (r *Resolver) CachedKeys() []string {
	return r.cache.Keys()
}

// CachedEntries 缓存条目概要，从最久未访问到最近访问，不会刷新访问顺序
func (r *Resolver) CachedEntries() []CacheEntry {
	keys := r.cache.Keys()
	res := make([]CacheEntry, 0, len(keys))
	for _, k := range keys {
		v, ok := r.cache.Peek(k)
		if !ok {
			continue
		}
		res = append(res, CacheEntry{Key: k, Kind: v.Kind.String(), Bytes: v.approxBytes()})
	}
	return res
}

// ListAssets 已注册的全部资源，按 sign_id 升序
func (r *Resolver) ListAssets() ([]AssetEntry, error) {
	if err := r.ensureInitialized(); err != nil {
		return nil, err
	}
	snap := r.paths.Snapshot()
	res := make([]AssetEntry, 0, len(snap))
	for id, raw := range snap {
		res = append(res, AssetEntry{SignId: id, Path: r.join(raw)})
	}
	sort.Slice(res, func(i, j int) bool {
		a, b := res[i].SignId, res[j].SignId
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return res, nil
}
