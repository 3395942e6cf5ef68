package i18nX

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"gitee.com/hgg_test/sign_res/cachex/cacheLocalx"
	"gitee.com/hgg_test/sign_res/cachex/cacheLocalx/cacheLocalRistrettox"
	"gitee.com/hgg_test/sign_res/logx"
	"gitee.com/hgg_test/sign_res/observationX/prometheusX"
)

const metricsName = "i18n"

// Store 本地化字符串存储【sign_id + 语言 -> 文本，带兜底链与 TTL 字符串缓存】
//   - 读路径无锁：整表通过 atomic.Pointer 整体替换
//   - 加载、切换语言、切换加载模式由 mu 串行化
//   - GetString 永远不会返回 error 或 panic，失败时返回固定文本
type Store struct {
	mu  sync.Mutex
	cfg Config

	initialized atomic.Bool
	data        atomic.Pointer[table]
	current     atomic.Pointer[string]
	onlyCurrent atomic.Bool
	lowMemory   atomic.Bool

	cache   cacheLocalx.CacheLocalIn[string, string]
	metrics *prometheusX.CacheMetrics
	l       logx.Loggerx
}

// NewStore 创建本地化存储，不会立即加载文件，首次使用或显式 Initialize 时加载
//   - cache 为字符串缓存，参考 NewStringCache
//   - metrics 可为 nil
func NewStore(cfg Config, cache cacheLocalx.CacheLocalIn[string, string], metrics *prometheusX.CacheMetrics, l logx.Loggerx) *Store {
	cfg = cfg.withDefaults()
	s := &Store{
		cfg:     cfg,
		cache:   cache,
		metrics: metrics,
		l:       l,
	}
	cur := cfg.CurrentLanguage
	s.current.Store(&cur)
	s.onlyCurrent.Store(cfg.LoadOnlyCurrentLanguage)
	s.data.Store(emptyTable())
	return s
}

// NewStringCache 按配置创建 ristretto 字符串缓存
func NewStringCache(cfg Config) (cacheLocalx.CacheLocalIn[string, string], error) {
	cfg = cfg.withDefaults()
	return cacheLocalRistrettox.NewCountLimited[string, string](cfg.CacheMaxEntries)
}

// Initialize 加载本地化文件，已初始化时直接返回
//   - 文件不存在或解析失败时返回 error，此时表为空，GetString 返回 NotFoundText；修复文件后调用 ReloadLocalizationData
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized.Load() {
		return nil
	}
	err := s.loadLocked()
	s.initialized.Store(true)
	return err
}

// ReloadLocalizationData 清空字符串缓存并重新解析文件
func (s *Store) ReloadLocalizationData() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.loadLocked()
	s.initialized.Store(true)
	return err
}

func (s *Store) loadLocked() error {
	s.cache.Clear()
	var keep func(string) bool
	if s.onlyCurrent.Load() {
		retained := map[string]struct{}{
			s.currentLanguage():   {},
			s.cfg.DefaultLanguage: {},
			FallbackLanguage:      {},
		}
		keep = func(tag string) bool {
			_, ok := retained[tag]
			return ok
		}
	}

	t, err := loadTable(s.cfg.DataPath, keep, s.l)
	if err != nil {
		s.l.Error("加载本地化数据失败", logx.Error(err), logx.String("path", s.cfg.DataPath))
		s.data.Store(emptyTable())
		return err
	}
	s.data.Store(t)
	s.l.Info("本地化数据加载完成",
		logx.Int("entries", len(t.entries)),
		logx.Int("languages", len(t.languages)),
		logx.Bool("load_only_current_language", keep != nil),
		logx.String("current_language", s.currentLanguage()),
	)
	return nil
}

func (s *Store) ensureInitialized() {
	if s.initialized.Load() {
		return
	}
	if err := s.Initialize(); err != nil {
		s.l.Warn("本地化自动初始化失败", logx.Error(err))
	}
}

// GetString 获取本地化文本
//   - lang 为空时使用当前语言
//   - 查找顺序：字符串缓存 -> 指定语言 -> gh-yh 兜底
//   - sign_id 不存在返回 NotFoundText，存在但无可用翻译返回 "{id}_MISSING_{lang}"，内部异常返回 "ERROR_{id}"
//   - 只有真实翻译会写入缓存
func (s *Store) GetString(signId int, lang ...string) (res string) {
	defer func() {
		if r := recover(); r != nil {
			s.l.Error("获取本地化文本异常", logx.Int("sign_id", signId), logx.Any("panic", r))
			res = "ERROR_" + strconv.Itoa(signId)
		}
	}()

	s.ensureInitialized()

	tag := s.currentLanguage()
	if len(lang) > 0 && strings.TrimSpace(lang[0]) != "" {
		tag = NormalizeLanguageTag(lang[0])
	}

	key := cacheKey(signId, tag)
	if v, err := s.cache.Get(key); err == nil && v != "" {
		s.metrics.Hit(metricsName)
		return v
	}
	s.metrics.Miss(metricsName)

	translations, ok := s.data.Load().entries[signId]
	if !ok {
		return NotFoundText
	}
	text := translations[tag]
	if text == "" {
		text = translations[FallbackLanguage]
	}
	if text == "" {
		return fmt.Sprintf("%d_MISSING_%s", signId, tag)
	}

	if err := s.cache.Set(key, text, s.cfg.CacheTTL, 1); err != nil {
		s.l.Debug("本地化文本写入缓存失败", logx.String("key", key), logx.Error(err))
	}
	return text
}

// SetCurrentLanguage 切换当前语言
//   - 语言为空或文件中没有任何条目包含该语言时返回 false
//   - 切换成功会清空字符串缓存；只加载当前语言模式下会重新加载，使新语言的数据进入内存
func (s *Store) SetCurrentLanguage(lang string) bool {
	if strings.TrimSpace(lang) == "" {
		s.l.Warn("切换语言失败，语言为空")
		return false
	}
	s.ensureInitialized()

	tag := NormalizeLanguageTag(lang)
	if _, ok := s.data.Load().languages[tag]; !ok {
		s.l.Warn("切换语言失败，不支持的语言", logx.String("language", tag))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentLanguage() == tag {
		return true
	}
	s.current.Store(&tag)
	s.cache.Clear()
	if s.onlyCurrent.Load() {
		if err := s.loadLocked(); err != nil {
			s.l.Error("切换语言后重新加载失败", logx.String("language", tag), logx.Error(err))
		}
	}
	s.l.Info("当前语言已切换", logx.String("language", tag))
	return true
}

// GetCurrentLanguage 当前语言（已规整）
func (s *Store) GetCurrentLanguage() string {
	return s.currentLanguage()
}

func (s *Store) currentLanguage() string {
	return *s.current.Load()
}

// GetSupportedLanguages 文件中出现过的全部语言，按字典序
func (s *Store) GetSupportedLanguages() []string {
	s.ensureInitialized()
	langs := s.data.Load().languages
	res := make([]string, 0, len(langs))
	for tag := range langs {
		res = append(res, tag)
	}
	sort.Strings(res)
	return res
}

// ClearCache 清空字符串缓存
func (s *Store) ClearCache() {
	s.cache.Clear()
}

// LoadOnlyCurrentLanguage 当前是否处于只加载当前语言模式
func (s *Store) LoadOnlyCurrentLanguage() bool {
	return s.onlyCurrent.Load()
}

// SetLoadOnlyCurrentLanguage 运行时切换加载模式，模式变化时重新加载
//   - 低内存模式下关闭该开关只记录偏好，退出低内存模式时生效
func (s *Store) SetLoadOnlyCurrentLanguage(only bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.LoadOnlyCurrentLanguage = only
	effective := only || s.lowMemory.Load()
	if effective == s.onlyCurrent.Load() {
		return nil
	}
	s.onlyCurrent.Store(effective)
	if !s.initialized.Load() {
		return nil
	}
	return s.loadLocked()
}

// ReleaseResourcesOnLowMemory 低内存时释放资源：清空字符串缓存，并切换为只加载当前语言后重新加载
func (s *Store) ReleaseResourcesOnLowMemory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Clear()
	if !s.lowMemory.Swap(true) {
		s.metrics.SetLowMemory(metricsName, true)
		s.l.Warn("本地化进入低内存模式")
	}
	if s.onlyCurrent.Load() {
		return
	}
	s.onlyCurrent.Store(true)
	if s.initialized.Load() {
		if err := s.loadLocked(); err != nil {
			s.l.Error("低内存模式重新加载失败", logx.Error(err))
		}
	}
}

// EnterLowMemoryMode 进入低内存模式，等同 ReleaseResourcesOnLowMemory
func (s *Store) EnterLowMemoryMode() {
	s.ReleaseResourcesOnLowMemory()
}

// ExitLowMemoryMode 退出低内存模式，恢复配置的加载模式
func (s *Store) ExitLowMemoryMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lowMemory.Swap(false) {
		return
	}
	s.metrics.SetLowMemory(metricsName, false)
	s.l.Info("本地化退出低内存模式")
	if s.onlyCurrent.Load() == s.cfg.LoadOnlyCurrentLanguage {
		return
	}
	s.onlyCurrent.Store(s.cfg.LoadOnlyCurrentLanguage)
	if s.initialized.Load() {
		if err := s.loadLocked(); err != nil {
			s.l.Error("退出低内存模式重新加载失败", logx.Error(err))
		}
	}
}

// IsLowMemoryMode 是否处于低内存模式
func (s *Store) IsLowMemoryMode() bool {
	return s.lowMemory.Load()
}

// Close 释放字符串缓存的后台协程
func (s *Store) Close() {
	s.cache.Close()
}

func cacheKey(signId int, tag string) string {
	return strconv.Itoa(signId) + "|" + tag
}
