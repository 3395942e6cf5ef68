package i18nX

import (
	"errors"
	"time"
)

const (
	// NotFoundText sign_id 不存在时返回的固定文本
	NotFoundText = "未找到本地化id"

	fieldSignId = "sign_id"
	fieldIsEx   = "isEx"

	DefaultCacheTTL        = 30 * time.Minute
	DefaultCacheMaxEntries = 1000
)

// ErrDataNotFound 本地化数据文件不存在
var ErrDataNotFound = errors.New("localization data file not found, 本地化数据文件不存在")

// Config 本地化配置
//   - DataPath: 本地化 JSON 文件路径
//   - CurrentLanguage: 启动时的当前语言，为空时等于默认语言
//   - LoadOnlyCurrentLanguage: 只加载当前语言、默认语言、gh-yh，节省内存
//   - CacheTTL / CacheMaxEntries: 字符串缓存过期时间与最大条数
type Config struct {
	DataPath                string        `mapstructure:"data_path"`
	DefaultLanguage         string        `mapstructure:"default_language"`
	CurrentLanguage         string        `mapstructure:"current_language"`
	LoadOnlyCurrentLanguage bool          `mapstructure:"load_only_current_language"`
	CacheTTL                time.Duration `mapstructure:"cache_ttl"`
	CacheMaxEntries         int64         `mapstructure:"cache_max_entries"`
}

func (c Config) withDefaults() Config {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
	c.DefaultLanguage = NormalizeLanguageTag(c.DefaultLanguage)
	if c.CurrentLanguage == "" {
		c.CurrentLanguage = c.DefaultLanguage
	}
	c.CurrentLanguage = NormalizeLanguageTag(c.CurrentLanguage)
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.CacheMaxEntries <= 0 {
		c.CacheMaxEntries = DefaultCacheMaxEntries
	}
	return c
}

// table 一次加载的完整本地化表，发布后只读
//   - entries: sign_id -> 语言 -> 文本
//   - languages: 文件中出现过的全部语言（只加载当前语言时也完整记录）
type table struct {
	entries   map[int]map[string]string
	languages map[string]struct{}
}

func emptyTable() *table {
	return &table{entries: map[int]map[string]string{}, languages: map[string]struct{}{}}
}
