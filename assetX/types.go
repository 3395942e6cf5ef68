package assetX

import (
	"errors"
	"image"
	"os"
	"strings"
	"time"

	"github.com/corona10/goimagehash"
)

const (
	MinCacheLimit              = 5
	MaxCacheLimit              = 200
	DefaultCacheLimit          = 50
	DefaultLowMemoryCacheLimit = 10
	DefaultHTTPTimeout         = 30 * time.Second
	DefaultResourcesDir        = "./Resources"

	maxWebContentBytes = 16 << 20
)

// Config 资源解析配置
//   - ConfigPath: 资源分配 JSON 文件（Resources + AssetList）
//   - NormalCacheLimit / LowMemoryCacheLimit: 正常与低内存时的缓存条数上限，会被限制在 [5,200]
//   - MemCheckInterval: 插入缓存前内存采样的最小间隔，0 表示每次插入都采样
//   - HTTPTimeout: 网络资源请求超时，默认30秒
type Config struct {
	ConfigPath          string        `mapstructure:"config_path"`
	NormalCacheLimit    int           `mapstructure:"normal_cache_limit"`
	LowMemoryCacheLimit int           `mapstructure:"low_memory_cache_limit"`
	MemCheckInterval    time.Duration `mapstructure:"mem_check_interval"`
	HTTPTimeout         time.Duration `mapstructure:"http_timeout"`
}

func (c Config) withDefaults() Config {
	if c.NormalCacheLimit == 0 {
		c.NormalCacheLimit = DefaultCacheLimit
	}
	if c.LowMemoryCacheLimit == 0 {
		c.LowMemoryCacheLimit = DefaultLowMemoryCacheLimit
	}
	c.NormalCacheLimit = ClampCacheLimit(c.NormalCacheLimit)
	c.LowMemoryCacheLimit = ClampCacheLimit(c.LowMemoryCacheLimit)
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	return c
}

// ClampCacheLimit 将缓存上限限制在 [MinCacheLimit, MaxCacheLimit]
func ClampCacheLimit(n int) int {
	return min(max(n, MinCacheLimit), MaxCacheLimit)
}

// MemoryProbe 内存压力采样【gopsutilx.SystemLoad 实现】
type MemoryProbe interface {
	IsLowMemory() (bool, error)
}

// LowMemoryListener 资源解析进入/退出低内存模式时的通知对象【i18nX.Store 实现】
type LowMemoryListener interface {
	EnterLowMemoryMode()
	ExitLowMemoryMode()
}

// Kind 资源解码类型，每种类型有自己的扩展名白名单
type Kind uint8

const (
	KindImage Kind = iota + 1
	KindIcon
	KindSvg
	KindAudio
	KindVideo
	KindWeb
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindIcon:
		return "icon"
	case KindSvg:
		return "svg"
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	case KindWeb:
		return "web"
	}
	return "unknown"
}

var allowedExt = map[Kind][]string{
	KindImage: {".png", ".jpg", ".jpeg", ".bmp", ".gif", ".webp", ".tif", ".tiff"},
	KindIcon:  {".ico", ".png"},
	KindSvg:   {".svg"},
	KindAudio: {".mp3", ".wav", ".wma", ".aac", ".flac", ".ogg", ".m4a"},
	KindVideo: {".mp4", ".avi", ".wmv", ".mov", ".mkv", ".webm"},
}

// Allows 扩展名是否在该类型白名单内（忽略大小写）
func (k Kind) Allows(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range allowedExt[k] {
		if e == ext {
			return true
		}
	}
	return false
}

// Resource 缓存中的已解码资源，按 Kind 只有对应字段有值
type Resource struct {
	Kind  Kind
	Image *ImageAsset
	Icon  *IconAsset
	Svg   string
	Media *MediaAsset
	Web   string
}

func (r Resource) approxBytes() int64 {
	switch r.Kind {
	case KindImage:
		if r.Image != nil {
			return int64(r.Image.Width) * int64(r.Image.Height) * 4
		}
	case KindIcon:
		if r.Icon != nil {
			return int64(len(r.Icon.Data))
		}
	case KindSvg:
		return int64(len(r.Svg))
	case KindAudio, KindVideo:
		if r.Media != nil {
			return r.Media.Size
		}
	case KindWeb:
		return int64(len(r.Web))
	}
	return 0
}

// CacheEntry 缓存条目概要，Bytes 为估算值（图片按 RGBA 计）
type CacheEntry struct {
	Key   string `json:"key"`
	Kind  string `json:"kind"`
	Bytes int64  `json:"bytes"`
}

// AssetEntry 已注册资源
type AssetEntry struct {
	SignId string `json:"sign_id"`
	Path   string `json:"path"`
}

// ImageAsset 已解码图片
//   - Hash: 均值感知哈希，用于判断两张资源图是否近似，解码后计算失败时为 nil
type ImageAsset struct {
	Image  image.Image
	Format string
	Width  int
	Height int
	Hash   *goimagehash.ImageHash
}

var errNoHash = errors.New("image hash unavailable, 图片没有感知哈希")

// Distance 两张图片感知哈希的汉明距离，越小越相似
func (a *ImageAsset) Distance(other *ImageAsset) (int, error) {
	if a == nil || other == nil || a.Hash == nil || other.Hash == nil {
		return 0, errNoHash
	}
	return a.Hash.Distance(other.Hash)
}

// IconEntry ico 目录项
type IconEntry struct {
	Width    int
	Height   int
	BitCount int
	Size     int
	PNG      bool
}

// IconAsset 已解析图标
//   - Image: 尺寸最大的一项，仅当其内嵌 PNG 时解码，BMP 位图项为 nil
type IconAsset struct {
	Entries []IconEntry
	Image   image.Image
	Data    []byte
}

// MediaAsset 音视频资源句柄，播放方按需打开
type MediaAsset struct {
	Path    string
	Format  string
	Size    int64
	ModTime time.Time
}

// Open 打开媒体文件
func (m *MediaAsset) Open() (*os.File, error) {
	return os.Open(m.Path)
}
