package configx

import (
	"github.com/fsnotify/fsnotify"
)

// ConfigIn 基于viper框架的配置服务
type ConfigIn interface {
	// InitViperLocal 配置单个文件
	//   - filePath是文件路径 精确到文件名，如：config/config.yaml
	//   - defaultConfig是默认配置项【DefaultConfigs() 提供本服务全部默认值】
	InitViperLocal(filePath string, defaultConfig ...DefaultConfig) error

	// InitViperLocalWatch 配置单个本地文件并监听文件变化，变化时依次执行 OnChange 注册的回调
	InitViperLocalWatch(filePath string, defaultConfig ...DefaultConfig) error

	// OnChange 注册配置文件变更回调【InitViperLocalWatch 前后注册均可】
	OnChange(fn func(in fsnotify.Event))

	// Get 获取配置项
	Get(key string) any

	// GetUnmarshalKey 将某一段配置反序列化为结构体，rawVal 要传指针
	GetUnmarshalKey(key string, rawVal any) error

	// Unmarshal 将整个配置文件反序列化为结构体，rawVal 要传指针
	Unmarshal(rawVal any) error
}

type DefaultConfig struct {
	Key string
	Val any
}
