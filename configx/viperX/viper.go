package viperX

import (
	"sync"

	"gitee.com/hgg_test/sign_res/configx"
	"gitee.com/hgg_test/sign_res/logx"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type ViperConfigStr struct {
	Config *viper.Viper

	mutex    sync.RWMutex
	onChange []func(in fsnotify.Event)

	l logx.Loggerx
}

// NewViperConfigStr 创建配置服务
//   - 命令行参数（--config）由 main 解析后传入文件路径，这里不再定义 pflag
func NewViperConfigStr(l logx.Loggerx) configx.ConfigIn {
	return &ViperConfigStr{
		Config: viper.New(),
		l:      l,
	}
}

// GetViper 获取viper的实例
func (v *ViperConfigStr) GetViper() *viper.Viper {
	return v.Config
}

// InitViperLocal 配置单个文件
//   - filePath是文件路径 精确到文件名，如：config/config.yaml
//   - defaultConfig是默认配置项，文件缺少对应项时使用
func (v *ViperConfigStr) InitViperLocal(filePath string, defaultConfig ...configx.DefaultConfig) error {
	v.Config.SetConfigFile(filePath)
	for _, s := range defaultConfig {
		v.Config.SetDefault(s.Key, s.Val)
	}
	if err := v.Config.ReadInConfig(); err != nil {
		v.l.Error("读取配置文件失败", logx.String("fileName", filePath), logx.Error(err))
		return err
	}
	v.l.Info("配置文件加载完成", logx.String("fileName", v.Config.ConfigFileUsed()))
	return nil
}

// InitViperLocalWatch 配置本地文件并监听文件变化
func (v *ViperConfigStr) InitViperLocalWatch(filePath string, defaultConfig ...configx.DefaultConfig) error {
	if err := v.InitViperLocal(filePath, defaultConfig...); err != nil {
		return err
	}

	// 配置文件变更时，执行回调函数【viper 已重新读取文件】
	v.Config.OnConfigChange(func(in fsnotify.Event) {
		v.l.Warn("本地配置文件发生变更: ", logx.String("fileName", in.Name), logx.String("op", in.Op.String()))
		v.mutex.RLock()
		fns := append([]func(fsnotify.Event){}, v.onChange...)
		v.mutex.RUnlock()
		for _, fn := range fns {
			fn(in)
		}
	})
	// 开始监听配置文件变更
	v.Config.WatchConfig()
	return nil
}

func (v *ViperConfigStr) OnChange(fn func(in fsnotify.Event)) {
	if fn == nil {
		return
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.onChange = append(v.onChange, fn)
}

func (v *ViperConfigStr) Get(key string) any {
	return v.Config.Get(key)
}

func (v *ViperConfigStr) GetUnmarshalKey(key string, rawVal any) error {
	return v.Config.UnmarshalKey(key, rawVal)
}

func (v *ViperConfigStr) Unmarshal(rawVal any) error {
	return v.Config.Unmarshal(rawVal)
}
