package assetX

import "errors"

// 资源解析错误分类，调用方使用 errors.Is 判断
//   - 文件读取、网络请求失败时直接返回 os / net/http 原始错误，不做包装
var (
	ErrConfigurationNotFound = errors.New("asset configuration not found, 资源配置文件不存在")
	ErrInvalidArgument       = errors.New("invalid argument, 参数非法")
	ErrNotFound              = errors.New("asset not found, 未注册的资源id")
	ErrUnsupportedFormat     = errors.New("unsupported asset format, 不支持的资源格式")
)
