package assetX

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gitee.com/hgg_test/sign_res/convertx"
	"gitee.com/hgg_test/sign_res/logx"
	"github.com/spf13/viper"
)

// assetDocument 资源分配文件解析结果
//
//	{
//	  "Resources": "./Resources",
//	  "AssetList": [ { "sign_id": 10001, "Asset": "images/logo.png" } ]
//	}
type assetDocument struct {
	BaseDir string
	Entries []assetEntry
}

type assetEntry struct {
	SignId string
	Asset  string
}

// loadAssetConfig 使用 viper 读取 JSON 资源分配文件
//   - 条目字段名忽略大小写，sign_id 支持数字或数字字符串
//   - 格式错误的条目记录告警后跳过，不影响其他条目
func loadAssetConfig(path string, l logx.Loggerx) (*assetDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigurationNotFound, path)
		}
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取资源配置失败 %s: %w", path, err)
	}

	doc := &assetDocument{BaseDir: strings.TrimSpace(v.GetString("Resources"))}
	if doc.BaseDir == "" {
		doc.BaseDir = DefaultResourcesDir
	}

	raw := v.Get("AssetList")
	if raw == nil {
		l.Warn("资源配置没有 AssetList", logx.String("path", path))
		return doc, nil
	}
	list, ok := raw.([]any)
	if !ok {
		l.Warn("资源配置 AssetList 不是数组", logx.String("path", path))
		return doc, nil
	}

	doc.Entries = make([]assetEntry, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			l.Warn("跳过非对象资源条目", logx.Int("index", i))
			continue
		}
		signId, ok := convertx.ToSignId(lookupFold(m, "sign_id"))
		if !ok {
			l.Warn("跳过资源条目，sign_id 非法", logx.Int("index", i), logx.Any("sign_id", lookupFold(m, "sign_id")))
			continue
		}
		asset, _ := lookupFold(m, "Asset").(string)
		asset = strings.TrimSpace(asset)
		if asset == "" {
			l.Warn("跳过资源条目，Asset 为空", logx.Int("index", i), logx.SignId(signId))
			continue
		}
		doc.Entries = append(doc.Entries, assetEntry{SignId: signId, Asset: asset})
	}
	return doc, nil
}

func lookupFold(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}
