package i18nX

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"gitee.com/hgg_test/sign_res/convertx"
	"gitee.com/hgg_test/sign_res/logx"
)

type document struct {
	Localization []map[string]any `json:"localization"`
}

// loadTable 读取并解析本地化文件
//   - keep 为空表示保留全部语言
func loadTable(path string, keep func(tag string) bool, l logx.Loggerx) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return decodeTable(f, keep, l)
}

func decodeTable(r io.Reader, keep func(tag string) bool, l logx.Loggerx) (*table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("解析本地化文件失败: %w", err)
	}
	return buildTable(doc.Localization, keep, l), nil
}

// buildTable 按 sign_id 分组，除 sign_id、isEx 外的字符串字段都视为语言
//   - sign_id 非整数、isEx 非数字/布尔的条目整体跳过
//   - 同一 sign_id 出现多次时合并，同语言后者覆盖前者
//   - 没有保留任何翻译的条目丢弃
func buildTable(items []map[string]any, keep func(tag string) bool, l logx.Loggerx) *table {
	t := emptyTable()
	for idx, item := range items {
		id, ok := convertx.ToInt64(item[fieldSignId])
		if !ok {
			l.Warn("本地化条目 sign_id 非法，已跳过", logx.Int("index", idx), logx.Any("sign_id", item[fieldSignId]))
			continue
		}
		if rawEx, has := item[fieldIsEx]; has && rawEx != nil {
			if _, ok = convertx.ToFlag(rawEx); !ok {
				l.Warn("本地化条目 isEx 非法，已跳过", logx.Int64("sign_id", id), logx.Any("isEx", rawEx))
				continue
			}
		}

		keys := make([]string, 0, len(item))
		for k := range item {
			if k != fieldSignId && k != fieldIsEx {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)

		tr := t.entries[int(id)]
		for _, k := range keys {
			text, isStr := item[k].(string)
			if !isStr {
				continue
			}
			tag := NormalizeLanguageTag(k)
			t.languages[tag] = struct{}{}
			if text == "" || (keep != nil && !keep(tag)) {
				continue
			}
			if tr == nil {
				tr = make(map[string]string, 4)
			}
			tr[tag] = text
		}
		if len(tr) == 0 {
			l.Debug("本地化条目没有可用翻译，已丢弃", logx.Int64("sign_id", id))
			continue
		}
		t.entries[int(id)] = tr
	}
	return t
}
