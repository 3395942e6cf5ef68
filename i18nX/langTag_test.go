package i18nX

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLanguageTag(t *testing.T) {
	testCases := []struct {
		name string
		tag  string
		want string
	}{
		{name: "空串默认语言", tag: "", want: DefaultLanguage},
		{name: "空白默认语言", tag: "   ", want: DefaultLanguage},
		{name: "兜底字面量", tag: "ghYh", want: FallbackLanguage},
		{name: "兜底字面量忽略大小写", tag: "GHYH", want: FallbackLanguage},
		{name: "兜底规整形式", tag: "gh-yh", want: FallbackLanguage},
		{name: "BCP47", tag: "zh-CN", want: "zh-cn"},
		{name: "BCP47大写", tag: "EN-US", want: "en-us"},
		{name: "三段", tag: "zh-Hant-TW", want: "zh-hant-tw"},
		{name: "只有一段带横线", tag: "-FR", want: "fr"},
		{name: "只有横线", tag: "--", want: DefaultLanguage},
		{name: "一段兜底", tag: "ghyh-", want: FallbackLanguage},
		{name: "驼峰", tag: "zhCn", want: "zh-cn"},
		{name: "驼峰多段", tag: "zhHantTw", want: "zh-hant-tw"},
		{name: "驼峰连续大写", tag: "enUS", want: "en-us"},
		{name: "全小写", tag: "fr", want: "fr"},
		{name: "全大写", tag: "FR", want: "fr"},
		{name: "首字母大写", tag: "English", want: "english"},
		{name: "中文", tag: "简体中文", want: "简体中文"},
		{name: "无小写形式的大写字母", tag: "Aϒ", want: "aϒ"},
		{name: "数学粗体大写", tag: "A𝐀", want: "a𝐀"},
		{name: "无小写形式的大写字母在小写后", tag: "aϒ", want: "aϒ"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLanguageTag(tc.tag)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, NormalizeLanguageTag(got), "必须幂等")
		})
	}
}

func FuzzNormalizeLanguageTag(f *testing.F) {
	for _, seed := range []string{"", "ghYh", "zh-CN", "zhCn", "-", "a-", "aB", "ÀbC", "\xff\xfe", " gh - YH ", "xY-zW", "Aϒ", "A𝐀", "aϒB"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, tag string) {
		once := NormalizeLanguageTag(tag)
		if once == "" {
			t.Fatalf("normalize(%q) 返回空串", tag)
		}
		if twice := NormalizeLanguageTag(once); twice != once {
			t.Fatalf("normalize 不幂等: %q -> %q -> %q", tag, once, twice)
		}
	})
}
