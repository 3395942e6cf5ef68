package i18nX

import (
	"strings"
	"unicode"
)

const (
	// DefaultLanguage 默认语言
	DefaultLanguage = "zh-cn"
	// FallbackLanguage 保留的兜底语言标记，当前语言没有翻译时使用
	FallbackLanguage = "gh-yh"

	fallbackLiteral = "ghYh"
)

// NormalizeLanguageTag 语言标记规整【纯函数，任何输入都不会 panic，且 Normalize(Normalize(x)) == Normalize(x)】
//  1. 空串 -> 默认语言 zh-cn
//  2. ghYh（忽略大小写）-> gh-yh
//  3. 含 "-"：按 "-" 拆分并小写后重新拼接（zh-CN -> zh-cn），只有一段时直接小写
//  4. 驼峰（小写后紧跟大写）：在边界插入 "-" 并整体小写（zhCn -> zh-cn）
//  5. 其它：整体小写
func NormalizeLanguageTag(tag string) string {
	t := strings.TrimSpace(tag)
	if t == "" {
		return DefaultLanguage
	}
	if strings.EqualFold(t, fallbackLiteral) {
		return FallbackLanguage
	}

	if strings.Contains(t, "-") {
		parts := make([]string, 0, 2)
		for _, p := range strings.Split(t, "-") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, strings.ToLower(p))
			}
		}
		switch len(parts) {
		case 0:
			return DefaultLanguage
		case 1:
			if strings.EqualFold(parts[0], fallbackLiteral) {
				return FallbackLanguage
			}
			return parts[0]
		default:
			return strings.Join(parts, "-")
		}
	}

	if hasCamelBoundary(t) {
		var b strings.Builder
		b.Grow(len(t) + 2)
		var prev rune
		for i, r := range t {
			if i > 0 && camelBoundary(prev, r) {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			prev = r
		}
		return strings.ToLower(b.String())
	}

	return strings.ToLower(t)
}

func hasCamelBoundary(s string) bool {
	var prev rune
	for i, r := range s {
		if i > 0 && camelBoundary(prev, r) {
			return true
		}
		prev = r
	}
	return false
}

// camelBoundary 小写后紧跟有小写形式的大写字母
//   - ϒ、𝐀 这类没有小写形式的大写字母不算边界，否则整体小写后再次规整会插入 "-"
func camelBoundary(prev, r rune) bool {
	return unicode.IsLower(prev) && unicode.IsUpper(r) && unicode.ToLower(r) != r
}
