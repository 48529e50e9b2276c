package i18n

import (
	"fmt"
	"strings"

	"github.com/mini-ozon/internal/constants"

	"github.com/gin-gonic/gin"
)

var dictionaries = map[string]map[string]string{
	constants.LocaleRU: ruMessages,
	constants.LocaleEN: enMessages,
}

// T 返回指定语言的文案，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if dict, ok := dictionaries[NormalizeLocale(locale)]; ok {
		if msg, ok := dict[key]; ok {
			return msg
		}
	}
	if msg, ok := dictionaries[constants.LocaleDefault][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// NormalizeLocale 归一化语言标识
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return constants.LocaleDefault
	}
	if idx := strings.IndexAny(value, "-_"); idx > 0 {
		value = value[:idx]
	}
	if _, ok := dictionaries[value]; ok {
		return value
	}
	return constants.LocaleDefault
}

// ResolveLocale 依次读取 ?lang= 与 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleDefault
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		locale := strings.ToLower(tag)
		if idx := strings.IndexAny(locale, "-_"); idx > 0 {
			locale = locale[:idx]
		}
		if _, ok := dictionaries[locale]; ok {
			return locale
		}
	}
	return constants.LocaleDefault
}
