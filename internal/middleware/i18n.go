// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/store-platform/internal/i18n"
)

// I18nMiddleware stores the request language under "lang". The query
// parameter lang wins over Accept-Language.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := normalizeLang(c.Query("lang"))
		if lang == "" {
			// Handle cases like "si-LK,si;q=0.9,en;q=0.8"
			for _, part := range strings.Split(c.GetHeader("Accept-Language"), ",") {
				if lang = normalizeLang(strings.Split(part, ";")[0]); lang != "" {
					break
				}
			}
		}
		if lang == "" {
			lang = defaultLang
		}

		// Set language in context
		c.Set("lang", lang)
		c.Next()
	}
}

func normalizeLang(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	// Convert common language codes
	parts := strings.FieldsFunc(tag, func(r rune) bool { return r == '-' || r == '_' })
	if len(parts) == 0 || !i18n.IsSupported(parts[0]) {
		return ""
	}
	return parts[0]
}
