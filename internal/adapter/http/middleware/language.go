package middleware

import (
	"github.com/gin-gonic/gin"

	"taskmanager/pkg/translator"
)

const langKey = "lang"

var supportedLanguages = []string{translator.LanguageEn, translator.LanguageFr}

// LanguageMiddleware picks the response language from Accept-Language,
// falling back to English.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, _ := translator.Supported(c.GetHeader("Accept-Language"), supportedLanguages)
		c.Set(langKey, lang)
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
