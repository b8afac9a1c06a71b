package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the browser client to send its session cookie. With no
// configured origins nothing cross-origin is allowed.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		conf.AllowOriginFunc = func(string) bool { return false }
	} else {
		conf.AllowOrigins = allowedOrigins
	}
	conf.AllowMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	conf.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", RequestIDHeader}
	conf.ExposeHeaders = []string{RequestIDHeader, "Content-Disposition"}
	conf.AllowCredentials = true
	conf.MaxAge = 12 * time.Hour
	return cors.New(conf)
}
