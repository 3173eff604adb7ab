package middleware

import (
	"net/http"

	"hospital-inventory-dashboard/internal/config"

	"github.com/gin-gonic/gin"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Allow-Methods":     "GET, POST, PATCH, DELETE, OPTIONS",
	"Access-Control-Allow-Headers":     "Content-Type, X-Request-ID, X-Requested-With",
	"Access-Control-Max-Age":           "86400",
}

// CORS lets the listed dashboard origins call the page routes with the
// profile cookie attached. Preflight requests end here with 204.
func CORS(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CORS.AllowedOrigins))
	for _, origin := range cfg.CORS.AllowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			for k, v := range corsHeaders {
				c.Header(k, v)
			}
			c.Writer.Header().Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
