package middleware

import (
	"net/http"

	"hospital-inventory-dashboard/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireAuth sends visitors without a resolved user to the login page
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetScope(c).Auth.IsAuthenticated() {
			c.Redirect(http.StatusFound, auth.LoginRoute)
			c.Abort()
			return
		}

		c.Next()
	}
}
