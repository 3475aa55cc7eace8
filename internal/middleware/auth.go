package middleware

import (
	"net/http"
	"strings"

	"membership-api/internal/response"
	"membership-api/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the Bearer session token and stores the caller email
// in the context under "email".
func AuthRequired() gin.HandlerFunc {
	tokenService := services.NewTokenService()

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.ErrorJSON(c, http.StatusUnauthorized, "Missing session token")
			c.Abort()
			return
		}

		email, err := tokenService.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.ErrorJSON(c, http.StatusUnauthorized, "Invalid session token")
			c.Abort()
			return
		}

		c.Set("email", email)
		c.Next()
	}
}

// AdminRequired rejects callers whose email is not on the admin list. Must run
// after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if email == "" || !services.IsAdmin(email) {
			response.ErrorJSON(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
