package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zapshift/internal/auth"
)

const emailKey = "verified_email"

// AuthRequired verifies the bearer identity token and sets the verified
// email in the request context.
func AuthRequired(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorised access"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorised access"})
			return
		}
		email, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorised access"})
			return
		}
		c.Set(emailKey, email)
		c.Next()
	}
}

// GetEmail returns the verified email set by AuthRequired.
func GetEmail(c *gin.Context) string {
	v, _ := c.Get(emailKey)
	if v == nil {
		return ""
	}
	return v.(string)
}
