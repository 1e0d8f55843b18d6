package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The portal carries authentication in the session cookie, so cross-origin
// callers need credentialed requests; credentials are only ever allowed for a
// concrete configured origin, never for the wildcard.
const (
	corsAllowedMethods = "GET,POST,OPTIONS"
	corsAllowedHeaders = "Origin,Content-Type,Accept,X-Request-ID,X-Trace-ID"
)

// CORS adds Cross-Origin Resource Sharing headers for the configured portal
// frontend origins and short-circuits preflight requests.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originsMap := make(map[string]bool)
	allowAll := false

	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
		originsMap[strings.TrimSuffix(origin, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Writer.Header().Add("Vary", "Origin")

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case originsMap[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", corsAllowedMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
			c.Header("Access-Control-Max-Age", "86400")

			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
