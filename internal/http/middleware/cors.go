package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS answers any origin with "*" and no credentials. When allowedOrigin is
// set only that origin is echoed, with credentials allowed.
// tenantHeader is added to the allowed request headers.
func CORS(allowedOrigin, tenantHeader string) gin.HandlerFunc {
	allowHeaders := "Content-Type, Authorization, X-Request-ID"
	if tenantHeader != "" {
		allowHeaders += ", " + tenantHeader
	}
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case origin == "":
		case allowedOrigin == "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Writer.Header().Set("Access-Control-Allow-Headers", allowHeaders)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		case origin == allowedOrigin:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", allowHeaders)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			c.Writer.Header().Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
