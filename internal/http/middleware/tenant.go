package middleware

import (
	"errors"
	"net/http"

	"taskboard/internal/logger"
	"taskboard/internal/tenant"

	"github.com/gin-gonic/gin"
)

// Tenant resolves the caller's tenant and stores it on the request context.
func Tenant(resolver tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request)
		if err != nil {
			if !errors.Is(err, tenant.ErrUnresolved) {
				logger.WithContext(c.Request.Context()).Error("tenant resolution failed", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Request = c.Request.WithContext(tenant.WithID(c.Request.Context(), id))
		c.Next()
	}
}
