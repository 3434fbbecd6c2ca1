package middleware

import (
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/tenant"

	"github.com/gin-gonic/gin"
)

// TenantRateLimit limits requests per tenant (not per IP). Requires Tenant to
// run first. Uses Redis when configured, process memory otherwise.
func TenantRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxRequests <= 0 {
			c.Next()
			return
		}

		tenantID, ok := tenant.FromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "tenant not resolved"})
			return
		}

		key := "tenant_rl:" + strconv.FormatInt(tenantID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)

		var val int64
		if redisClient != nil {
			var err error
			val, err = redisIncr(c.Request.Context(), key, window)
			if err != nil {
				c.Header("X-TenantRateLimit-Error", "redis-error")
				c.Next()
				return
			}
		} else {
			val = memoryIncr(key, window)
		}

		// Set headers for client info
		c.Header("X-TenantRateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-TenantRateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues("tenant:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("tenant:" + c.FullPath()).Inc()
		c.Next()
	}
}
