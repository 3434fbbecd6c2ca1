package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int64
}

// in-process fixed windows, used when Redis is not configured
var (
	rlMu    sync.Mutex
	clients = make(map[string]*clientInfo)
)

const sweepThreshold = 10000

func memoryIncr(key string, window time.Duration) int64 {
	now := time.Now()

	rlMu.Lock()
	defer rlMu.Unlock()

	if len(clients) > sweepThreshold {
		for k, ci := range clients {
			if now.Sub(ci.start) > window {
				delete(clients, k)
			}
		}
	}

	ci, ok := clients[key]
	if !ok || now.Sub(ci.start) > window {
		clients[key] = &clientInfo{start: now, count: 1}
		return 1
	}
	ci.count++
	return ci.count
}

// SimpleRateLimit blocks clients that send more than maxRequests per window,
// counting in process memory.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		if memoryIncr(key, window) > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// RateLimit picks the Redis limiter when a client is configured and the
// in-process one otherwise. maxRequests <= 0 disables limiting.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if redisClient != nil {
		return RedisRateLimit(maxRequests, window)
	}
	return SimpleRateLimit(maxRequests, window)
}
