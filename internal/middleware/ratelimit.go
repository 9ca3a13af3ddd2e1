package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lueur-studio/core/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimit enforces a sliding-window per-IP rate limit for
// unauthenticated callers. The counter lives in Redis so the limit
// holds across instances; limits are injected from config.
func RateLimit(rdb *redis.Client, limits config.RateLimit) gin.HandlerFunc {
	window := time.Duration(limits.WindowMS) * time.Millisecond
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		windowKey := time.Now().UnixMilli() / window.Milliseconds()
		key := fmt.Sprintf("lueur:rate_limit:%s:%d", ip, windowKey)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// limiter degradation must not take the site down
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, window+time.Second)
		}

		if count > int64(limits.Max) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      0,
				"code":    http.StatusTooManyRequests,
				"message": "too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
