package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mr1hm/go-health-hotspots/internal/metrics"
)

// RateLimitMiddleware applies one global token bucket of rps requests per
// second. m may be nil.
func RateLimitMiddleware(rps int, m *metrics.Metrics) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			m.IncRateLimitBlocked()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
