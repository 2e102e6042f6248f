package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Defaults sized for one salon dashboard: steady grid polling plus a burst of
// slot actions from a handful of concurrent staff sessions.
const (
	DefaultRequestRate  rate.Limit = 50
	DefaultRequestBurst            = 100
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
}

// RateLimiter applies one shared token bucket across the whole API. Per-client
// buckets are not worth it behind a staff login with a known head count.
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = DefaultRequestRate
	}
	if config.Burst <= 0 {
		config.Burst = DefaultRequestBurst
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(config.Rate, config.Burst),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "too many requests, slow down",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		c.Next()
	}
}
