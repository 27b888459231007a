package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"auction_backend/internal/api"
	"auction_backend/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
)

// RateLimit limits requests per client IP under the given scope.
// A limiter failure lets the request through.
func RateLimit(limiter ratelimiter.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			slog.Error("rate limit check failed", "scope", scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			slog.Warn("rate limit exceeded", "scope", scope, "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
