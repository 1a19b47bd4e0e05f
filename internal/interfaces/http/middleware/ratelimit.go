package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/infrastructure/ratelimit"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

// RateLimitMiddleware throttles requests per client IP through the shared
// Redis limiter, so the limit holds across instances.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	config  ratelimit.Config
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter, config ratelimit.Config, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		config:  config,
		logger:  logger,
	}
}

// Limit throttles by client IP under the given scope (e.g. "login").
func (m *RateLimitMiddleware) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, err := m.limiter.Allow(c.Request.Context(), key, m.config)
		if err != nil {
			// Redis trouble must not take the API down with it.
			m.logger.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
