package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/taskflow/task-manager/internal/api/metrics"
	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/ports"
)

// RateLimit counts each request against the client IP's window. Limiter
// failures let the request through with a warning.
func RateLimit(limiter ports.RateLimiter, skipper echomiddleware.Skipper, log zerolog.Logger) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = echomiddleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			ip := c.RealIP()
			d, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				metrics.RateLimitErrorsTotal.Inc()
				log.Warn().Err(err).Str("client_ip", ip).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			if d.Limit > 0 {
				reset := int64(math.Ceil(d.ResetAfter.Seconds()))
				h := c.Response().Header()
				h.Set("X-RateLimit-Limit", strconv.FormatInt(d.Limit, 10))
				h.Set("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))
				h.Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
				if !d.Allowed {
					h.Set("Retry-After", strconv.FormatInt(reset, 10))
				}
			}

			if !d.Allowed {
				metrics.RateLimitRejectionsTotal.Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
