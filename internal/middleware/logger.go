package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/metrics"
)

// RequestLogger logs each request once it finished and records its
// latency histogram.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	logger = logger.With().Str("component", "http").Logger()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		metrics.ObserveHTTP(c.Request.Method, route, status, elapsed)

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = logger.Error()
		case status >= 400:
			ev = logger.Info()
		default:
			ev = logger.Debug()
		}

		ev = ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Str("request_id", c.GetString(ContextRequestID)).
			Str("client_ip", c.ClientIP())

		if id := UserID(c); id != 0 {
			ev = ev.Uint("user_id", id).Str("role", UserRole(c))
			if shopID := ShopID(c); shopID != nil {
				ev = ev.Uint("shop_id", *shopID)
			}
		}
		ev.Msg("request")
	}
}
