package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HTTPMetricsMiddleware collects request counters and latency histograms for
// every route. The route pattern (not the raw path) is used as the label so
// /payments/:id stays a single series.
func HTTPMetricsMiddleware(metrics *Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		err := c.Next()

		duration := time.Since(start)

		method := c.Method()
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		statusCode := strconv.Itoa(c.Response().StatusCode())

		metrics.RecordHTTPRequest(method, path, statusCode, duration)

		if duration > time.Second {
			logger.Warn("Slow HTTP request",
				zap.String("method", method),
				zap.String("path", path),
				zap.String("status_code", statusCode),
				zap.Duration("duration", duration),
			)
		}

		return err
	}
}
