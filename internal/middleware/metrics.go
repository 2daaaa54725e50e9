package middleware

import (
	"time"

	"github.com/deppfellow/accountowner/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latencies in Prometheus.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Observe labels requests with their route template; requests that match
// no route are grouped under "unmatched".
func (m *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.server.Metrics.ObserveRequest(c.Request().Method, route, responseStatus(c, err), time.Since(start))

			return err
		}
	}
}
