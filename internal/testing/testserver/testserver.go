// Package testserver builds a *server.Server backed by an in-memory
// database, without Redis or a job worker.
package testserver

import (
	"testing"

	"github.com/deppfellow/accountowner/internal/config"
	"github.com/deppfellow/accountowner/internal/metrics"
	"github.com/deppfellow/accountowner/internal/server"
	"github.com/deppfellow/accountowner/internal/testing/testdb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func New(t testing.TB) *server.Server {
	t.Helper()

	logger := zerolog.Nop()

	obs := config.DefaultObservabilityConfig()
	obs.HealthChecks.Checks = []string{"database"}

	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          10000,
			},
			Observability: obs,
		},
		Logger:  &logger,
		DB:      testdb.NewDatabase(t),
		Metrics: metrics.New(prometheus.NewRegistry()),
	}
}
