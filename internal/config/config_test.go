package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	for key, value := range map[string]string{
		"primary.env":                 "local",
		"server.port":                 "8080",
		"server.read_timeout":         "30",
		"server.write_timeout":        "30",
		"server.idle_timeout":         "60",
		"server.cors_allowed_origins": "http://localhost:3000",
		"database.host":               "localhost",
		"database.port":               "5432",
		"database.user":               "postgres",
		"database.password":           "postgres",
		"database.name":               "accountowner",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     "10",
		"database.max_idle_conns":     "5",
		"database.conn_max_lifetime":  "300",
		"database.conn_max_idle_time": "60",
		"redis.address":               "localhost:6379",
	} {
		t.Setenv(EnvPrefix+key, value)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, float64(DefaultRateLimit), cfg.Server.RateLimitOrDefault())
	assert.False(t, cfg.Integration.NotificationsEnabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
}

func TestLoadConfig_RejectsInvalidNotificationEmail(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"integration.notification_email", "not-an-email")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"redis.address", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestHealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("database"))
	assert.False(t, cfg.HealthCheckEnabled("smtp"))

	cfg.HealthChecks.Checks = nil
	assert.True(t, cfg.HealthCheckEnabled("smtp"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("database"))
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}
