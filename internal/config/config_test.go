package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Primary.Env)
	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	require.Zero(t, cfg.Server.RateLimit)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Empty(t, cfg.Database.Path)

	require.NotNil(t, cfg.Observability)
	require.Equal(t, ServiceName, cfg.Observability.ServiceName)
	require.Equal(t, "development", cfg.Observability.Environment)
	require.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PRODUCE_PRIMARY__ENV", "production")
	t.Setenv("PRODUCE_SERVER__PORT", "8080")
	t.Setenv("PRODUCE_SERVER__READ_TIMEOUT", "5")
	t.Setenv("PRODUCE_SERVER__RATE_LIMIT", "20")
	t.Setenv("PRODUCE_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PRODUCE_DATABASE__PATH", MemoryPath)
	t.Setenv("PRODUCE_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("PRODUCE_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Primary.Env)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 5, cfg.Server.ReadTimeout)
	require.Equal(t, 30, cfg.Server.WriteTimeout)
	require.InDelta(t, 20, cfg.Server.RateLimit, 0.0001)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	require.Equal(t, MemoryPath, cfg.Database.Path)

	require.True(t, cfg.Observability.IsProduction())
	require.Equal(t, "warn", cfg.Observability.GetLogLevel())
	require.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	// Defaults survive a partial override of the same block.
	require.Equal(t, "json", cfg.Observability.Logging.Format)
	require.True(t, cfg.Observability.HealthChecks.Enabled)
}

func TestLoadConfigPostgresRequiresConnectionSettings(t *testing.T) {
	t.Setenv("PRODUCE_DATABASE__DRIVER", DriverPostgres)

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Host")

	t.Setenv("PRODUCE_DATABASE__HOST", "localhost")
	t.Setenv("PRODUCE_DATABASE__PORT", "5432")
	t.Setenv("PRODUCE_DATABASE__USER", "produce")
	t.Setenv("PRODUCE_DATABASE__NAME", "produce")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "PRODUCE_DATABASE__DRIVER", "mysql"},
		{"non numeric port", "PRODUCE_SERVER__PORT", "http"},
		{"negative rate limit", "PRODUCE_SERVER__RATE_LIMIT", "-1"},
		{"unknown log level", "PRODUCE_OBSERVABILITY__LOGGING__LEVEL", "verbose"},
		{"unknown log format", "PRODUCE_OBSERVABILITY__LOGGING__FORMAT", "xml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)

			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "server.port", envKey("PRODUCE_SERVER__PORT"))
	require.Equal(t, "server.read_timeout", envKey("PRODUCE_SERVER__READ_TIMEOUT"))
	require.Equal(t, "observability.new_relic.license_key", envKey("PRODUCE_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}

func TestGetLogLevelFallsBackByEnvironment(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	require.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	require.Equal(t, "debug", cfg.GetLogLevel())
}
