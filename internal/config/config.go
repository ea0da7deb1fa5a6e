// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, applies defaults, and
// validates them so the app fails fast on bad or missing config.
//
// Env vars are read with the PRODUCE_ prefix. The prefix is removed, the key
// is lower-cased, and a double underscore marks a nesting level:
//
//	PRODUCE_SERVER__PORT              -> server.port
//	PRODUCE_DATABASE__DRIVER          -> database.driver
//	PRODUCE_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if one exists,
	// before any config is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "PRODUCE_"

// Storage drivers accepted by DatabaseConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MemoryPath is the sentinel database path for a non-persisted SQLite store.
const MemoryPath = ":memory:"

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables the limiter.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig selects the storage driver and carries its connection settings.
//
// Path is only read by the sqlite driver. An empty path resolves to
// data/db.sqlite under the working directory, and MemoryPath keeps the
// database in memory for the lifetime of the process.
//
// The remaining fields are only read by the postgres driver.
type DatabaseConfig struct {
	Driver   string `koanf:"driver" validate:"required,oneof=sqlite postgres"`
	Path     string `koanf:"path"`
	Host     string `koanf:"host" validate:"required_if=Driver postgres"`
	Port     int    `koanf:"port" validate:"required_if=Driver postgres"`
	User     string `koanf:"user" validate:"required_if=Driver postgres"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `koanf:"ssl_mode" validate:"required_if=Driver postgres"`
}

// DefaultConfig returns the configuration used when no env vars are set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			ShutdownTimeout:    30,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:  DriverSQLite,
			SSLMode: "disable",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from the environment.
//
// Behavior summary:
//   - Starts from DefaultConfig
//   - Loads env vars with prefix PRODUCE_ and overlays them
//   - Forces observability service name + environment
//   - Validates required config blocks/fields
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	return load(env.Provider(EnvPrefix, ".", envKey))
}

func load(provider koanf.Provider) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// Unmarshal keeps the defaults for every key that was not set.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// Comma separated lists arrive as a single element.
	mainConfig.Server.CORSAllowedOrigins = splitList(mainConfig.Server.CORSAllowedOrigins)

	// Service name and environment are always derived, never configured.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// IsProduction reports whether primary.env is "production".
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}

// envKey maps PRODUCE_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
