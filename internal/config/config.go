// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, applies defaults, and
// validates that required values are present so the process fails fast on
// bad configuration.
//
// Two naming schemes are read:
//   - CRUDAPI_<SECTION>__<KEY>, where a double underscore marks nesting
//     (CRUDAPI_SERVER__READ_TIMEOUT -> server.read_timeout)
//   - the plain names NODE_ENV, PORT and DATABASE_URL, which map to
//     primary.env, server.port and database.url. Prefixed names win.
package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process environment
	// before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix   = "CRUDAPI_"
	serviceName = "crudapi"

	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// aliases maps the plain variable names to koanf keys.
var aliases = map[string]string{
	"NODE_ENV":     "primary.env",
	"PORT":         "server.port",
	"DATABASE_URL": "database.url",
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env           string `koanf:"env" validate:"required,oneof=development production test"`
	DefaultLocale string `koanf:"default_locale" validate:"required,oneof=en th"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are in
// seconds.
type ServerConfig struct {
	// Host is the bind address. Empty means 0.0.0.0 in production and
	// 127.0.0.1 elsewhere.
	Host               string   `koanf:"host"`
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	// BodyLimit uses Echo's size syntax ("1M", "512K").
	BodyLimit string `koanf:"body_limit" validate:"required"`
}

// DatabaseConfig contains the PostgreSQL connection string and pool tuning.
// Durations are in seconds.
type DatabaseConfig struct {
	URL             string `koanf:"url" validate:"required"`
	MaxConns        int32  `koanf:"max_conns" validate:"gt=0"`
	MinConns        int32  `koanf:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime int    `koanf:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime int    `koanf:"max_conn_idle_time" validate:"gte=0"`
}

// RedisConfig contains Redis connection details. Address is "host:port";
// empty disables Redis and the background jobs that need it.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// IntegrationConfig holds credentials for third-party services. Empty values
// disable the integration.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		return aliases[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env aliases: %w", err)
	}

	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.Observability.ServiceName = serviceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = EnvDevelopment
	}
	if c.Primary.DefaultLocale == "" {
		c.Primary.DefaultLocale = "en"
	}

	s := &c.Server
	if s.Port == "" {
		s.Port = "4001"
	}
	setDefault(&s.ReadTimeout, 10)
	setDefault(&s.WriteTimeout, 10)
	setDefault(&s.IdleTimeout, 60)
	setDefault(&s.ShutdownTimeout, 10)
	if s.BodyLimit == "" {
		s.BodyLimit = "1M"
	}
	if len(s.CORSAllowedOrigins) == 0 {
		s.CORSAllowedOrigins = []string{"*"}
	}

	setDefault(&c.Database.MaxConns, 10)

	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "CRUD API <onboarding@resend.dev>"
	}

	c.Observability = mergeObservability(c.Observability)
}

func setDefault[T int | int32](field *T, value T) {
	if *field == 0 {
		*field = value
	}
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == EnvProduction
}

// ListenAddress returns the host:port the HTTP server binds to.
func (c *Config) ListenAddress() string {
	host := c.Server.Host
	if host == "" {
		host = "127.0.0.1"
		if c.IsProduction() {
			host = "0.0.0.0"
		}
	}
	return net.JoinHostPort(host, c.Server.Port)
}
