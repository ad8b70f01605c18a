package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	Mode            string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// APIConfig points at the hospital REST API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout of zero disables the client timeout.
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
	// ServiceBatimentID is the building attached to services created from
	// the dashboard when none is chosen.
	ServiceBatimentID int64 `mapstructure:"service_batiment_id" validate:"min=1"`
}

type SessionConfig struct {
	Backend    string        `mapstructure:"backend" validate:"oneof=memory redis"`
	CookieName string        `mapstructure:"cookie_name" validate:"required"`
	TTL        time.Duration `mapstructure:"ttl" validate:"min=0"`
	Secure     bool          `mapstructure:"secure"`
	RedisURL   string        `mapstructure:"redis_url" validate:"required_if=Backend redis"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"min=0"`
	Burst             int     `mapstructure:"burst" validate:"min=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace" validate:"required"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", 0)
	v.SetDefault("api.service_batiment_id", 1)

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.cookie_name", "dashboard_session")
	v.SetDefault("session.ttl", 12*time.Hour)
	v.SetDefault("session.redis_url", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 50)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "hospital_dashboard")
}

// LoadConfig reads config.yml from the working directory, ./config or
// /app/config, then applies DASHBOARD_* environment overrides
// (DASHBOARD_API_BASE_URL, DASHBOARD_SESSION_BACKEND, ...). A missing file
// is not an error.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{".", "./config", "/app/config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
