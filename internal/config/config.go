// Package config loads service configuration from defaults, an optional config file, .env and
// the environment, and exposes the per-call generation settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Generation Generation `mapstructure:"generation"`
	Server     Server     `mapstructure:"server"`
	Log        Log        `mapstructure:"log"`
}

// Generation configures the remote generation service.
type Generation struct {
	Enabled     bool          `mapstructure:"enabled"`     // Feature flag; off means local-only output
	APIKey      string        `mapstructure:"api_key"`     // Provider credential
	Provider    string        `mapstructure:"provider"`    // "gemini" or "openai"
	Model       string        `mapstructure:"model"`       // Overrides every tier when set
	Endpoint    string        `mapstructure:"endpoint"`    // Chat completions URL (openai only)
	Timeout     time.Duration `mapstructure:"timeout"`     // Per-call deadline; 0 means none
	Concurrency int           `mapstructure:"concurrency"` // Parallel calls for batch rewrites
}

// Server configures the HTTP surface.
type Server struct {
	Port      int       `mapstructure:"port"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
}

// RateLimit configures the token-bucket limiter in front of the rewrite endpoints.
type RateLimit struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`  // Requests per window
	Window  time.Duration `mapstructure:"window"` // Refill window
	Burst   int           `mapstructure:"burst"`  // Bucket capacity; defaults to Limit

	Allowlist []string `mapstructure:"allowlist"` // Client IPs never limited
	Denylist  []string `mapstructure:"denylist"`  // Client IPs always rejected
}

// Log configures structured logging.
type Log struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Generation: Generation{
			Enabled:     false,
			Provider:    "gemini",
			Concurrency: 4,
		},
		Server: Server{
			Port: 8080,
			RateLimit: RateLimit{
				Enabled: true,
				Limit:   60,
				Window:  time.Minute,
				Burst:   10,
			},
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadDotEnv loads a .env file from the working directory if one exists. Variables already set
// in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// New builds a viper instance with defaults, environment bindings and, when path is non-empty,
// the given YAML or JSON config file.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvironmentVariables(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return v, nil
}

// Load reads the full configuration and validates it.
func Load(path string) (*Config, *viper.Viper, error) {
	v, err := New(path)
	if err != nil {
		return nil, nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, nil, err
	}
	return &merged, v, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("generation.enabled", d.Generation.Enabled)
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.provider", d.Generation.Provider)
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.endpoint", "")
	v.SetDefault("generation.timeout", "0s")
	v.SetDefault("generation.concurrency", d.Generation.Concurrency)

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.rate_limit.enabled", d.Server.RateLimit.Enabled)
	v.SetDefault("server.rate_limit.limit", d.Server.RateLimit.Limit)
	v.SetDefault("server.rate_limit.window", d.Server.RateLimit.Window.String())
	v.SetDefault("server.rate_limit.burst", d.Server.RateLimit.Burst)
	v.SetDefault("server.rate_limit.allowlist", []string{})
	v.SetDefault("server.rate_limit.denylist", []string{})

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// bindEnvironmentVariables accepts the provider-specific credential names as well as the
// generic GENERATION_API_KEY.
func bindEnvironmentVariables(v *viper.Viper) {
	_ = v.BindEnv("generation.api_key", "GENERATION_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("generation.enabled", "GENERATION_ENABLED", "REWRITE_ENABLED")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Generation.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("config error: unsupported generation provider %q", c.Generation.Provider)
	}
	if c.Generation.Timeout < 0 {
		return fmt.Errorf("config error: 'generation.timeout' must be non-negative")
	}
	if c.Generation.Concurrency < 0 {
		return fmt.Errorf("config error: 'generation.concurrency' must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.Server.RateLimit.Limit < 0 || c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("config error: rate limit values must be non-negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config error: unsupported log format %q", c.Log.Format)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bool fields cannot distinguish unset from false and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Generation.Provider == "" {
		result.Generation.Provider = defaults.Generation.Provider
	}
	if result.Generation.Concurrency == 0 {
		result.Generation.Concurrency = defaults.Generation.Concurrency
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.RateLimit.Limit == 0 {
		result.Server.RateLimit.Limit = defaults.Server.RateLimit.Limit
	}
	if result.Server.RateLimit.Window == 0 {
		result.Server.RateLimit.Window = defaults.Server.RateLimit.Window
	}
	if result.Server.RateLimit.Burst == 0 {
		result.Server.RateLimit.Burst = defaults.Server.RateLimit.Burst
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}

	return result
}
