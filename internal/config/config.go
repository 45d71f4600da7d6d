package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEndpoint is the Cronofy API root used when none is configured.
const DefaultEndpoint = "https://api.cronofy.com/v1"

// Config holds all calpost configuration.
type Config struct {
	Cronofy   CronofyConfig
	Google    GoogleConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
	Output    string

	// DateLocation is the zone used to pick calendar dates for date-only
	// events. Empty means the process local zone.
	DateLocation string
}

type CronofyConfig struct {
	Token      string
	TokenFile  string
	Endpoint   string
	CalendarID string
	Timezone   string
}

type GoogleConfig struct {
	CredentialsPath string
	Endpoint        string
	CalendarID      string
	Timezone        string
}

// RateLimitConfig throttles outgoing requests. Zero PerSecond disables it.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from path, or from config.yaml in . and
// ~/.config/calpost when path is empty. Finding no file during the search is
// not an error; an explicit path must exist.
// Environment variables prefixed CALPOST_ override the file, e.g.
// CALPOST_CRONOFY_TOKEN for cronofy.token.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := GetConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("CALPOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Cronofy.Token = v.GetString("cronofy.token")
	cfg.Cronofy.TokenFile = v.GetString("cronofy.token_file")
	cfg.Cronofy.Endpoint = v.GetString("cronofy.endpoint")
	cfg.Cronofy.CalendarID = v.GetString("cronofy.calendar_id")
	cfg.Cronofy.Timezone = v.GetString("cronofy.timezone")

	cfg.Google.CredentialsPath = v.GetString("google.credentials_path")
	cfg.Google.Endpoint = v.GetString("google.endpoint")
	cfg.Google.CalendarID = v.GetString("google.calendar_id")
	cfg.Google.Timezone = v.GetString("google.timezone")

	cfg.RateLimit.PerSecond = v.GetFloat64("rate_limit.per_second")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Encoding = v.GetString("logger.encoding")

	cfg.Output = v.GetString("output")
	cfg.DateLocation = v.GetString("date_location")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cronofy.endpoint", DefaultEndpoint)
	v.SetDefault("cronofy.token", "")
	v.SetDefault("cronofy.token_file", "")
	v.SetDefault("cronofy.calendar_id", "")
	v.SetDefault("cronofy.timezone", "")

	v.SetDefault("google.credentials_path", "")
	v.SetDefault("google.endpoint", "")
	v.SetDefault("google.calendar_id", "primary")
	v.SetDefault("google.timezone", "")

	v.SetDefault("rate_limit.per_second", 0)
	v.SetDefault("rate_limit.burst", 1)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")

	v.SetDefault("output", "json")
	v.SetDefault("date_location", "")
}

func (c *Config) validate() error {
	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("output must be json or yaml, got %q", c.Output)
	}
	if c.RateLimit.PerSecond < 0 {
		return fmt.Errorf("rate_limit.per_second must not be negative")
	}
	if c.RateLimit.PerSecond > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be at least 1")
	}
	return nil
}
