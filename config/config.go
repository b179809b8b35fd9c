// Package config loads application settings from defaults, an optional
// settings file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"airbnb-rooms-scraper/models"
)

// Fetcher implementations selectable with the "fetcher" key.
const (
	FetcherHTTP   = "http"
	FetcherChrome = "chrome"
)

// Config holds all application-level configuration
type Config struct {
	// Scheduling
	MaxWorkers       int           `mapstructure:"maxWorkers"`
	MaxRetries       int           `mapstructure:"maxRetries"`
	BackoffBase      time.Duration `mapstructure:"backoffBase"`
	BackoffCap       time.Duration `mapstructure:"backoffCap"`
	RateLimitDelayMS int           `mapstructure:"rateLimitDelayMs"` // between fetch starts, 0 disables
	RateBurst        int           `mapstructure:"rateBurst"`

	// Fetching
	Fetcher          string `mapstructure:"fetcher"`
	RequestTimeout   int    `mapstructure:"requestTimeout"` // seconds
	TransportRetries int    `mapstructure:"transportRetries"`
	UserAgent        string `mapstructure:"userAgent"`
	Headless         bool   `mapstructure:"headless"`

	// Output
	OutputPath  string `mapstructure:"outputPath"`
	CSVPath     string `mapstructure:"csvPath"`
	DatabaseURL string `mapstructure:"databaseUrl"`

	// Cache
	RedisAddr     string        `mapstructure:"redisAddr"`
	RedisPassword string        `mapstructure:"redisPassword"`
	RedisDB       int           `mapstructure:"redisDb"`
	CacheTTL      time.Duration `mapstructure:"cacheTtl"`

	// Logging
	LogLevel    string `mapstructure:"logLevel"`
	LogEncoding string `mapstructure:"logEncoding"`
}

// envBindings maps config keys to environment variables. The first name of
// each entry wins when several are set.
var envBindings = map[string][]string{
	"maxWorkers":       {"MAX_CONCURRENCY", "MAX_WORKERS"},
	"maxRetries":       {"MAX_RETRIES"},
	"backoffBase":      {"BACKOFF_BASE"},
	"backoffCap":       {"BACKOFF_CAP"},
	"rateLimitDelayMs": {"RATE_LIMIT_DELAY_MS"},
	"rateBurst":        {"RATE_BURST"},
	"fetcher":          {"FETCHER"},
	"requestTimeout":   {"REQUEST_TIMEOUT"},
	"transportRetries": {"TRANSPORT_RETRIES"},
	"userAgent":        {"USER_AGENT"},
	"headless":         {"HEADLESS"},
	"outputPath":       {"OUTPUT_PATH"},
	"csvPath":          {"CSV_FILE_PATH"},
	"databaseUrl":      {"DATABASE_URL"},
	"redisAddr":        {"REDIS_ADDR"},
	"redisPassword":    {"REDIS_PASSWORD"},
	"redisDb":          {"REDIS_DB"},
	"cacheTtl":         {"CACHE_TTL"},
	"logLevel":         {"LOG_LEVEL"},
	"logEncoding":      {"LOG_ENCODING"},
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("maxWorkers", 4)
	v.SetDefault("maxRetries", 2)
	v.SetDefault("backoffBase", time.Second)
	v.SetDefault("backoffCap", 30*time.Second)
	v.SetDefault("rateLimitDelayMs", 2000)
	v.SetDefault("rateBurst", 1)
	v.SetDefault("fetcher", FetcherHTTP)
	v.SetDefault("requestTimeout", 20)
	v.SetDefault("transportRetries", 1)
	v.SetDefault("userAgent", "")
	v.SetDefault("headless", true)
	v.SetDefault("outputPath", "output/rooms.json")
	v.SetDefault("csvPath", "")
	v.SetDefault("databaseUrl", "")
	v.SetDefault("redisAddr", "")
	v.SetDefault("redisPassword", "")
	v.SetDefault("redisDb", 0)
	v.SetDefault("cacheTtl", 6*time.Hour)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logEncoding", "console")
}

// BindEnv maps the environment variables onto their keys.
func BindEnv(v *viper.Viper) error {
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// New returns a viper instance with defaults and env bindings in place. If
// settingsFile is set it is read on top of the defaults.
func New(settingsFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return nil, err
	}
	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settingsFile, err)
		}
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
	}
	cfg.Fetcher = strings.ToLower(strings.TrimSpace(cfg.Fetcher))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxWorkers <= 0 {
		errs = append(errs, fmt.Errorf("maxWorkers must be > 0, got %d", c.MaxWorkers))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("maxRetries must be >= 0, got %d", c.MaxRetries))
	}
	if c.BackoffBase < 0 || c.BackoffCap < 0 {
		errs = append(errs, errors.New("backoff delays must not be negative"))
	}
	if c.RateLimitDelayMS < 0 {
		errs = append(errs, fmt.Errorf("rateLimitDelayMs must be >= 0, got %d", c.RateLimitDelayMS))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("requestTimeout must be > 0 seconds, got %d", c.RequestTimeout))
	}
	if c.TransportRetries < 0 {
		errs = append(errs, fmt.Errorf("transportRetries must be >= 0, got %d", c.TransportRetries))
	}
	if c.Fetcher != FetcherHTTP && c.Fetcher != FetcherChrome {
		errs = append(errs, fmt.Errorf("fetcher must be %q or %q, got %q", FetcherHTTP, FetcherChrome, c.Fetcher))
	}
	if c.OutputPath == "" {
		errs = append(errs, errors.New("outputPath must not be empty"))
	}
	if c.RedisAddr != "" && c.CacheTTL <= 0 {
		errs = append(errs, errors.New("cacheTtl must be > 0 when redisAddr is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", models.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// RateLimitDelay is the minimum spacing between fetch starts.
func (c *Config) RateLimitDelay() time.Duration {
	return time.Duration(c.RateLimitDelayMS) * time.Millisecond
}

// Timeout is the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
