package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const envPrefix = "FLIGHTDESK_"

var (
	errInvalidConfig = errors.New("config: invalid")
	errShortSecret   = errors.New("session.cookie_secret must be at least 32 bytes")
)

// Config is the flightdesk.yaml file. Every key can be overridden by an
// environment variable: api.base_url becomes FLIGHTDESK_API_BASE_URL.
type Config struct {
	Address string        `yaml:"address"`
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
	Sentry  SentryConfig  `yaml:"sentry"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Retries uint          `yaml:"retries"`
}

type SessionConfig struct {
	Store        string `yaml:"store"` // memory or redis
	CookieSecret string `yaml:"cookie_secret"`
	Secure       bool   `yaml:"secure"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

// CacheConfig controls caching of flight lookups. Zero TTL disables it.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

func defaultConfig() Config {
	return Config{
		Address: ":8080",
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
			Retries: 2,
		},
		Session: SessionConfig{Store: "memory"},
		Cache:   CacheConfig{TTL: time.Minute},
		Log:     LogConfig{Level: "info", Format: "json"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// loadConfig reads path over the defaults, then applies environment
// overrides. An empty path skips the file.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Join(errInvalidConfig, fmt.Errorf("parse %s: %w", path, err))
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, errors.Join(errInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, errors.Join(errInvalidConfig, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"ADDRESS":               &cfg.Address,
		"API_BASE_URL":          &cfg.API.BaseURL,
		"SESSION_STORE":         &cfg.Session.Store,
		"SESSION_COOKIE_SECRET": &cfg.Session.CookieSecret,
		"REDIS_URL":             &cfg.Redis.URL,
		"LOG_LEVEL":             &cfg.Log.Level,
		"LOG_FORMAT":            &cfg.Log.Format,
		"SENTRY_DSN":            &cfg.Sentry.DSN,
		"SENTRY_ENVIRONMENT":    &cfg.Sentry.Environment,
	}
	for key, dst := range strs {
		if v := getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"API_TIMEOUT": &cfg.API.Timeout,
		"CACHE_TTL":   &cfg.Cache.TTL,
	}
	for key, dst := range durations {
		v := getenv(envPrefix + key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = d
	}

	bools := map[string]*bool{
		"SESSION_SECURE":  &cfg.Session.Secure,
		"METRICS_ENABLED": &cfg.Metrics.Enabled,
	}
	for key, dst := range bools {
		v := getenv(envPrefix + key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = b
	}

	if v := getenv(envPrefix + "API_RETRIES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("%sAPI_RETRIES: %w", envPrefix, err)
		}
		cfg.API.Retries = uint(n)
	}
	return nil
}

func (c Config) validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	switch strings.ToLower(c.Session.Store) {
	case "memory":
	case "redis":
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("redis.url is required for the redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("session.store: unknown store %q", c.Session.Store))
	}
	if len(c.Session.CookieSecret) < 32 {
		errs = append(errs, errShortSecret)
	}
	return errors.Join(errs...)
}

// usesRedis reports whether any component needs a Redis connection.
func (c Config) usesRedis() bool {
	return strings.EqualFold(c.Session.Store, "redis") || c.Redis.URL != ""
}
