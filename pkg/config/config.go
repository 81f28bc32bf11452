package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-admin-metrics/pkg/logging"
)

const (
	// EnvPrefix scopes environment overrides, e.g. METRICS_ANALYTICS__BASE_URL.
	EnvPrefix = "METRICS_"
	// EnvConfigFile points at a YAML file when no path is passed explicitly.
	EnvConfigFile = "METRICS_CONFIG_FILE"
)

// ConfigFileSearchPaths are tried in order when no file is configured.
var ConfigFileSearchPaths = []string{"metrics.yaml", "config/metrics.yaml"}

// Config is the process configuration.
type Config struct {
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Reports   ReportsConfig   `mapstructure:"reports"`
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       logging.Config  `mapstructure:"log"`
}

// AnalyticsConfig points at the analytics REST backend.
type AnalyticsConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
	// Mock serves built-in fixtures instead of calling BaseURL.
	Mock bool `mapstructure:"mock"`
}

// ReportsConfig holds page defaults and rendering options.
type ReportsConfig struct {
	FailurePolicy   string        `mapstructure:"failure_policy" validate:"oneof=fail_batch partial"`
	DefaultPeriod   string        `mapstructure:"default_period" validate:"oneof=week month quarter year"`
	DefaultLocale   string        `mapstructure:"default_locale" validate:"required"`
	Currency        string        `mapstructure:"currency" validate:"len=3"`
	TopContentLimit int           `mapstructure:"top_content_limit" validate:"gte=1,lte=100"`
	ChartCacheTTL   time.Duration `mapstructure:"chart_cache_ttl" validate:"gte=0"`
	ChartCacheSize  int           `mapstructure:"chart_cache_size" validate:"gte=0"`
	ChartAssetsHost string        `mapstructure:"chart_assets_host" validate:"omitempty,url"`
	ChartTheme      string        `mapstructure:"chart_theme"`
	Translations    string        `mapstructure:"translations_file"`
}

type ServerConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	BasePath string `mapstructure:"base_path" validate:"omitempty,startswith=/"`
}

// MetricsConfig exposes Prometheus metrics on a separate listener. An empty
// Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
	Path string `mapstructure:"path" validate:"startswith=/"`
}

// Defaults returns the baseline values every source is layered on.
func Defaults() map[string]any {
	return map[string]any{
		"analytics.timeout": "10s",
		"analytics.mock":    false,

		"reports.failure_policy":    "fail_batch",
		"reports.default_period":    "month",
		"reports.default_locale":    "en",
		"reports.currency":          "USD",
		"reports.top_content_limit": 10,
		"reports.chart_cache_ttl":   "5m",
		"reports.chart_cache_size":  256,

		"server.addr":      ":8080",
		"server.base_path": "/admin",

		"metrics.addr": ":9091",
		"metrics.path": "/metrics",

		"log.level":  "info",
		"log.format": "text",
	}
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// File is a YAML file. Empty falls back to METRICS_CONFIG_FILE, then
	// ConfigFileSearchPaths.
	File string
	// Overrides are applied last, using dotted keys.
	Overrides map[string]any
	// Environ replaces os.Environ, mainly for tests.
	Environ []string
}

// Load layers defaults, the YAML file, METRICS_* environment variables and
// overrides, then decodes and validates the result.
func Load(opts LoadOptions) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: defaults: %w", err)
	}
	if path := resolveFile(opts.File); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if err := loadEnv(k, opts.Environ); err != nil {
		return Config{}, err
	}
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return Config{}, fmt.Errorf("config: overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that a backend is configured.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	if !c.Analytics.Mock && strings.TrimSpace(c.Analytics.BaseURL) == "" {
		return errors.New("config: invalid: analytics.base_url is required unless analytics.mock is set")
	}
	return nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Join(strings.Split(s, "__"), ".")
}

func loadEnv(k *koanf.Koanf, environ []string) error {
	if environ == nil {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return fmt.Errorf("config: env: %w", err)
		}
		return nil
	}
	values := make(map[string]any)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) || key == EnvConfigFile {
			continue
		}
		values[envKey(key)] = value
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return fmt.Errorf("config: env: %w", err)
	}
	return nil
}

func resolveFile(path string) string {
	if path != "" {
		return path
	}
	if path = os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	for _, candidate := range ConfigFileSearchPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
