package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithMock(t *testing.T) {
	cfg, err := Load(LoadOptions{
		File:      "",
		Environ:   []string{"METRICS_ANALYTICS__MOCK=true"},
		Overrides: nil,
	})
	require.NoError(t, err)

	assert.True(t, cfg.Analytics.Mock)
	assert.Equal(t, 10*time.Second, cfg.Analytics.Timeout)
	assert.Equal(t, "fail_batch", cfg.Reports.FailurePolicy)
	assert.Equal(t, "month", cfg.Reports.DefaultPeriod)
	assert.Equal(t, "en", cfg.Reports.DefaultLocale)
	assert.Equal(t, "USD", cfg.Reports.Currency)
	assert.Equal(t, 10, cfg.Reports.TopContentLimit)
	assert.Equal(t, 5*time.Minute, cfg.Reports.ChartCacheTTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/admin", cfg.Server.BasePath)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadLayersFileEnvAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.yaml")
	body := []byte(`analytics:
  base_url: https://analytics.example.com/api
  timeout: 3s
reports:
  failure_policy: partial
  default_locale: de
  top_content_limit: 5
log:
  format: json
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(LoadOptions{
		File: path,
		Environ: []string{
			"METRICS_REPORTS__DEFAULT_PERIOD=quarter",
			"METRICS_REPORTS__TOP_CONTENT_LIMIT=20",
			"UNRELATED=1",
		},
		Overrides: map[string]any{"server.addr": ":9090"},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://analytics.example.com/api", cfg.Analytics.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Analytics.Timeout)
	assert.Equal(t, "partial", cfg.Reports.FailurePolicy)
	assert.Equal(t, "de", cfg.Reports.DefaultLocale)
	assert.Equal(t, "quarter", cfg.Reports.DefaultPeriod)
	assert.Equal(t, 20, cfg.Reports.TopContentLimit)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRequiresBackend(t *testing.T) {
	_, err := Load(LoadOptions{Environ: []string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analytics.base_url")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]any{
		"policy":   {"reports.failure_policy": "sometimes"},
		"period":   {"reports.default_period": "decade"},
		"currency": {"reports.currency": "DOLLARS"},
		"limit":    {"reports.top_content_limit": 0},
		"log":      {"log.format": "xml"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			overrides["analytics.mock"] = true
			_, err := Load(LoadOptions{Environ: []string{}, Overrides: overrides})
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "missing.yaml"), Environ: []string{}})
	assert.Error(t, err)
}
