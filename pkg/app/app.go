package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-admin-metrics/components/reports"
	"github.com/goliatone/go-admin-metrics/components/reports/commands"
	"github.com/goliatone/go-admin-metrics/components/reports/export"
	"github.com/goliatone/go-admin-metrics/components/reports/httpapi"
	"github.com/goliatone/go-admin-metrics/components/reports/queries"
	"github.com/goliatone/go-admin-metrics/pkg/analytics"
	"github.com/goliatone/go-admin-metrics/pkg/config"
	"github.com/goliatone/go-admin-metrics/pkg/logging"
	"github.com/goliatone/go-admin-metrics/pkg/observability"
)

// App bundles the report stack built from a Config.
type App struct {
	Config     config.Config
	Logger     *logrus.Logger
	Metrics    *observability.Metrics
	Source     analytics.Client
	ChartCache *reports.ChartCache
	Service    *reports.Service
	Exporter   *export.Exporter
	Handlers   *httpapi.Handlers
}

// Options overrides collaborators New would otherwise build from the config.
type Options struct {
	Logger   *logrus.Logger
	Source   analytics.Client
	Registry *prometheus.Registry
}

// New wires analytics, telemetry, the report service, exports and handlers.
func New(cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		var err error
		if logger, err = logging.New(cfg.Log); err != nil {
			return nil, err
		}
	}

	policy, err := reports.ParseFailurePolicy(cfg.Reports.FailurePolicy)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics(opts.Registry)
	telemetry := observability.Fanout(metrics, observability.LogRecorder(logger))

	source := opts.Source
	if source == nil {
		if source, err = newSource(cfg.Analytics); err != nil {
			return nil, err
		}
	}
	source = analytics.Instrument(source, telemetry, logger)

	translator, err := loadTranslations(cfg.Reports.Translations)
	if err != nil {
		return nil, err
	}

	cache := reports.NewChartCache(cfg.Reports.ChartCacheSize, cfg.Reports.ChartCacheTTL)
	service := reports.NewService(reports.Options{
		Source:        source,
		FailurePolicy: policy,
		Defaults: reports.Request{
			Period:          reports.Period(cfg.Reports.DefaultPeriod),
			Locale:          cfg.Reports.DefaultLocale,
			TopContentLimit: cfg.Reports.TopContentLimit,
		},
		Currency:   cfg.Reports.Currency,
		Telemetry:  telemetry,
		Logger:     logger,
		Translator: translator,
		Providers:  providers(cfg.Reports, cache),
	})

	renderer, err := export.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("app: report templates: %w", err)
	}
	exporter := export.New(export.Options{
		Renderer:   renderer,
		Widgets:    service,
		Translator: translator,
	})

	return &App{
		Config:     cfg,
		Logger:     logger,
		Metrics:    metrics,
		Source:     source,
		ChartCache: cache,
		Service:    service,
		Exporter:   exporter,
		Handlers: &httpapi.Handlers{
			Dashboard: queries.NewDashboardQuery(service),
			Export:    queries.NewExportQuery(service, exporter),
			Refresh:   commands.NewRefreshCommand(service, telemetry),
		},
	}, nil
}

func newSource(cfg config.AnalyticsConfig) (analytics.Client, error) {
	if cfg.Mock {
		return analytics.NewMockClient(analytics.DemoData()), nil
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("app: analytics base url is required")
	}
	return analytics.NewHTTPClient(analytics.HTTPConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
}

func providers(cfg config.ReportsConfig, cache *reports.ChartCache) map[string]reports.Provider {
	options := []reports.ChartOption{}
	if cache != nil {
		options = append(options, reports.WithChartCache(cache))
	}
	if cfg.ChartTheme != "" {
		options = append(options, reports.WithChartTheme(cfg.ChartTheme))
	}
	if cfg.ChartAssetsHost != "" {
		options = append(options, reports.WithChartAssetsHost(cfg.ChartAssetsHost))
	}
	return map[string]reports.Provider{
		reports.WidgetOverviewCards: reports.OverviewCardsProvider{},
		reports.WidgetGrowthChart:   reports.NewGrowthChartProvider(options...),
		reports.WidgetDistribution:  reports.NewDistributionChartProvider(options...),
		reports.WidgetTopContent:    reports.NewTopContentChartProvider(options...),
	}
}

// loadTranslations reads a YAML document of locale -> key -> text. An empty
// path keeps the built-in English labels.
func loadTranslations(path string) (reports.TranslationService, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("app: read translations: %w", err)
	}
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("app: parse translations %s: %w", path, err)
	}
	return reports.MapTranslator(doc), nil
}
