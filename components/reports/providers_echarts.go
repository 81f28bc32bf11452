package reports

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-admin-metrics/components/metrics"
)

const defaultChartHeight = "360px"

// ChartOption customizes chart providers.
type ChartOption func(*chartSettings)

type chartSettings struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartOption {
	return func(s *chartSettings) {
		s.cache = cache
	}
}

// WithChartTheme sets the chart theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(s *chartSettings) {
		s.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartOption {
	return func(s *chartSettings) {
		s.assetsHost = host
	}
}

func newChartSettings(options []ChartOption) chartSettings {
	s := chartSettings{theme: types.ThemeWesteros}
	for _, opt := range options {
		opt(&s)
	}
	return s
}

// render caches by kind plus a hash of everything that shows up in the chart.
func (s chartSettings) render(kind string, input any, fn func() (string, error)) (string, error) {
	if s.cache == nil {
		return fn()
	}
	key := fmt.Sprintf("%s:%s:%s", kind, s.theme, contentHash(input))
	return s.cache.GetOrRender(key, fn)
}

func (s chartSettings) globalOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  s.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if s.assetsHost != "" {
		initOpts.AssetsHost = s.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

// GrowthChartProvider plots every time series on one line chart.
type GrowthChartProvider struct {
	settings chartSettings
}

func NewGrowthChartProvider(options ...ChartOption) *GrowthChartProvider {
	return &GrowthChartProvider{settings: newChartSettings(options)}
}

func (p *GrowthChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	title := Label(ctx, meta.Translator, "reports.chart.growth", meta.Locale)
	axis := seriesAxis(meta.Dashboard.Series)
	type namedSeries struct {
		Name   string
		Values []float64
	}
	series := make([]namedSeries, 0, len(meta.Dashboard.Series))
	growth := make(map[string]metrics.DerivedMetric, len(meta.Dashboard.Series))
	for _, s := range meta.Dashboard.Series {
		name := Label(ctx, meta.Translator, "reports.series."+string(s.Kind), meta.Locale)
		series = append(series, namedSeries{Name: name, Values: metrics.SeriesValues(s.Points)})
		growth[string(s.Kind)] = s.Growth
	}

	html, err := p.settings.render("line", []any{title, axis, series}, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(p.settings.globalOptions(title)...)
		line.SetXAxis(axis)
		for _, s := range series {
			data := make([]opts.LineData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.LineData{Value: v}
			}
			line.AddSeries(s.Name, data)
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"chart_html": html,
		"chart_type": "line",
		"title":      title,
		"growth":     growth,
	}, nil
}

// DistributionChartProvider renders the tier split as a pie chart.
type DistributionChartProvider struct {
	settings chartSettings
}

func NewDistributionChartProvider(options ...ChartOption) *DistributionChartProvider {
	return &DistributionChartProvider{settings: newChartSettings(options)}
}

func (p *DistributionChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	title := Label(ctx, meta.Translator, "reports.chart.distribution", meta.Locale)
	shares := meta.Dashboard.Subscriptions.Distribution
	data := make([]opts.PieData, len(shares))
	for i, share := range shares {
		data[i] = opts.PieData{
			Name:  Label(ctx, meta.Translator, "reports.tier."+string(share.Tier), meta.Locale),
			Value: share.Count,
		}
	}

	html, err := p.settings.render("pie", []any{title, data}, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(p.settings.globalOptions(title)...)
		pie.AddSeries(title, data)
		return renderChart(pie)
	})
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"chart_html": html,
		"chart_type": "pie",
		"title":      title,
		"shares":     shares,
	}, nil
}

// TopContentChartProvider renders views per title for the reports page.
type TopContentChartProvider struct {
	settings chartSettings
}

func NewTopContentChartProvider(options ...ChartOption) *TopContentChartProvider {
	return &TopContentChartProvider{settings: newChartSettings(options)}
}

// Fetch returns nil data on pages without a top-content ranking.
func (p *TopContentChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	content := meta.Dashboard.TopContent
	if content == nil {
		return nil, nil
	}
	title := Label(ctx, meta.Translator, "reports.chart.top_content", meta.Locale)
	viewsLabel := Label(ctx, meta.Translator, "reports.column.views", meta.Locale)
	axis := make([]string, len(content.Items))
	data := make([]opts.BarData, len(content.Items))
	for i, item := range content.Items {
		axis[i] = item.Title
		data[i] = opts.BarData{Name: item.Title, Value: item.Views.Float()}
	}

	html, err := p.settings.render("bar", []any{title, viewsLabel, axis, data}, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(p.settings.globalOptions(title)...)
		bar.SetXAxis(axis)
		bar.AddSeries(viewsLabel, data)
		return renderChart(bar)
	})
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"chart_html":     html,
		"chart_type":     "bar",
		"title":          title,
		"items":          content.Items,
		"average_rating": content.AverageRating,
	}, nil
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// seriesAxis takes labels from the longest series.
func seriesAxis(series []SeriesSummary) []string {
	var longest []metrics.TimeSeriesPoint
	for _, s := range series {
		if len(s.Points) > len(longest) {
			longest = s.Points
		}
	}
	return metrics.SeriesLabels(longest)
}
