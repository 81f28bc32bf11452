package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-admin-metrics/components/metrics"
)

// Provider turns a built dashboard into the payload of one widget.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// WidgetContext contains what providers need to render a widget.
type WidgetContext struct {
	Dashboard  Dashboard
	Locale     string
	Translator TranslationService
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any

// Widget names used by DefaultProviders.
const (
	WidgetOverviewCards = "overview_cards"
	WidgetGrowthChart   = "growth_chart"
	WidgetDistribution  = "distribution_chart"
	WidgetTopContent    = "top_content_chart"
)

// DefaultProviders returns the standard widget set sharing cache.
func DefaultProviders(cache RenderCache) map[string]Provider {
	return map[string]Provider{
		WidgetOverviewCards: OverviewCardsProvider{},
		WidgetGrowthChart:   NewGrowthChartProvider(WithChartCache(cache)),
		WidgetDistribution:  NewDistributionChartProvider(WithChartCache(cache)),
		WidgetTopContent:    NewTopContentChartProvider(WithChartCache(cache)),
	}
}

// RenderWidgets runs every provider against meta. Providers that have nothing
// to show for the page return nil data and are left out.
func RenderWidgets(ctx context.Context, providers map[string]Provider, meta WidgetContext) (map[string]WidgetData, error) {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]WidgetData, len(providers))
	for _, name := range names {
		data, err := providers[name].Fetch(ctx, meta)
		if err != nil {
			return nil, fmt.Errorf("reports: widget %s: %w", name, err)
		}
		if data != nil {
			out[name] = data
		}
	}
	return out, nil
}

// Card is one headline figure on the overview.
type Card struct {
	Key       string                 `json:"key"`
	Label     string                 `json:"label"`
	Value     string                 `json:"value"`
	Change    *metrics.DerivedMetric `json:"change,omitempty"`
	IsPercent bool                   `json:"is_percent,omitempty"`
}

// OverviewCardsProvider renders the headline cards.
type OverviewCardsProvider struct{}

func (OverviewCardsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	dash := meta.Dashboard
	ov := dash.Overview
	locale := meta.Locale
	label := func(key string) string {
		return Label(ctx, meta.Translator, "reports.card."+key, locale)
	}
	growth := func(m metrics.DerivedMetric) *metrics.DerivedMetric { return &m }
	percent := func(m metrics.DerivedMetric) string {
		return metrics.FormatPercent(m.Value, locale)
	}

	cards := []Card{
		{Key: "total_users", Label: label("total_users"), Value: ov.Formatted.TotalUsers, Change: growth(ov.UserGrowth)},
		{Key: "active_subscriptions", Label: label("active_subscriptions"), Value: ov.Formatted.ActiveSubscriptions, Change: growth(ov.ActiveUsersGrowth)},
		{Key: "total_revenue", Label: label("total_revenue"), Value: ov.Formatted.TotalRevenue, Change: growth(ov.RevenueGrowth)},
		{Key: "total_views", Label: label("total_views"), Value: ov.Formatted.TotalViews, Change: growth(ov.ViewsGrowth)},
		{Key: "conversion_rate", Label: label("conversion_rate"), Value: percent(ov.ConversionRate), IsPercent: true},
		{Key: "churn_rate", Label: label("churn_rate"), Value: percent(ov.ChurnRate), IsPercent: true},
	}
	if dash.Page == PageReports {
		cards = append(cards, Card{Key: "total_videos", Label: label("total_videos"), Value: ov.Formatted.TotalVideos})
	}
	return WidgetData{"cards": cards}, nil
}
