package reports

import (
	"time"

	"github.com/goliatone/go-admin-metrics/components/metrics"
)

const defaultCurrency = "USD"

// BuildOptions controls display formatting of a Dashboard.
type BuildOptions struct {
	Currency       string
	Locale         string
	FractionDigits int
	Now            func() time.Time
}

// FractionDigitsFor returns the currency fraction digits a page displays.
func FractionDigitsFor(page Page) int {
	if page == PageReports {
		return metrics.ReportFractionDigits
	}
	return metrics.DashboardFractionDigits
}

// Dashboard is the display-ready result of one page load.
type Dashboard struct {
	Page          Page                `json:"page" yaml:"page"`
	Period        Period              `json:"period" yaml:"period"`
	Locale        string              `json:"locale" yaml:"locale"`
	// Limit is the top-content row count requested; set on the reports page only.
	Limit         int                 `json:"limit,omitempty" yaml:"limit,omitempty"`
	Generation    uint64              `json:"generation" yaml:"generation"`
	GeneratedAt   time.Time           `json:"generated_at" yaml:"generated_at"`
	Overview      Overview            `json:"overview" yaml:"overview"`
	Series        []SeriesSummary     `json:"series" yaml:"series"`
	Subscriptions SubscriptionSummary `json:"subscriptions" yaml:"subscriptions"`
	TopContent    *ContentSummary     `json:"top_content,omitempty" yaml:"top_content,omitempty"`
	Errors        map[string]string   `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Overview holds headline totals and the derived rates.
type Overview struct {
	TotalUsers          float64               `json:"total_users" yaml:"total_users"`
	ActiveSubscriptions float64               `json:"active_subscriptions" yaml:"active_subscriptions"`
	TotalRevenue        float64               `json:"total_revenue" yaml:"total_revenue"`
	TotalViews          float64               `json:"total_views" yaml:"total_views"`
	TotalVideos         float64               `json:"total_videos" yaml:"total_videos"`
	TotalCategories     float64               `json:"total_categories" yaml:"total_categories"`
	UserGrowth          metrics.DerivedMetric `json:"user_growth" yaml:"user_growth"`
	RevenueGrowth       metrics.DerivedMetric `json:"revenue_growth" yaml:"revenue_growth"`
	ViewsGrowth         metrics.DerivedMetric `json:"views_growth" yaml:"views_growth"`
	ActiveUsersGrowth   metrics.DerivedMetric `json:"active_users_growth" yaml:"active_users_growth"`
	ConversionRate      metrics.DerivedMetric `json:"conversion_rate" yaml:"conversion_rate"`
	ChurnRate           metrics.DerivedMetric `json:"churn_rate" yaml:"churn_rate"`
	Formatted           FormattedTotals       `json:"formatted" yaml:"formatted"`
}

// FormattedTotals are the locale-formatted headline totals.
type FormattedTotals struct {
	TotalUsers          string `json:"total_users" yaml:"total_users"`
	ActiveSubscriptions string `json:"active_subscriptions" yaml:"active_subscriptions"`
	TotalRevenue        string `json:"total_revenue" yaml:"total_revenue"`
	TotalViews          string `json:"total_views" yaml:"total_views"`
	TotalVideos         string `json:"total_videos" yaml:"total_videos"`
}

// SeriesSummary is one time series and its period-over-period growth.
type SeriesSummary struct {
	Kind   SeriesKind                `json:"kind" yaml:"kind"`
	Points []metrics.TimeSeriesPoint `json:"points" yaml:"points"`
	Growth metrics.DerivedMetric     `json:"growth" yaml:"growth"`
}

// SubscriptionSummary is the tier breakdown and the aggregate counts.
type SubscriptionSummary struct {
	Breakdown    metrics.SubscriptionBreakdown `json:"breakdown" yaml:"breakdown"`
	Distribution []metrics.TierShare           `json:"distribution" yaml:"distribution"`
	Paid         float64                       `json:"paid" yaml:"paid"`
	Total        float64                       `json:"total" yaml:"total"`
	Active       float64                       `json:"active" yaml:"active"`
	Expired      float64                       `json:"expired" yaml:"expired"`
}

// ContentSummary is the top-content ranking with its mean rating.
type ContentSummary struct {
	Items         []metrics.ContentStat `json:"items" yaml:"items"`
	AverageRating float64               `json:"average_rating" yaml:"average_rating"`
}

// SeriesFor returns the summary of kind, or an empty one.
func (d Dashboard) SeriesFor(kind SeriesKind) SeriesSummary {
	for _, s := range d.Series {
		if s.Kind == kind {
			return s
		}
	}
	return SeriesSummary{Kind: kind}
}

// Build derives every display metric from a batch. Each growth figure comes
// from its own series; the growth fields of the overview payload are ignored.
// Missing inputs degrade to zero.
func Build(batch Batch, opts BuildOptions) Dashboard {
	currency := opts.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	locale := opts.Locale
	if locale == "" {
		locale = batch.Request.Locale
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	dash := Dashboard{
		Page:        batch.Request.Page,
		Period:      batch.Request.Period,
		Locale:      locale,
		GeneratedAt: now().UTC(),
		Series:      make([]SeriesSummary, 0, len(SeriesKinds)),
	}
	if batch.Request.Page == PageReports {
		dash.Limit = batch.Request.TopContentLimit
	}

	for _, kind := range SeriesKinds {
		points := batch.Series[kind]
		if points == nil {
			points = []metrics.TimeSeriesPoint{}
		}
		dash.Series = append(dash.Series, SeriesSummary{
			Kind:   kind,
			Points: points,
			Growth: metrics.NewDerivedMetric(metrics.PeriodOverPeriodGrowth(points)),
		})
	}

	stats := batch.Subscriptions
	breakdown := stats.Breakdown()
	total := stats.TotalSubscriptions.Float()
	if !stats.TotalSubscriptions.Valid {
		total = breakdown.Total()
	}
	dash.Subscriptions = SubscriptionSummary{
		Breakdown:    breakdown,
		Distribution: metrics.DistributionList(breakdown),
		Paid:         metrics.PaidUsers(breakdown),
		Total:        total,
		Active:       stats.ActiveSubscriptions.Float(),
		Expired:      stats.ExpiredSubscriptions.Float(),
	}

	ov := batch.Overview
	overview := Overview{
		TotalUsers:          ov.TotalUsers.Float(),
		ActiveSubscriptions: ov.ActiveSubscriptions.Float(),
		TotalRevenue:        ov.TotalRevenue.Float(),
		TotalViews:          ov.TotalViews.Float(),
		TotalVideos:         ov.TotalVideos.Float(),
		TotalCategories:     ov.TotalCategories.Float(),
		UserGrowth:          dash.SeriesFor(SeriesUsers).Growth,
		RevenueGrowth:       dash.SeriesFor(SeriesRevenue).Growth,
		ViewsGrowth:         dash.SeriesFor(SeriesViews).Growth,
		ActiveUsersGrowth:   dash.SeriesFor(SeriesActiveUsers).Growth,
	}
	overview.ConversionRate = metrics.NewDerivedMetric(metrics.ConversionRate(overview.TotalUsers, dash.Subscriptions.Paid))
	overview.ChurnRate = metrics.NewDerivedMetric(metrics.ChurnRate(dash.Subscriptions.Total, dash.Subscriptions.Expired))
	overview.Formatted = FormattedTotals{
		TotalUsers:          metrics.FormatCount(overview.TotalUsers, locale),
		ActiveSubscriptions: metrics.FormatCount(overview.ActiveSubscriptions, locale),
		TotalRevenue:        metrics.FormatCurrency(overview.TotalRevenue, currency, locale, opts.FractionDigits),
		TotalViews:          metrics.FormatCount(overview.TotalViews, locale),
		TotalVideos:         metrics.FormatCount(overview.TotalVideos, locale),
	}
	dash.Overview = overview

	if batch.Request.Page == PageReports {
		items := batch.TopContent
		if items == nil {
			items = []metrics.ContentStat{}
		}
		dash.TopContent = &ContentSummary{
			Items:         items,
			AverageRating: metrics.AverageRating(metrics.Ratings(items)),
		}
	}

	if len(batch.Errors) > 0 {
		dash.Errors = make(map[string]string, len(batch.Errors))
		for name, err := range batch.Errors {
			dash.Errors[name] = err.Error()
		}
	}
	return dash
}
