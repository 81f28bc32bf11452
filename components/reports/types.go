package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-admin-metrics/components/metrics"
)

// Period is the reporting granularity of time-series endpoints.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod validates a period value, case-insensitively.
func ParsePeriod(value string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(value))); p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, value)
}

// Page identifies a console page that loads analytics.
type Page string

const (
	PageDashboard Page = "dashboard"
	PageReports   Page = "reports"
)

// Pages lists every page in navigation order.
var Pages = []Page{PageDashboard, PageReports}

// ParsePage validates a page name.
func ParsePage(value string) (Page, error) {
	switch p := Page(strings.ToLower(strings.TrimSpace(value))); p {
	case PageDashboard, PageReports:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, value)
}

// SeriesKind names a time series exposed by the analytics backend.
type SeriesKind string

const (
	SeriesUsers       SeriesKind = "users"
	SeriesRevenue     SeriesKind = "revenue"
	SeriesViews       SeriesKind = "views"
	SeriesActiveUsers SeriesKind = "active_users"
)

// SeriesKinds lists every series in display order.
var SeriesKinds = []SeriesKind{SeriesUsers, SeriesRevenue, SeriesViews, SeriesActiveUsers}

// SeriesQuery requests a single time series.
type SeriesQuery struct {
	Kind   SeriesKind
	Period Period
	Locale string
}

// ContentQuery requests the top-content ranking.
type ContentQuery struct {
	Period Period
	Limit  int
	Locale string
}

// OverviewSource loads the headline counters.
type OverviewSource interface {
	FetchOverview(ctx context.Context, locale string) (metrics.OverviewSnapshot, error)
}

// SeriesSource loads time series.
type SeriesSource interface {
	FetchSeries(ctx context.Context, query SeriesQuery) ([]metrics.TimeSeriesPoint, error)
}

// SubscriptionSource loads subscription statistics.
type SubscriptionSource interface {
	FetchSubscriptionStats(ctx context.Context, locale string) (metrics.SubscriptionStats, error)
}

// ContentSource loads the top-content ranking.
type ContentSource interface {
	FetchTopContent(ctx context.Context, query ContentQuery) ([]metrics.ContentStat, error)
}

// Source is implemented by clients that serve every analytics endpoint.
type Source interface {
	OverviewSource
	SeriesSource
	SubscriptionSource
	ContentSource
}

// Request describes one page load.
type Request struct {
	Page            Page   `json:"page"`
	Period          Period `json:"period"`
	Locale          string `json:"locale"`
	TopContentLimit int    `json:"top_content_limit,omitempty"`
}

func (r Request) normalized(defaults Request) (Request, error) {
	if r.Page == "" {
		r.Page = defaults.Page
	}
	page, err := ParsePage(string(r.Page))
	if err != nil {
		return Request{}, err
	}
	r.Page = page
	if r.Period == "" {
		r.Period = defaults.Period
	}
	period, err := ParsePeriod(string(r.Period))
	if err != nil {
		return Request{}, err
	}
	r.Period = period
	if r.Locale == "" {
		r.Locale = defaults.Locale
	}
	if r.TopContentLimit <= 0 {
		r.TopContentLimit = defaults.TopContentLimit
	}
	return r, nil
}
