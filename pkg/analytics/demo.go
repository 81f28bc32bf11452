package analytics

import (
	"github.com/goliatone/go-admin-metrics/components/metrics"
	"github.com/goliatone/go-admin-metrics/components/reports"
)

// DemoData returns a small, stable data set for local runs without a backend.
func DemoData() MockData {
	num := metrics.NumberOf
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	series := func(values ...float64) []metrics.TimeSeriesPoint {
		out := make([]metrics.TimeSeriesPoint, len(values))
		for i, v := range values {
			out[i] = metrics.TimeSeriesPoint{PeriodLabel: months[i], Value: v}
		}
		return out
	}

	return MockData{
		Overview: metrics.OverviewSnapshot{
			TotalUsers:          num(12480),
			ActiveSubscriptions: num(3120),
			TotalRevenue:        num(48250.75),
			TotalViews:          num(215000),
			TotalVideos:         num(342),
			TotalCategories:     num(18),
		},
		Series: map[reports.SeriesKind][]metrics.TimeSeriesPoint{
			reports.SeriesUsers:       series(9800, 10350, 10900, 11400, 11900, 12480),
			reports.SeriesRevenue:     series(39000, 41200, 42800, 44100, 46500, 48250.75),
			reports.SeriesViews:       series(180000, 176000, 190500, 201000, 198000, 215000),
			reports.SeriesActiveUsers: series(4100, 4300, 4250, 4600, 4800, 5020),
		},
		Subscriptions: metrics.SubscriptionStats{
			Freemium:             num(9360),
			Basic:                num(2180),
			Premium:              num(940),
			TotalSubscriptions:   num(12480),
			ActiveSubscriptions:  num(3120),
			ExpiredSubscriptions: num(410),
		},
		TopContent: []metrics.ContentStat{
			{ID: "101", Title: "Getting started", Views: num(18400), Rating: num(4.7), CompletionRate: num(82.5)},
			{ID: "214", Title: "Advanced workflows", Views: num(12950), Rating: num(4.9), CompletionRate: num(64)},
			{ID: "087", Title: "Release highlights", Views: num(9800), CompletionRate: num(71.2)},
			{ID: "330", Title: "Team onboarding", Views: num(7420), Rating: num(4.1), CompletionRate: num(58.9)},
		},
	}
}
