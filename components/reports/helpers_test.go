package reports

import (
	"context"
	"sync"

	"github.com/goliatone/go-admin-metrics/components/metrics"
)

type stubSource struct {
	overview metrics.OverviewSnapshot
	series   map[SeriesKind][]metrics.TimeSeriesPoint
	subs     metrics.SubscriptionStats
	content  []metrics.ContentStat
	errs     map[string]error

	mu      sync.Mutex
	calls   []string
	locales []string
}

func (s *stubSource) record(name, locale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	s.locales = append(s.locales, locale)
	return s.errs[name]
}

func (s *stubSource) FetchOverview(_ context.Context, locale string) (metrics.OverviewSnapshot, error) {
	if err := s.record(FetchOverview, locale); err != nil {
		return metrics.OverviewSnapshot{}, err
	}
	return s.overview, nil
}

func (s *stubSource) FetchSeries(_ context.Context, q SeriesQuery) ([]metrics.TimeSeriesPoint, error) {
	if err := s.record(string(q.Kind), q.Locale); err != nil {
		return nil, err
	}
	return s.series[q.Kind], nil
}

func (s *stubSource) FetchSubscriptionStats(_ context.Context, locale string) (metrics.SubscriptionStats, error) {
	if err := s.record(FetchSubscriptions, locale); err != nil {
		return metrics.SubscriptionStats{}, err
	}
	return s.subs, nil
}

func (s *stubSource) FetchTopContent(_ context.Context, q ContentQuery) ([]metrics.ContentStat, error) {
	if err := s.record(FetchTopContent, q.Locale); err != nil {
		return nil, err
	}
	items := s.content
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

func (s *stubSource) callNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func n(v float64) metrics.Number {
	return metrics.NumberOf(v)
}

func points(pairs ...any) []metrics.TimeSeriesPoint {
	out := make([]metrics.TimeSeriesPoint, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, metrics.TimeSeriesPoint{PeriodLabel: pairs[i].(string), Value: float64(pairs[i+1].(int))})
	}
	return out
}

func fixtureSource() *stubSource {
	return &stubSource{
		overview: metrics.OverviewSnapshot{
			TotalUsers:          n(1000),
			ActiveSubscriptions: n(600),
			TotalRevenue:        n(2500.5),
			TotalViews:          n(12000),
			TotalVideos:         n(80),
		},
		series: map[SeriesKind][]metrics.TimeSeriesPoint{
			SeriesUsers:       points("Jan", 900, "Feb", 1000),
			SeriesRevenue:     points("Jan", 2000, "Feb", 2500),
			SeriesViews:       points("Jan", 12000, "Feb", 9000),
			SeriesActiveUsers: points("Jan", 400, "Feb", 400),
		},
		subs: metrics.SubscriptionStats{
			Freemium:             n(850),
			Basic:                n(100),
			Premium:              n(50),
			TotalSubscriptions:   n(1000),
			ActiveSubscriptions:  n(600),
			ExpiredSubscriptions: n(40),
		},
		content: []metrics.ContentStat{
			{ID: "1", Title: "Intro", Views: n(500), Rating: metrics.Number{Value: 4, Valid: true}},
			{ID: "2", Title: "Deep dive", Views: n(300), Rating: metrics.Number{}},
			{ID: "3", Title: "Outro", Views: n(100), Rating: n(5)},
		},
	}
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
	last   map[string]map[string]any
}

func (r *recordingTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if r.last == nil {
		r.last = map[string]map[string]any{}
	}
	r.last[event] = payload
}

func (r *recordingTelemetry) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}
