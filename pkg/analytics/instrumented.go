package analytics

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-admin-metrics/components/metrics"
	"github.com/goliatone/go-admin-metrics/components/reports"
	"github.com/goliatone/go-admin-metrics/pkg/logging"
)

// Instrument wraps a client so every backend call emits an
// "analytics.request" telemetry event and a debug log line.
func Instrument(client Client, telemetry reports.Telemetry, logger logrus.FieldLogger) Client {
	if telemetry == nil {
		telemetry = reports.NoopTelemetry()
	}
	return &instrumentedSource{next: client, telemetry: telemetry, logger: logging.OrDiscard(logger)}
}

type instrumentedSource struct {
	next      Client
	telemetry reports.Telemetry
	logger    logrus.FieldLogger
}

func (s *instrumentedSource) FetchOverview(ctx context.Context, locale string) (metrics.OverviewSnapshot, error) {
	start := time.Now()
	out, err := s.next.FetchOverview(ctx, locale)
	s.observe(ctx, MockOverview, start, err)
	return out, err
}

func (s *instrumentedSource) FetchSeries(ctx context.Context, query reports.SeriesQuery) ([]metrics.TimeSeriesPoint, error) {
	start := time.Now()
	out, err := s.next.FetchSeries(ctx, query)
	s.observe(ctx, string(query.Kind), start, err)
	return out, err
}

func (s *instrumentedSource) FetchSubscriptionStats(ctx context.Context, locale string) (metrics.SubscriptionStats, error) {
	start := time.Now()
	out, err := s.next.FetchSubscriptionStats(ctx, locale)
	s.observe(ctx, MockSubscriptions, start, err)
	return out, err
}

func (s *instrumentedSource) FetchTopContent(ctx context.Context, query reports.ContentQuery) ([]metrics.ContentStat, error) {
	start := time.Now()
	out, err := s.next.FetchTopContent(ctx, query)
	s.observe(ctx, MockTopContent, start, err)
	return out, err
}

func (s *instrumentedSource) observe(ctx context.Context, endpoint string, start time.Time, err error) {
	elapsed := time.Since(start)
	payload := map[string]any{
		"endpoint":    endpoint,
		"duration_ms": elapsed.Milliseconds(),
		"success":     err == nil,
	}
	entry := logging.FromContext(ctx, s.logger).WithField("endpoint", endpoint).WithField("duration", elapsed)
	if err != nil {
		payload["error"] = err.Error()
		entry.WithError(err).Debug("analytics request failed")
	} else {
		entry.Debug("analytics request completed")
	}
	s.telemetry.Record(ctx, "analytics.request", payload)
}
