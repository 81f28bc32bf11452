package observability

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordFetchLifecycle(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	m.Record(ctx, EventFetchStart, map[string]any{"page": "dashboard"})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesInFlight.WithLabelValues("dashboard")))

	m.Record(ctx, EventFetchSuccess, map[string]any{"page": "dashboard", "duration_ms": int64(250), "failures": 2})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FetchesInFlight.WithLabelValues("dashboard")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("dashboard", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PartialFailures.WithLabelValues("dashboard")))

	m.Record(ctx, EventFetchStart, map[string]any{"page": "reports"})
	m.Record(ctx, EventFetchSuperseded, map[string]any{"page": "reports", "duration_ms": int64(10)})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("reports", "superseded")))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues(EventFetchStart)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.FetchDuration))
}

func TestMetricsRecordAnalyticsAndRefresh(t *testing.T) {
	m := NewMetrics(nil)
	ctx := context.Background()

	m.Record(ctx, EventAnalyticsCall, map[string]any{"endpoint": "overview", "success": true, "duration_ms": int64(5)})
	m.Record(ctx, EventAnalyticsCall, map[string]any{"endpoint": "overview", "success": false, "error": "boom"})
	m.Record(ctx, EventPageRefresh, map[string]any{"page": "reports", "outcome": "published"})
	m.Record(ctx, "custom.event", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalyticsRequests.WithLabelValues("overview", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalyticsRequests.WithLabelValues("overview", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshesTotal.WithLabelValues("reports", "published")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("custom.event")))
	require.NotNil(t, m.Registry())
}

func TestMetricsHandlerExposesSeries(t *testing.T) {
	m := NewMetrics(nil)
	m.Record(context.Background(), EventFetchStart, map[string]any{"page": "dashboard"})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "admin_metrics_report_fetches_in_flight"))
}

type countingRecorder struct{ events []string }

func (c *countingRecorder) Record(_ context.Context, event string, _ map[string]any) {
	c.events = append(c.events, event)
}

func TestFanoutSkipsNil(t *testing.T) {
	first, second := &countingRecorder{}, &countingRecorder{}
	rec := Fanout(first, nil, second)
	rec.Record(context.Background(), "a", nil)
	assert.Equal(t, []string{"a"}, first.events)
	assert.Equal(t, []string{"a"}, second.events)
}

func TestLogRecorderWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	LogRecorder(logger).Record(context.Background(), "reports.fetch.start", map[string]any{"page": "dashboard"})
	assert.Contains(t, buf.String(), "event=reports.fetch.start")
	assert.Contains(t, buf.String(), "page=dashboard")
}
