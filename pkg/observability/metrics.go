package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "admin_metrics"

// Event names understood by Metrics. Anything else only bumps EventsTotal.
const (
	EventFetchStart      = "reports.fetch.start"
	EventFetchSuccess    = "reports.fetch.success"
	EventFetchError      = "reports.fetch.error"
	EventFetchSuperseded = "reports.fetch.superseded"
	EventPageRefresh     = "reports.page.refresh"
	EventAnalyticsCall   = "analytics.request"
)

// Metrics turns report telemetry events into Prometheus series.
type Metrics struct {
	EventsTotal *prometheus.CounterVec

	FetchesTotal       *prometheus.CounterVec
	FetchDuration      *prometheus.HistogramVec
	FetchesInFlight    *prometheus.GaugeVec
	PartialFailures    *prometheus.CounterVec
	RefreshesTotal     *prometheus.CounterVec
	AnalyticsRequests  *prometheus.CounterVec
	AnalyticsDurations *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on registry. A nil
// registry gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Telemetry events recorded, by event name",
			},
			[]string{"event"},
		),
		FetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_fetches_total",
				Help:      "Completed report fetches by page and outcome",
			},
			[]string{"page", "outcome"},
		),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_fetch_duration_seconds",
				Help:      "Report fetch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"page", "outcome"},
		),
		FetchesInFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "report_fetches_in_flight",
				Help:      "Report fetches started but not finished",
			},
			[]string{"page"},
		),
		PartialFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_partial_failures_total",
				Help:      "Sections missing from published reports",
			},
			[]string{"page"},
		),
		RefreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_refreshes_total",
				Help:      "Refresh commands by page and outcome",
			},
			[]string{"page", "outcome"},
		),
		AnalyticsRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analytics_requests_total",
				Help:      "Analytics backend requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		AnalyticsDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analytics_request_duration_seconds",
				Help:      "Analytics backend request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.EventsTotal,
		m.FetchesTotal,
		m.FetchDuration,
		m.FetchesInFlight,
		m.PartialFailures,
		m.RefreshesTotal,
		m.AnalyticsRequests,
		m.AnalyticsDurations,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Record implements the report and command Telemetry interfaces.
func (m *Metrics) Record(_ context.Context, event string, payload map[string]any) {
	m.EventsTotal.WithLabelValues(event).Inc()

	switch event {
	case EventFetchStart:
		m.FetchesInFlight.WithLabelValues(label(payload, "page")).Inc()
	case EventFetchSuccess, EventFetchError, EventFetchSuperseded:
		page := label(payload, "page")
		outcome := fetchOutcome(event)
		m.FetchesInFlight.WithLabelValues(page).Dec()
		m.FetchesTotal.WithLabelValues(page, outcome).Inc()
		m.FetchDuration.WithLabelValues(page, outcome).Observe(seconds(payload))
		if failures, ok := payload["failures"].(int); ok && failures > 0 {
			m.PartialFailures.WithLabelValues(page).Add(float64(failures))
		}
	case EventPageRefresh:
		m.RefreshesTotal.WithLabelValues(label(payload, "page"), label(payload, "outcome")).Inc()
	case EventAnalyticsCall:
		endpoint := label(payload, "endpoint")
		status := "ok"
		if ok, _ := payload["success"].(bool); !ok {
			status = "error"
		}
		m.AnalyticsRequests.WithLabelValues(endpoint, status).Inc()
		m.AnalyticsDurations.WithLabelValues(endpoint).Observe(seconds(payload))
	}
}

func fetchOutcome(event string) string {
	switch event {
	case EventFetchSuccess:
		return "success"
	case EventFetchSuperseded:
		return "superseded"
	default:
		return "error"
	}
}

func label(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case nil:
		return "unknown"
	case string:
		if v == "" {
			return "unknown"
		}
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func seconds(payload map[string]any) float64 {
	switch v := payload["duration_ms"].(type) {
	case int64:
		return (time.Duration(v) * time.Millisecond).Seconds()
	case int:
		return (time.Duration(v) * time.Millisecond).Seconds()
	case float64:
		return v / 1000
	case time.Duration:
		return v.Seconds()
	default:
		return 0
	}
}
