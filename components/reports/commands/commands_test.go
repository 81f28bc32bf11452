package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admin-metrics/components/metrics"
	"github.com/goliatone/go-admin-metrics/components/reports"
)

type stubLoader struct {
	err   error
	calls int
}

func (s *stubLoader) Load(_ context.Context, req reports.Request) (reports.Dashboard, error) {
	s.calls++
	if s.err != nil {
		return reports.Dashboard{}, s.err
	}
	return reports.Dashboard{Page: req.Page, Generation: uint64(s.calls)}, nil
}

type stubTelemetry struct {
	events  []string
	payload map[string]any
}

func (s *stubTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	s.events = append(s.events, event)
	s.payload = payload
}

func TestRefreshCommandPublishes(t *testing.T) {
	loader := &stubLoader{}
	telemetry := &stubTelemetry{}
	cmd := NewRefreshCommand(loader, telemetry)

	err := cmd.Execute(context.Background(), RefreshInput{Request: reports.Request{Page: reports.PageReports}})
	require.NoError(t, err)
	assert.Equal(t, []string{"reports.page.refresh"}, telemetry.events)
	assert.Equal(t, "published", telemetry.payload["outcome"])
	assert.Equal(t, uint64(1), telemetry.payload["generation"])
}

func TestRefreshCommandSupersededIsNotAnError(t *testing.T) {
	telemetry := &stubTelemetry{}
	cmd := NewRefreshCommand(&stubLoader{err: reports.ErrSuperseded}, telemetry)

	require.NoError(t, cmd.Execute(context.Background(), RefreshInput{}))
	assert.Equal(t, "superseded", telemetry.payload["outcome"])
}

func TestRefreshCommandPropagatesFailures(t *testing.T) {
	cmd := NewRefreshCommand(&stubLoader{err: errors.New("backend down")}, nil)
	assert.EqualError(t, cmd.Execute(context.Background(), RefreshInput{}), "backend down")

	assert.Error(t, NewRefreshCommand(nil, nil).Execute(context.Background(), RefreshInput{}))
}

func TestRefreshCommandAdvancesServiceGeneration(t *testing.T) {
	svc := reports.NewService(reports.Options{Source: staticSource{}})
	cmd := NewRefreshCommand(svc, nil)

	for range 3 {
		require.NoError(t, cmd.Execute(context.Background(), RefreshInput{Request: reports.Request{Page: reports.PageDashboard}}))
	}
	assert.Equal(t, uint64(3), svc.Generation(reports.PageDashboard))
}

type staticSource struct{}

func (staticSource) FetchOverview(context.Context, string) (metrics.OverviewSnapshot, error) {
	return metrics.OverviewSnapshot{}, nil
}

func (staticSource) FetchSeries(context.Context, reports.SeriesQuery) ([]metrics.TimeSeriesPoint, error) {
	return nil, nil
}

func (staticSource) FetchSubscriptionStats(context.Context, string) (metrics.SubscriptionStats, error) {
	return metrics.SubscriptionStats{}, nil
}

func (staticSource) FetchTopContent(context.Context, reports.ContentQuery) ([]metrics.ContentStat, error) {
	return nil, nil
}
