package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admin-metrics/components/metrics"
	"github.com/goliatone/go-admin-metrics/components/reports"
)

type recordingTelemetry struct {
	events []string
	last   map[string]any
}

func (r *recordingTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	r.events = append(r.events, event)
	r.last = payload
}

func TestMockClientServesFixtures(t *testing.T) {
	client := NewMockClient(MockData{
		Overview: metrics.OverviewSnapshot{TotalUsers: metrics.NumberOf(10)},
		TopContent: []metrics.ContentStat{
			{ID: "a"}, {ID: "b"}, {ID: "c"},
		},
	})

	overview, err := client.FetchOverview(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, 10.0, overview.TotalUsers.Float())

	items, err := client.FetchTopContent(context.Background(), reports.ContentQuery{Period: reports.PeriodWeek, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, client.Calls(MockTopContent))
}

func TestMockClientFailureInjection(t *testing.T) {
	client := NewMockClient(MockData{})
	boom := errors.New("boom")
	client.FailWith(string(reports.SeriesViews), boom)

	_, err := client.FetchSeries(context.Background(), reports.SeriesQuery{Kind: reports.SeriesViews, Period: reports.PeriodMonth})
	assert.ErrorIs(t, err, boom)

	client.FailWith(string(reports.SeriesViews), nil)
	_, err = client.FetchSeries(context.Background(), reports.SeriesQuery{Kind: reports.SeriesViews, Period: reports.PeriodMonth})
	assert.NoError(t, err)
}

func TestMockClientDelayHonoursCancellation(t *testing.T) {
	client := NewMockClient(MockData{})
	client.Delay(MockOverview, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := client.FetchOverview(ctx, "en")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInstrumentRecordsRequests(t *testing.T) {
	mock := NewMockClient(MockData{})
	mock.FailWith(MockSubscriptions, errors.New("offline"))
	telemetry := &recordingTelemetry{}
	client := Instrument(mock, telemetry, nil)

	_, err := client.FetchSubscriptionStats(context.Background(), "en")
	require.Error(t, err)
	require.Equal(t, []string{"analytics.request"}, telemetry.events)
	assert.Equal(t, MockSubscriptions, telemetry.last["endpoint"])
	assert.Equal(t, false, telemetry.last["success"])
	assert.Equal(t, "offline", telemetry.last["error"])
}
