package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-admin-metrics/components/metrics"
	"github.com/goliatone/go-admin-metrics/components/reports"
)

// Mock endpoint keys accepted by FailWith and Delay. Series use their kind.
const (
	MockOverview      = "overview"
	MockSubscriptions = "subscriptions"
	MockTopContent    = "top_content"
)

// MockData seeds deterministic analytics responses for tests or local demos.
type MockData struct {
	Overview      metrics.OverviewSnapshot
	Series        map[reports.SeriesKind][]metrics.TimeSeriesPoint
	Subscriptions metrics.SubscriptionStats
	TopContent    []metrics.ContentStat
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	mu     sync.RWMutex
	data   MockData
	errs   map[string]error
	delays map[string]time.Duration
	calls  map[string]int
}

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{
		data:   data,
		errs:   map[string]error{},
		delays: map[string]time.Duration{},
		calls:  map[string]int{},
	}
}

// SetData swaps the fixtures served by subsequent calls.
func (c *MockClient) SetData(data MockData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
}

// FailWith makes calls to key return err. A nil err clears the failure.
func (c *MockClient) FailWith(key string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.errs, key)
		return
	}
	c.errs[key] = err
}

// Delay holds calls to key for d, or until the context is cancelled.
func (c *MockClient) Delay(key string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delays[key] = d
}

// Calls reports how many times key was requested.
func (c *MockClient) Calls(key string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls[key]
}

func (c *MockClient) FetchOverview(ctx context.Context, _ string) (metrics.OverviewSnapshot, error) {
	if err := c.enter(ctx, MockOverview); err != nil {
		return metrics.OverviewSnapshot{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Overview, nil
}

func (c *MockClient) FetchSeries(ctx context.Context, query reports.SeriesQuery) ([]metrics.TimeSeriesPoint, error) {
	if _, err := reports.ParsePeriod(string(query.Period)); err != nil {
		return nil, err
	}
	if err := c.enter(ctx, string(query.Kind)); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]metrics.TimeSeriesPoint(nil), c.data.Series[query.Kind]...), nil
}

func (c *MockClient) FetchSubscriptionStats(ctx context.Context, _ string) (metrics.SubscriptionStats, error) {
	if err := c.enter(ctx, MockSubscriptions); err != nil {
		return metrics.SubscriptionStats{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Subscriptions, nil
}

// FetchTopContent returns the configured ranking truncated to the query limit.
func (c *MockClient) FetchTopContent(ctx context.Context, query reports.ContentQuery) ([]metrics.ContentStat, error) {
	if _, err := reports.ParsePeriod(string(query.Period)); err != nil {
		return nil, err
	}
	if err := c.enter(ctx, MockTopContent); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.data.TopContent
	if query.Limit > 0 && len(items) > query.Limit {
		items = items[:query.Limit]
	}
	return append([]metrics.ContentStat(nil), items...), nil
}

func (c *MockClient) enter(ctx context.Context, key string) error {
	c.mu.Lock()
	c.calls[key]++
	delay := c.delays[key]
	failure := c.errs[key]
	c.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return failure
}
