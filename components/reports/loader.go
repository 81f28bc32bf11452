package reports

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-admin-metrics/components/metrics"
)

// FailurePolicy decides what a failed fetch does to the rest of the batch.
type FailurePolicy string

const (
	// FailBatch treats any failed fetch as a failed page load.
	FailBatch FailurePolicy = "fail_batch"
	// PartialResults keeps every successful fetch and reports failures per fetch.
	PartialResults FailurePolicy = "partial"
)

// ParseFailurePolicy validates a policy name. Empty selects FailBatch.
func ParseFailurePolicy(value string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(value))); p {
	case "":
		return FailBatch, nil
	case FailBatch, PartialResults:
		return p, nil
	}
	return "", fmt.Errorf("reports: unknown failure policy %q", value)
}

// Fetch names used as keys in Batch.Errors. Series fetches use their SeriesKind.
const (
	FetchOverview      = "overview"
	FetchSubscriptions = "subscriptions"
	FetchTopContent    = "top_content"
)

// Batch holds the raw payloads of one page load.
type Batch struct {
	Request       Request
	Overview      metrics.OverviewSnapshot
	Series        map[SeriesKind][]metrics.TimeSeriesPoint
	Subscriptions metrics.SubscriptionStats
	TopContent    []metrics.ContentStat
	// Errors is only populated under PartialResults.
	Errors map[string]error
}

// Failed reports whether the named fetch failed.
func (b Batch) Failed(name string) bool {
	_, ok := b.Errors[name]
	return ok
}

// Loader issues every read a page needs concurrently and waits for all of them.
type Loader struct {
	source Source
	policy FailurePolicy
}

// NewLoader builds a loader. An empty policy selects FailBatch.
func NewLoader(source Source, policy FailurePolicy) *Loader {
	if policy == "" {
		policy = FailBatch
	}
	return &Loader{source: source, policy: policy}
}

// Policy returns the loader's failure policy.
func (l *Loader) Policy() FailurePolicy {
	return l.policy
}

type fetchFunc func(ctx context.Context, batch *Batch, mu *sync.Mutex) error

// Load fetches the page described by req. Under FailBatch the first failure is
// returned unchanged so the backend's message reaches the caller.
func (l *Loader) Load(ctx context.Context, req Request) (Batch, error) {
	if l == nil || l.source == nil {
		return Batch{}, errMissingSource
	}
	if _, err := ParsePage(string(req.Page)); err != nil {
		return Batch{}, err
	}
	if _, err := ParsePeriod(string(req.Period)); err != nil {
		return Batch{}, err
	}

	batch := Batch{
		Request: req,
		Series:  make(map[SeriesKind][]metrics.TimeSeriesPoint, len(SeriesKinds)),
	}
	plan := l.plan(req)
	var mu sync.Mutex

	if l.policy == PartialResults {
		var group errgroup.Group
		for name, fetch := range plan {
			group.Go(func() error {
				if err := fetch(ctx, &batch, &mu); err != nil {
					mu.Lock()
					if batch.Errors == nil {
						batch.Errors = make(map[string]error)
					}
					batch.Errors[name] = err
					mu.Unlock()
				}
				return nil
			})
		}
		_ = group.Wait()
		if err := ctx.Err(); err != nil {
			return Batch{}, err
		}
		return batch, nil
	}

	group, gctx := errgroup.WithContext(ctx)
	for _, fetch := range plan {
		group.Go(func() error {
			return fetch(gctx, &batch, &mu)
		})
	}
	if err := group.Wait(); err != nil {
		return Batch{}, err
	}
	return batch, nil
}

func (l *Loader) plan(req Request) map[string]fetchFunc {
	plan := map[string]fetchFunc{
		FetchOverview: func(ctx context.Context, b *Batch, mu *sync.Mutex) error {
			overview, err := l.source.FetchOverview(ctx, req.Locale)
			if err != nil {
				return err
			}
			mu.Lock()
			b.Overview = overview
			mu.Unlock()
			return nil
		},
		FetchSubscriptions: func(ctx context.Context, b *Batch, mu *sync.Mutex) error {
			stats, err := l.source.FetchSubscriptionStats(ctx, req.Locale)
			if err != nil {
				return err
			}
			mu.Lock()
			b.Subscriptions = stats
			mu.Unlock()
			return nil
		},
	}
	for _, kind := range SeriesKinds {
		plan[string(kind)] = func(ctx context.Context, b *Batch, mu *sync.Mutex) error {
			series, err := l.source.FetchSeries(ctx, SeriesQuery{Kind: kind, Period: req.Period, Locale: req.Locale})
			if err != nil {
				return err
			}
			mu.Lock()
			b.Series[kind] = series
			mu.Unlock()
			return nil
		}
	}
	if req.Page == PageReports {
		plan[FetchTopContent] = func(ctx context.Context, b *Batch, mu *sync.Mutex) error {
			items, err := l.source.FetchTopContent(ctx, ContentQuery{Period: req.Period, Limit: req.TopContentLimit, Locale: req.Locale})
			if err != nil {
				return err
			}
			mu.Lock()
			b.TopContent = items
			mu.Unlock()
			return nil
		}
	}
	return plan
}
