package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/goliatone/go-admin-metrics/components/metrics"
	"github.com/goliatone/go-admin-metrics/components/reports"
)

const defaultTimeout = 10 * time.Second

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// HTTPClient talks to the analytics REST backend.
type HTTPClient struct {
	rest    *resty.Client
	schemas *schemaSet
}

// NewHTTPClient builds a client for the live analytics API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	var rest *resty.Client
	if cfg.HTTPClient != nil {
		rest = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rest = resty.New()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rest.SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		rest.SetAuthToken(cfg.APIKey)
	}
	return &HTTPClient{rest: rest, schemas: newSchemaSet()}, nil
}

// envelope is the wrapper every analytics endpoint responds with.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

var seriesEndpoints = map[reports.SeriesKind]string{
	reports.SeriesUsers:       "/analytics/user-growth",
	reports.SeriesRevenue:     "/analytics/revenue",
	reports.SeriesViews:       "/analytics/views",
	reports.SeriesActiveUsers: "/analytics/active-users",
}

// FetchOverview loads the headline counters.
func (c *HTTPClient) FetchOverview(ctx context.Context, locale string) (metrics.OverviewSnapshot, error) {
	var out metrics.OverviewSnapshot
	data, err := c.get(ctx, "/analytics/overview", locale, nil)
	if err != nil {
		return out, err
	}
	if err := c.decode(schemaOverview, data, &out); err != nil {
		return metrics.OverviewSnapshot{}, err
	}
	return out, nil
}

// FetchSeries loads one time series for the requested period.
func (c *HTTPClient) FetchSeries(ctx context.Context, query reports.SeriesQuery) ([]metrics.TimeSeriesPoint, error) {
	endpoint, ok := seriesEndpoints[query.Kind]
	if !ok {
		return nil, fmt.Errorf("analytics: unknown series %q", query.Kind)
	}
	period, err := reports.ParsePeriod(string(query.Period))
	if err != nil {
		return nil, err
	}
	data, err := c.get(ctx, endpoint, query.Locale, map[string]string{"period": string(period)})
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := c.decode(schemaSeries, data, &rows); err != nil {
		return nil, err
	}
	return decodeSeries(query.Kind, rows), nil
}

// FetchSubscriptionStats loads the subscription breakdown and counts.
func (c *HTTPClient) FetchSubscriptionStats(ctx context.Context, locale string) (metrics.SubscriptionStats, error) {
	var out metrics.SubscriptionStats
	data, err := c.get(ctx, "/analytics/subscriptions", locale, nil)
	if err != nil {
		return out, err
	}
	if err := c.decode(schemaSubscriptions, data, &out); err != nil {
		return metrics.SubscriptionStats{}, err
	}
	return out, nil
}

// FetchTopContent loads the most viewed content for a period.
func (c *HTTPClient) FetchTopContent(ctx context.Context, query reports.ContentQuery) ([]metrics.ContentStat, error) {
	period, err := reports.ParsePeriod(string(query.Period))
	if err != nil {
		return nil, err
	}
	params := map[string]string{"period": string(period)}
	if query.Limit > 0 {
		params["limit"] = strconv.Itoa(query.Limit)
	}
	data, err := c.get(ctx, "/analytics/top-content", query.Locale, params)
	if err != nil {
		return nil, err
	}
	var rows []contentRow
	if err := c.decode(schemaTopContent, data, &rows); err != nil {
		return nil, err
	}
	out := make([]metrics.ContentStat, len(rows))
	for i, row := range rows {
		out[i] = row.toStat()
	}
	return out, nil
}

func (c *HTTPClient) get(ctx context.Context, path, locale string, params map[string]string) (json.RawMessage, error) {
	req := c.rest.R().SetContext(ctx)
	if locale != "" {
		req.SetHeader("Accept-Language", locale).SetQueryParam("lang", locale)
	}
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, &RequestError{Kind: KindTransport, Endpoint: path, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)
	if resp.StatusCode() >= 300 {
		return nil, &RequestError{
			Kind:     KindBackend,
			Endpoint: path,
			Status:   resp.StatusCode(),
			Message:  env.Message,
		}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, path, decodeErr)
	}
	if !env.Success {
		return nil, &RequestError{Kind: KindBackend, Endpoint: path, Status: resp.StatusCode(), Message: env.Message}
	}
	return env.Data, nil
}

// decode validates the data section and unmarshals it. A null section leaves
// target at its zero value.
func (c *HTTPClient) decode(schema string, data json.RawMessage, target any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := c.schemas.validate(schema, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPayload, schema, err)
	}
	return nil
}

type contentRow struct {
	ID             any            `json:"id"`
	Title          string         `json:"title"`
	Views          metrics.Number `json:"views"`
	Rating         metrics.Number `json:"rating"`
	CompletionRate metrics.Number `json:"completion_rate"`
}

func (r contentRow) toStat() metrics.ContentStat {
	id := ""
	switch v := r.ID.(type) {
	case string:
		id = v
	case float64:
		id = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return metrics.ContentStat{
		ID:             id,
		Title:          r.Title,
		Views:          r.Views,
		Rating:         r.Rating,
		CompletionRate: r.CompletionRate,
	}
}

var labelKeys = []string{"period", "label", "month", "week", "quarter", "year", "date"}

// decodeSeries maps loosely shaped rows onto points. The value is read from
// the field named after the series, then "value", then "count".
func decodeSeries(kind reports.SeriesKind, rows []map[string]any) []metrics.TimeSeriesPoint {
	out := make([]metrics.TimeSeriesPoint, 0, len(rows))
	for _, row := range rows {
		point := metrics.TimeSeriesPoint{PeriodLabel: seriesLabel(row)}
		for _, key := range []string{string(kind), "value", "count"} {
			if raw, ok := row[key]; ok {
				point.Value, _ = metrics.Coerce(raw)
				break
			}
		}
		out = append(out, point)
	}
	return out
}

func seriesLabel(row map[string]any) string {
	for _, key := range labelKeys {
		switch v := row[key].(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
