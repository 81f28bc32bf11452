package analytics

import "github.com/goliatone/go-admin-metrics/components/reports"

// Client is a convenience union for adapters that serve every analytics endpoint.
type Client interface {
	reports.Source
}

var (
	_ Client = (*HTTPClient)(nil)
	_ Client = (*MockClient)(nil)
	_ Client = (*instrumentedSource)(nil)
)
