package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-metrics/components/reports"
)

// DashboardInput selects the page to load. With UseCurrent the last published
// result is returned when it matches the request.
type DashboardInput struct {
	Request    reports.Request
	UseCurrent bool
}

type reportService interface {
	Normalize(req reports.Request) (reports.Request, error)
	Load(ctx context.Context, req reports.Request) (reports.Dashboard, error)
	Current(page reports.Page) (reports.Dashboard, bool)
}

// DashboardQuery loads a report page.
type DashboardQuery struct {
	service reportService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service reportService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[DashboardInput, reports.Dashboard] = (*DashboardQuery)(nil)

// Query returns the dashboard for the requested page.
func (q *DashboardQuery) Query(ctx context.Context, input DashboardInput) (reports.Dashboard, error) {
	return load(ctx, q.service, input.Request, input.UseCurrent)
}

func load(ctx context.Context, service reportService, req reports.Request, useCurrent bool) (reports.Dashboard, error) {
	if useCurrent {
		normalized, err := service.Normalize(req)
		if err != nil {
			return reports.Dashboard{}, err
		}
		if current, ok := service.Current(normalized.Page); ok && matches(current, normalized) {
			return current, nil
		}
	}
	return service.Load(ctx, req)
}

// matches reports whether dash was built for the same parameters as req. The
// row limit only shapes the reports page.
func matches(dash reports.Dashboard, req reports.Request) bool {
	if dash.Period != req.Period || dash.Locale != req.Locale {
		return false
	}
	if req.Page == reports.PageReports && dash.Limit != req.TopContentLimit {
		return false
	}
	return true
}
