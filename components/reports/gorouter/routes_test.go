package gorouter

import (
	"testing"

	router "github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admin-metrics/components/reports"
	"github.com/goliatone/go-admin-metrics/components/reports/httpapi"
)

type mockRouter struct {
	routes map[string]router.HandlerFunc
}

func newMockRouter() *mockRouter {
	return &mockRouter{routes: map[string]router.HandlerFunc{}}
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, _ ...router.MiddlewareFunc) router.RouteInfo {
	m.routes["GET:"+path] = handler
	return nil
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, _ ...router.MiddlewareFunc) router.RouteInfo {
	m.routes["POST:"+path] = handler
	return nil
}

func TestRegisterValidatesConfig(t *testing.T) {
	assert.Error(t, Register(Config[struct{}]{}))
}

func TestMountRegistersDefaultRoutes(t *testing.T) {
	mock := newMockRouter()
	mount(mock, &httpapi.Handlers{}, defaultRouteConfig(RouteConfig{}))

	require.Len(t, mock.routes, 3)
	assert.Contains(t, mock.routes, "GET:/reports/:page")
	assert.Contains(t, mock.routes, "GET:/reports/:page/export/:format")
	assert.Contains(t, mock.routes, "POST:/reports/:page/refresh")
}

func TestMountHonoursCustomRoutes(t *testing.T) {
	mock := newMockRouter()
	mount(mock, &httpapi.Handlers{}, defaultRouteConfig(RouteConfig{Dashboard: "/analytics/:page"}))

	assert.Contains(t, mock.routes, "GET:/analytics/:page")
	assert.Contains(t, mock.routes, "GET:/reports/:page/export/:format")
}

func TestParamsFrom(t *testing.T) {
	params := map[string]string{"page": "reports", "format": "yaml"}
	query := map[string]string{"period": "quarter", "limit": "3"}
	headers := map[string]string{"Accept-Language": "es-MX,es;q=0.8"}

	got := paramsFrom(
		func(k string) string { return params[k] },
		func(k string) string { return query[k] },
		func(k string) string { return headers[k] },
	)

	assert.Equal(t, "yaml", got.Format)
	assert.Equal(t, reports.Request{
		Page:            reports.PageReports,
		Period:          reports.PeriodQuarter,
		Locale:          "es-MX",
		TopContentLimit: 3,
	}, got.Request())
}
