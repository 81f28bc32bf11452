package goadmin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admin-metrics/components/reports"
	"github.com/goliatone/go-admin-metrics/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	menus []string
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, menuCode string, item goadmin.MenuItem) error {
	s.menus = append(s.menus, menuCode)
	s.items = append(s.items, item)
	return s.err
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service := reports.NewService(reports.Options{})
	admin, err := goadmin.New(goadmin.Config{
		EnableReports: true,
		Service:       service,
		MenuBuilder:   builder,
	})
	require.NoError(t, err)
	require.NoError(t, admin.Bootstrap(context.Background()))

	require.Len(t, builder.items, 2)
	assert.Equal(t, []string{"admin.main", "admin.main"}, builder.menus)
	assert.Equal(t, goadmin.MenuItem{Label: "Dashboard", Route: "/admin/reports/dashboard", Icon: "home", Position: 0}, builder.items[0])
	assert.Equal(t, goadmin.MenuItem{Label: "Reports", Route: "/admin/reports/reports", Icon: "chart-bar", Position: 1}, builder.items[1])
	assert.Same(t, service, admin.Reports())
}

func TestAdminMenuUsesTranslator(t *testing.T) {
	service := reports.NewService(reports.Options{
		Translator: reports.MapTranslator{"es": {"reports.menu.reports": "Informes"}},
		Defaults:   reports.Request{Locale: "es-MX"},
	})
	admin, err := goadmin.New(goadmin.Config{EnableReports: true, Service: service, BasePath: "/console"})
	require.NoError(t, err)

	items := admin.MenuItems(context.Background())
	assert.Equal(t, "Dashboard", items[0].Label)
	assert.Equal(t, "Informes", items[1].Label)
	assert.Equal(t, "/console/reports/reports", items[1].Route)
}

func TestAdminBootstrapJoinsErrors(t *testing.T) {
	builder := &stubMenuBuilder{err: errors.New("menu store down")}
	admin, err := goadmin.New(goadmin.Config{
		EnableReports: true,
		Service:       reports.NewService(reports.Options{}),
		MenuBuilder:   builder,
	})
	require.NoError(t, err)

	err = admin.Bootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/admin/reports/dashboard")
	assert.Contains(t, err.Error(), "/admin/reports/reports")
}

func TestAdminRequiresServiceWhenEnabled(t *testing.T) {
	_, err := goadmin.New(goadmin.Config{EnableReports: true})
	assert.Error(t, err)
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{MenuBuilder: builder})
	require.NoError(t, err)
	require.NoError(t, admin.Bootstrap(context.Background()))
	assert.Empty(t, builder.items)
	assert.Nil(t, admin.Reports())
}
