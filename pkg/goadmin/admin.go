package goadmin

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/goliatone/go-admin-metrics/components/reports"
)

// MenuBuilder ensures report entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures report link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the report service and feature flag into an admin shell.
type Config struct {
	EnableReports bool
	MenuCode      string
	MenuBuilder   MenuBuilder
	Service       *reports.Service
	// BasePath prefixes the page routes, matching the HTTP mount point.
	BasePath string
	// Locale picks menu labels; empty uses the service default.
	Locale string
	// Icons per page, keyed by page name.
	Icons map[reports.Page]string
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed report menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableReports && cfg.Service == nil {
		return nil, errors.New("goadmin: report service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/admin"
	}
	if cfg.Icons == nil {
		cfg.Icons = map[reports.Page]string{
			reports.PageDashboard: "home",
			reports.PageReports:   "chart-bar",
		}
	}
	return &Admin{cfg: cfg}, nil
}

// Reports exposes the configured report service when enabled.
func (a *Admin) Reports() *reports.Service {
	if !a.cfg.EnableReports {
		return nil
	}
	return a.cfg.Service
}

// MenuItems returns the navigation entries for every report page.
func (a *Admin) MenuItems(ctx context.Context) []MenuItem {
	locale := a.cfg.Locale
	if locale == "" && a.cfg.Service != nil {
		locale = a.cfg.Service.Defaults().Locale
	}
	var translator reports.TranslationService
	if a.cfg.Service != nil {
		translator = a.cfg.Service.Translator()
	}
	items := make([]MenuItem, 0, len(reports.Pages))
	for idx, page := range reports.Pages {
		items = append(items, MenuItem{
			Label:    reports.Label(ctx, translator, "reports.menu."+string(page), locale),
			Route:    path.Join(a.cfg.BasePath, "reports", string(page)),
			Icon:     a.cfg.Icons[page],
			Position: idx,
		})
	}
	return items
}

// Bootstrap seeds menu entries when reports are enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableReports || a.cfg.MenuBuilder == nil {
		return nil
	}
	var errs error
	for _, item := range a.MenuItems(ctx) {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			errs = errors.Join(errs, fmt.Errorf("goadmin: menu item %s: %w", item.Route, err))
		}
	}
	return errs
}
