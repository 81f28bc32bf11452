package gorouter

import (
	"errors"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-admin-metrics/components/reports/httpapi"
)

// Config wires go-router with the report endpoints.
type Config[T any] struct {
	Router   router.Router[T]
	API      *httpapi.Handlers
	BasePath string
	Routes   RouteConfig
}

// RouteConfig customizes the relative paths of the report endpoints.
type RouteConfig struct {
	Dashboard string
	Export    string
	Refresh   string
}

// routeRegistrar is the subset of router.Router the endpoints are mounted on.
type routeRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// Register mounts the report endpoints on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api handlers are required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	mount(cfg.Router.Group(strings.TrimRight(base, "/")), cfg.API, defaultRouteConfig(cfg.Routes))
	return nil
}

func mount(r routeRegistrar, api *httpapi.Handlers, routes RouteConfig) {
	r.Get(routes.Dashboard, router.WrapHandler(func(ctx router.Context) error {
		return write(ctx, api.ServeDashboard(ctx.Context(), requestParams(ctx)))
	}))

	r.Get(routes.Export, router.WrapHandler(func(ctx router.Context) error {
		return write(ctx, api.ServeExport(ctx.Context(), requestParams(ctx)))
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		return write(ctx, api.ServeRefresh(ctx.Context(), requestParams(ctx)))
	}))
}

func requestParams(ctx router.Context) httpapi.PageParams {
	return paramsFrom(
		func(name string) string { return ctx.Param(name) },
		func(name string) string { return ctx.Query(name) },
		func(name string) string { return ctx.Header(name) },
	)
}

type lookup func(name string) string

func paramsFrom(param, query, header lookup) httpapi.PageParams {
	return httpapi.PageParams{
		Page:           param("page"),
		Format:         param("format"),
		Period:         query("period"),
		Locale:         query("locale"),
		Limit:          query("limit"),
		Current:        query("current"),
		AcceptLanguage: header("Accept-Language"),
	}
}

// write sends JSON payloads with their status. Raw bodies only ever carry a
// successful export.
func write(ctx router.Context, resp httpapi.Response) error {
	for k, v := range resp.Headers {
		ctx.SetHeader(k, v)
	}
	if resp.Payload != nil {
		return ctx.JSON(resp.Status, resp.Payload)
	}
	return ctx.Send(resp.Body)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Dashboard == "" {
		routes.Dashboard = "/reports/:page"
	}
	if routes.Export == "" {
		routes.Export = "/reports/:page/export/:format"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/reports/:page/refresh"
	}
	return routes
}
