package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-metrics/components/reports"
	"github.com/goliatone/go-admin-metrics/components/reports/commands"
	"github.com/goliatone/go-admin-metrics/components/reports/export"
	"github.com/goliatone/go-admin-metrics/components/reports/queries"
)

// Handlers exposes report endpoints backed by shared queries and commands.
// They are transport neutral; Mount wires them onto net/http and the
// gorouter package wires them onto go-router.
type Handlers struct {
	Dashboard gocommand.Querier[queries.DashboardInput, reports.Dashboard]
	Export    gocommand.Querier[queries.ExportInput, export.Artifact]
	Refresh   gocommand.Commander[commands.RefreshInput]
}

// PageParams are the request values the endpoints read.
type PageParams struct {
	Page           string
	Format         string
	Period         string
	Locale         string
	AcceptLanguage string
	Limit          string
	Current        string
}

// Response is what a transport writes back.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
	Payload any
}

// Request converts params into a report request. An explicit locale wins over
// Accept-Language.
func (p PageParams) Request() reports.Request {
	req := reports.Request{
		Page:   reports.Page(strings.TrimSpace(p.Page)),
		Period: reports.Period(strings.TrimSpace(p.Period)),
		Locale: strings.TrimSpace(p.Locale),
	}
	if req.Locale == "" {
		req.Locale = ParseAcceptLanguage(p.AcceptLanguage)
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(p.Limit)); err == nil && limit > 0 {
		req.TopContentLimit = limit
	}
	return req
}

func (p PageParams) useCurrent() bool {
	current, _ := strconv.ParseBool(p.Current)
	return current
}

// ServeDashboard returns the dashboard JSON for a page.
func (h *Handlers) ServeDashboard(ctx context.Context, params PageParams) Response {
	if h.Dashboard == nil {
		return ErrorResponse(errors.New("dashboard query not configured"))
	}
	dash, err := h.Dashboard.Query(ctx, queries.DashboardInput{Request: params.Request(), UseCurrent: params.useCurrent()})
	if err != nil {
		return ErrorResponse(err)
	}
	return Response{Status: http.StatusOK, Payload: dash}
}

// ServeExport returns the encoded artifact with download headers.
func (h *Handlers) ServeExport(ctx context.Context, params PageParams) Response {
	if h.Export == nil {
		return ErrorResponse(errors.New("export query not configured"))
	}
	artifact, err := h.Export.Query(ctx, queries.ExportInput{
		Request:    params.Request(),
		Format:     export.Format(params.Format),
		UseCurrent: params.useCurrent(),
	})
	if err != nil {
		return ErrorResponse(err)
	}
	return Response{
		Status: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":        artifact.ContentType,
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", artifact.Filename),
		},
		Body: artifact.Data,
	}
}

// ServeRefresh starts a new fetch generation for a page.
func (h *Handlers) ServeRefresh(ctx context.Context, params PageParams) Response {
	if h.Refresh == nil {
		return ErrorResponse(errors.New("refresh command not configured"))
	}
	if err := h.Refresh.Execute(ctx, commands.RefreshInput{Request: params.Request()}); err != nil {
		return ErrorResponse(err)
	}
	return Response{Status: http.StatusAccepted, Payload: map[string]string{"status": "refreshed"}}
}

// ErrorResponse renders err as {"error": message} with the mapped status.
// The message is passed through unchanged.
func ErrorResponse(err error) Response {
	return Response{Status: StatusFor(err), Payload: map[string]string{"error": err.Error()}}
}

// StatusFor maps report errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, reports.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, reports.ErrInvalidPeriod),
		errors.Is(err, reports.ErrUnknownPage),
		errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, reports.ErrNoData):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ParseAcceptLanguage returns the first language tag of an Accept-Language header.
func ParseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" && token != "*" {
			return token
		}
	}
	return ""
}

// Mount registers the endpoints on a net/http mux under base.
func (h *Handlers) Mount(mux *http.ServeMux, base string) {
	base = strings.TrimRight(base, "/")
	mux.HandleFunc("GET "+base+"/reports/{page}", func(w http.ResponseWriter, r *http.Request) {
		WriteHTTP(w, h.ServeDashboard(r.Context(), paramsFromRequest(r)))
	})
	mux.HandleFunc("GET "+base+"/reports/{page}/export/{format}", func(w http.ResponseWriter, r *http.Request) {
		WriteHTTP(w, h.ServeExport(r.Context(), paramsFromRequest(r)))
	})
	mux.HandleFunc("POST "+base+"/reports/{page}/refresh", func(w http.ResponseWriter, r *http.Request) {
		WriteHTTP(w, h.ServeRefresh(r.Context(), paramsFromRequest(r)))
	})
}

func paramsFromRequest(r *http.Request) PageParams {
	q := r.URL.Query()
	return PageParams{
		Page:           r.PathValue("page"),
		Format:         r.PathValue("format"),
		Period:         q.Get("period"),
		Locale:         q.Get("locale"),
		Limit:          q.Get("limit"),
		Current:        q.Get("current"),
		AcceptLanguage: r.Header.Get("Accept-Language"),
	}
}

// WriteHTTP writes resp to w.
func WriteHTTP(w http.ResponseWriter, resp Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	if resp.Payload != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		_ = json.NewEncoder(w).Encode(resp.Payload)
		return
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
