package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-metrics/components/reports"
	"github.com/goliatone/go-admin-metrics/components/reports/export"
)

// ExportInput selects a page and the encoding to export it in.
type ExportInput struct {
	Request    reports.Request
	Format     export.Format
	UseCurrent bool
}

type exporter interface {
	Export(ctx context.Context, dash reports.Dashboard, format export.Format) (export.Artifact, error)
}

// ExportQuery loads a page and encodes it.
type ExportQuery struct {
	service  reportService
	exporter exporter
}

// NewExportQuery builds the query.
func NewExportQuery(service reportService, exporter exporter) *ExportQuery {
	return &ExportQuery{service: service, exporter: exporter}
}

var _ gocommand.Querier[ExportInput, export.Artifact] = (*ExportQuery)(nil)

// Query validates the format before loading so bad requests cost no backend calls.
func (q *ExportQuery) Query(ctx context.Context, input ExportInput) (export.Artifact, error) {
	if q.exporter == nil {
		return export.Artifact{}, errors.New("export query requires exporter")
	}
	format, err := export.ParseFormat(string(input.Format))
	if err != nil {
		return export.Artifact{}, err
	}
	dash, err := load(ctx, q.service, input.Request, input.UseCurrent)
	if err != nil {
		return export.Artifact{}, err
	}
	return q.exporter.Export(ctx, dash, format)
}
