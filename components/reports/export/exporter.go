package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-admin-metrics/components/metrics"
	"github.com/goliatone/go-admin-metrics/components/reports"
)

const reportTemplate = "report"

// Renderer describes the template renderer contract used for HTML exports.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// WidgetSource renders widget payloads for a dashboard. *reports.Service
// satisfies it.
type WidgetSource interface {
	Widgets(ctx context.Context, dash reports.Dashboard) (map[string]reports.WidgetData, error)
}

// Options configures an Exporter.
type Options struct {
	Renderer   Renderer
	Widgets    WidgetSource
	Translator reports.TranslationService
}

// Exporter encodes dashboards into downloadable artifacts.
type Exporter struct {
	opts Options
}

// New builds an Exporter. HTML exports fail until a Renderer is configured.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export encodes dash in format. Delivery is left to the caller.
func (e *Exporter) Export(ctx context.Context, dash reports.Dashboard, format Format) (Artifact, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = e.csv(ctx, dash)
	case FormatJSON:
		data, err = json.MarshalIndent(dash, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(dash)
	case FormatHTML:
		data, err = e.html(ctx, dash)
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("export: %s: %w", format, err)
	}
	return Artifact{
		Data:        data,
		ContentType: format.ContentType(),
		Filename:    Filename(dash, format),
	}, nil
}

// Filename returns "<page>-<period>-<yyyymmdd>.<format>".
func Filename(dash reports.Dashboard, format Format) string {
	page := dash.Page
	if page == "" {
		page = reports.PageDashboard
	}
	name := string(page)
	if dash.Period != "" {
		name += "-" + string(dash.Period)
	}
	if !dash.GeneratedAt.IsZero() {
		name += "-" + dash.GeneratedAt.Format("20060102")
	}
	return name + "." + string(format)
}

var csvColumns = []string{"section", "metric", "value", "change"}

func (e *Exporter) csv(ctx context.Context, dash reports.Dashboard) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(csvColumns))
	for i, col := range csvColumns {
		header[i] = strcase.ToCase(reports.Label(ctx, e.opts.Translator, "reports.column."+col, dash.Locale), strcase.TitleCase, ' ')
	}
	rows := [][]string{header}

	ov := dash.Overview
	rows = append(rows,
		[]string{"overview", "total_users", number(ov.TotalUsers), number(ov.UserGrowth.Value)},
		[]string{"overview", "active_subscriptions", number(ov.ActiveSubscriptions), number(ov.ActiveUsersGrowth.Value)},
		[]string{"overview", "total_revenue", number(ov.TotalRevenue), number(ov.RevenueGrowth.Value)},
		[]string{"overview", "total_views", number(ov.TotalViews), number(ov.ViewsGrowth.Value)},
		[]string{"overview", "total_videos", number(ov.TotalVideos), ""},
		[]string{"overview", "total_categories", number(ov.TotalCategories), ""},
		[]string{"overview", "conversion_rate", number(ov.ConversionRate.Value), ""},
		[]string{"overview", "churn_rate", number(ov.ChurnRate.Value), ""},
	)
	for _, series := range dash.Series {
		section := "series." + string(series.Kind)
		for _, point := range series.Points {
			rows = append(rows, []string{section, point.PeriodLabel, number(point.Value), ""})
		}
		rows = append(rows, []string{section, "growth", number(series.Growth.Value), ""})
	}
	for _, share := range dash.Subscriptions.Distribution {
		rows = append(rows, []string{"subscriptions", string(share.Tier), number(share.Count), number(share.Percentage)})
	}
	rows = append(rows,
		[]string{"subscriptions", "total", number(dash.Subscriptions.Total), ""},
		[]string{"subscriptions", "active", number(dash.Subscriptions.Active), ""},
		[]string{"subscriptions", "expired", number(dash.Subscriptions.Expired), ""},
	)
	if dash.TopContent != nil {
		for _, item := range dash.TopContent.Items {
			rows = append(rows, []string{"top_content", item.Title, number(item.Views.Float()), number(item.Rating.Float())})
		}
		rows = append(rows, []string{"top_content", "average_rating", number(dash.TopContent.AverageRating), ""})
	}
	for _, name := range sortedKeys(dash.Errors) {
		rows = append(rows, []string{"errors", name, dash.Errors[name], ""})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) html(ctx context.Context, dash reports.Dashboard) ([]byte, error) {
	if e.opts.Renderer == nil {
		return nil, fmt.Errorf("renderer not configured")
	}
	widgets, err := e.widgets(ctx, dash)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, 4)
	for _, key := range []string{"title", "views", "rating", "completion_rate"} {
		columns = append(columns, reports.Label(ctx, e.opts.Translator, "reports.column."+key, dash.Locale))
	}
	var content []map[string]any
	if dash.TopContent != nil {
		for _, item := range dash.TopContent.Items {
			content = append(content, map[string]any{
				"title":           item.Title,
				"views":           metrics.FormatCount(item.Views.Float(), dash.Locale),
				"rating":          metrics.Round(item.Rating.Float(), 1),
				"completion_rate": metrics.FormatPercent(item.CompletionRate.Float(), dash.Locale),
			})
		}
	}

	var buf bytes.Buffer
	_, err = e.opts.Renderer.Render(reportTemplate, map[string]any{
		"title":        strcase.ToCase(string(dash.Page), strcase.TitleCase, ' '),
		"dashboard":    dash,
		"generated_at": dash.GeneratedAt.Format("2006-01-02 15:04 MST"),
		"widgets":      widgets,
		"columns":      columns,
		"top_content":  content,
		"errors":       dash.Errors,
	}, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) widgets(ctx context.Context, dash reports.Dashboard) (map[string]reports.WidgetData, error) {
	if e.opts.Widgets != nil {
		return e.opts.Widgets.Widgets(ctx, dash)
	}
	return reports.RenderWidgets(ctx, reports.DefaultProviders(nil), reports.WidgetContext{
		Dashboard:  dash,
		Locale:     dash.Locale,
		Translator: e.opts.Translator,
	})
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
