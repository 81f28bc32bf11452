package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-metrics/components/reports"
)

// RefreshInput re-fetches a page, for example after a period or locale change.
type RefreshInput struct {
	Request reports.Request
}

type pageLoader interface {
	Load(ctx context.Context, req reports.Request) (reports.Dashboard, error)
}

// RefreshCommand starts a new fetch generation for a page.
type RefreshCommand struct {
	service   pageLoader
	telemetry Telemetry
}

// NewRefreshCommand creates the command.
func NewRefreshCommand(service pageLoader, telemetry Telemetry) *RefreshCommand {
	return &RefreshCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshInput] = (*RefreshCommand)(nil)

// Execute reloads the page. A refresh overtaken by a newer one is not an error.
func (c *RefreshCommand) Execute(ctx context.Context, msg RefreshInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	payload := map[string]any{
		"page":   string(msg.Request.Page),
		"period": string(msg.Request.Period),
		"locale": msg.Request.Locale,
	}
	dash, err := c.service.Load(ctx, msg.Request)
	switch {
	case errors.Is(err, reports.ErrSuperseded):
		payload["outcome"] = "superseded"
		c.telemetry.Record(ctx, "reports.page.refresh", payload)
		return nil
	case err != nil:
		return err
	}
	payload["outcome"] = "published"
	payload["page"] = string(dash.Page)
	payload["generation"] = dash.Generation
	c.telemetry.Record(ctx, "reports.page.refresh", payload)
	return nil
}
