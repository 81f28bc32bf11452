package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-admin-metrics/components/reports"
	"github.com/goliatone/go-admin-metrics/components/reports/export"
	"github.com/goliatone/go-admin-metrics/components/reports/gorouter"
	"github.com/goliatone/go-admin-metrics/components/reports/queries"
	"github.com/goliatone/go-admin-metrics/pkg/app"
	"github.com/goliatone/go-admin-metrics/pkg/config"
)

type Globals struct {
	Config   string `short:"c" type:"path" help:"YAML config file (defaults to METRICS_CONFIG_FILE or ./metrics.yaml)."`
	Mock     bool   `help:"Serve built-in demo data instead of calling the analytics backend."`
	LogLevel string `name:"log-level" help:"Override log.level (trace, debug, info, warn, error)."`
}

type cli struct {
	Globals

	Report reportCmd `cmd:"" help:"Load a report page and print it."`
	Export exportCmd `cmd:"" help:"Load a report page and write an export file."`
	Serve  serveCmd  `cmd:"" help:"Serve the report endpoints over HTTP."`
}

type PageFlags struct {
	Page   string `default:"dashboard" enum:"dashboard,reports" help:"Report page (dashboard, reports)."`
	Period string `help:"Aggregation period (week, month, quarter, year)."`
	Locale string `help:"Locale used for labels and number formatting."`
	Limit  int    `help:"Top content rows on the reports page."`
}

func (f PageFlags) request() reports.Request {
	return reports.Request{
		Page:            reports.Page(f.Page),
		Period:          reports.Period(f.Period),
		Locale:          f.Locale,
		TopContentLimit: f.Limit,
	}
}

type reportCmd struct {
	PageFlags
	Format string `short:"f" default:"json" enum:"json,yaml,csv,html" help:"Output format."`
}

type exportCmd struct {
	PageFlags
	Format string `arg:"" enum:"json,yaml,yml,csv,html" help:"Export format."`
	Out    string `short:"o" type:"path" default:"." help:"Directory the export is written to."`
}

type serveCmd struct {
	Addr string `help:"Override server.addr."`
}

func main() {
	var root cli
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := kong.Parse(&root,
		kong.Name("metricsctl"),
		kong.Description("Admin metrics and reporting for the analytics backend."),
		kong.UsageOnError(),
		kong.Bind(&root.Globals),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	parser.FatalIfErrorf(parser.Run())
}

func (g *Globals) load() (*app.App, error) {
	overrides := map[string]any{}
	if g.Mock {
		overrides["analytics.mock"] = true
	}
	if g.LogLevel != "" {
		overrides["log.level"] = g.LogLevel
	}
	cfg, err := config.Load(config.LoadOptions{File: g.Config, Overrides: overrides})
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.Options{})
}

func (cmd *reportCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	return writeExport(ctx, a, cmd.request(), cmd.Format, func(artifact export.Artifact) error {
		_, err := os.Stdout.Write(artifact.Data)
		return err
	})
}

func (cmd *exportCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	return writeExport(ctx, a, cmd.request(), cmd.Format, func(artifact export.Artifact) error {
		if err := os.MkdirAll(cmd.Out, 0o755); err != nil {
			return fmt.Errorf("metricsctl: mkdir %s: %w", cmd.Out, err)
		}
		path := filepath.Join(cmd.Out, artifact.Filename)
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("metricsctl: write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stdout, "✓ Wrote %s (%d bytes)\n", path, len(artifact.Data))
		return nil
	})
}

func writeExport(ctx context.Context, a *app.App, req reports.Request, format string, deliver func(export.Artifact) error) error {
	parsed, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	artifact, err := a.Handlers.Export.Query(ctx, queries.ExportInput{Request: req, Format: parsed})
	if err != nil {
		return fmt.Errorf("metricsctl: %w", err)
	}
	return deliver(artifact)
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.load()
	if err != nil {
		return err
	}
	addr := a.Config.Server.Addr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:   server.Router(),
		API:      a.Handlers,
		BasePath: a.Config.Server.BasePath,
	}); err != nil {
		return fmt.Errorf("metricsctl: register routes: %w", err)
	}

	var metricsServer *http.Server
	if a.Config.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle(a.Config.Metrics.Path, a.Metrics.Handler())
		metricsServer = &http.Server{Addr: a.Config.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a.Logger.WithField("addr", addr).WithField("base_path", a.Config.Server.BasePath).Info("report routes ready")
		return server.Serve(addr)
	})
	if metricsServer != nil {
		group.Go(func() error {
			a.Logger.WithField("addr", metricsServer.Addr).Info("metrics endpoint ready")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var errs error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = errors.Join(errs, err)
		}
		if metricsServer != nil {
			errs = errors.Join(errs, metricsServer.Shutdown(shutdownCtx))
		}
		a.Logger.Info("server stopped")
		return errs
	})
	return group.Wait()
}
