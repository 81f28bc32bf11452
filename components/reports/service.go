package reports

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-admin-metrics/pkg/logging"
)

const (
	defaultLocale          = "en"
	defaultTopContentLimit = 10
)

// Options configures the report Service. Collaborators are interfaces so
// hosts can swap the analytics backend, telemetry sink, or translator.
type Options struct {
	Source        Source
	FailurePolicy FailurePolicy
	Defaults      Request
	Currency      string
	Telemetry     Telemetry
	Logger        logrus.FieldLogger
	Translator    TranslationService
	Providers     map[string]Provider
	Now           func() time.Time
}

// Service loads report pages through a last-fetch-wins session.
type Service struct {
	opts    Options
	loader  *Loader
	session *Session
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.FailurePolicy == "" {
		opts.FailurePolicy = FailBatch
	}
	if opts.Defaults.Page == "" {
		opts.Defaults.Page = PageDashboard
	}
	if opts.Defaults.Period == "" {
		opts.Defaults.Period = PeriodMonth
	}
	if opts.Defaults.Locale == "" {
		opts.Defaults.Locale = defaultLocale
	}
	if opts.Defaults.TopContentLimit <= 0 {
		opts.Defaults.TopContentLimit = defaultTopContentLimit
	}
	if opts.Currency == "" {
		opts.Currency = defaultCurrency
	}
	if opts.Providers == nil {
		opts.Providers = DefaultProviders(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	opts.Logger = logging.OrDiscard(opts.Logger)

	svc := &Service{opts: opts, loader: NewLoader(opts.Source, opts.FailurePolicy)}
	svc.session = NewSession(svc.fetch)
	return svc
}

// Normalize fills empty request fields from the configured defaults and
// validates page and period.
func (s *Service) Normalize(req Request) (Request, error) {
	return req.normalized(s.opts.Defaults)
}

// Load fetches and builds a page. A newer Load for the same page makes this
// one return ErrSuperseded.
func (s *Service) Load(ctx context.Context, req Request) (Dashboard, error) {
	req, err := s.Normalize(req)
	if err != nil {
		return Dashboard{}, err
	}
	ctx, correlationID := logging.WithCorrelationID(ctx)
	logger := logging.FromContext(ctx, s.opts.Logger).WithFields(logrus.Fields{
		"page":   req.Page,
		"period": req.Period,
		"locale": req.Locale,
	})
	payload := map[string]any{
		"page":           string(req.Page),
		"period":         string(req.Period),
		"locale":         req.Locale,
		"policy":         string(s.loader.Policy()),
		"correlation_id": correlationID,
	}
	s.recordTelemetry(ctx, "reports.fetch.start", payload)

	start := time.Now()
	dash, err := s.session.Fetch(ctx, req)
	elapsed := time.Since(start)
	payload["duration_ms"] = elapsed.Milliseconds()

	switch {
	case errors.Is(err, ErrSuperseded):
		logger.Debug("report fetch superseded")
		s.recordTelemetry(ctx, "reports.fetch.superseded", payload)
		return Dashboard{}, err
	case err != nil:
		payload["error"] = err.Error()
		logger.WithError(err).Warn("report fetch failed")
		s.recordTelemetry(ctx, "reports.fetch.error", payload)
		return Dashboard{}, err
	}

	payload["generation"] = dash.Generation
	payload["failures"] = len(dash.Errors)
	logger.WithField("duration", elapsed).WithField("generation", dash.Generation).Info("report loaded")
	s.recordTelemetry(ctx, "reports.fetch.success", payload)
	return dash, nil
}

// Current returns the last published dashboard for page.
func (s *Service) Current(page Page) (Dashboard, bool) {
	return s.session.Current(page)
}

// Generation returns how many fetches have started for page.
func (s *Service) Generation(page Page) uint64 {
	return s.session.Generation(page)
}

// Discard drops page state when the viewer navigates away.
func (s *Service) Discard(page Page) {
	s.session.Discard(page)
}

// Widgets renders the configured widget providers for dash.
func (s *Service) Widgets(ctx context.Context, dash Dashboard) (map[string]WidgetData, error) {
	return RenderWidgets(ctx, s.opts.Providers, WidgetContext{
		Dashboard:  dash,
		Locale:     dash.Locale,
		Translator: s.opts.Translator,
	})
}

// Translator returns the configured translation service, which may be nil.
func (s *Service) Translator() TranslationService {
	return s.opts.Translator
}

// Defaults returns the request defaults after normalization.
func (s *Service) Defaults() Request {
	return s.opts.Defaults
}

func (s *Service) fetch(ctx context.Context, req Request) (Dashboard, error) {
	batch, err := s.loader.Load(ctx, req)
	if err != nil {
		return Dashboard{}, err
	}
	return Build(batch, BuildOptions{
		Currency:       s.opts.Currency,
		Locale:         req.Locale,
		FractionDigits: FractionDigitsFor(req.Page),
		Now:            s.opts.Now,
	}), nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	snapshot := make(map[string]any, len(payload))
	for k, v := range payload {
		snapshot[k] = v
	}
	s.opts.Telemetry.Record(ctx, event, snapshot)
}
