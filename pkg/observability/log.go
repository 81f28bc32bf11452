package observability

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-admin-metrics/pkg/logging"
)

type logRecorder struct {
	logger logrus.FieldLogger
}

// LogRecorder writes each event at debug level with its payload as fields.
func LogRecorder(logger logrus.FieldLogger) Recorder {
	return logRecorder{logger: logging.OrDiscard(logger)}
}

func (r logRecorder) Record(ctx context.Context, event string, payload map[string]any) {
	logging.FromContext(ctx, r.logger).
		WithFields(logrus.Fields(payload)).
		WithField("event", event).
		Debug("telemetry")
}
