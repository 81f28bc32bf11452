package reports

import "context"

// Telemetry records report events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// NoopTelemetry returns a Telemetry that drops every event.
func NoopTelemetry() Telemetry {
	return noopTelemetry{}
}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
