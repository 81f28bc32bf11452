package observability

import "context"

// Recorder is the shape shared by the report and command telemetry hooks.
type Recorder interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type fanout []Recorder

// Fanout forwards every event to each non-nil recorder in order.
func Fanout(recorders ...Recorder) Recorder {
	out := make(fanout, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (f fanout) Record(ctx context.Context, event string, payload map[string]any) {
	for _, r := range f {
		r.Record(ctx, event, payload)
	}
}
