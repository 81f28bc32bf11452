package analytics

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-admin-metrics/components/reports"
)

// ErrInvalidPayload reports a response whose data section failed schema validation.
var ErrInvalidPayload = errors.New("analytics: invalid payload")

// Kind classifies request failures.
type Kind string

const (
	KindTransport Kind = "transport"
	KindBackend   Kind = "backend"
)

// RequestError wraps transport failures and backend-reported failures. Both
// count as "no data" for callers; the backend's message is kept verbatim.
type RequestError struct {
	Kind     Kind
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("analytics: %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("analytics: %s request failed", e.Endpoint)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, reports.ErrNoData) match every request failure.
func (e *RequestError) Is(target error) bool {
	return target == reports.ErrNoData
}
