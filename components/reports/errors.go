package reports

import "errors"

var (
	// ErrNoData marks backend-reported and transport failures alike.
	ErrNoData = errors.New("reports: no data")
	// ErrInvalidPeriod rejects periods outside week|month|quarter|year.
	ErrInvalidPeriod = errors.New("reports: invalid period")
	// ErrUnknownPage rejects page names the loader has no plan for.
	ErrUnknownPage = errors.New("reports: unknown page")
	// ErrSuperseded is returned to a fetch that a newer fetch for the same page replaced.
	ErrSuperseded = errors.New("reports: fetch superseded by a newer request")

	errMissingSource = errors.New("reports: analytics source not configured")
)
