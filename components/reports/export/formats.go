package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat rejects export formats the exporter cannot produce.
var ErrUnsupportedFormat = errors.New("export: unsupported format")

// Format is an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatJSON, FormatYAML, FormatHTML}

// ParseFormat validates a format name. "yml" is accepted as YAML.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatCSV, FormatJSON, FormatYAML, FormatHTML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// Artifact is an encoded export ready for delivery.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
}
