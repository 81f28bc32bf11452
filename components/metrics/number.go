package metrics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field the analytics backend may send as a JSON number,
// a numeric string, or null. Anything that does not coerce leaves Valid unset.
type Number struct {
	Value float64
	Valid bool
}

// NumberOf wraps a plain float.
func NumberOf(v float64) Number {
	if !finite(v) {
		return Number{}
	}
	return Number{Value: v, Valid: true}
}

// Float returns the value, or 0 when the field was missing or malformed.
func (n Number) Float() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// UnmarshalJSON never fails: malformed input decodes to an invalid Number.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	n.Value, n.Valid = Coerce(raw)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// MarshalYAML writes the plain value, or null when invalid.
func (n Number) MarshalYAML() (any, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Value, nil
}

// Coerce converts loosely typed values into a finite float64.
func Coerce(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case Number:
		if !v.Valid {
			return 0, false
		}
		f = v.Value
	case *Number:
		if v == nil || !v.Valid {
			return 0, false
		}
		f = v.Value
	default:
		return 0, false
	}
	if !finite(f) {
		return 0, false
	}
	return f, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonNegative(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}
