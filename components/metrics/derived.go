package metrics

// Direction tells the view how to colour a derived metric.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// DerivedMetric is a computed percentage or rate plus its sign.
type DerivedMetric struct {
	Value     float64   `json:"value" yaml:"value"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// NewDerivedMetric classifies value by sign.
func NewDerivedMetric(value float64) DerivedMetric {
	if !finite(value) {
		value = 0
	}
	return DerivedMetric{Value: value, Direction: DirectionOf(value)}
}

// DirectionOf returns up for positive values, down for negative ones.
func DirectionOf(value float64) Direction {
	switch {
	case !finite(value) || value == 0:
		return DirectionFlat
	case value > 0:
		return DirectionUp
	default:
		return DirectionDown
	}
}
