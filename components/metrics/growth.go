package metrics

// TimeSeriesPoint is one reporting period. Series are ordered oldest first.
type TimeSeriesPoint struct {
	PeriodLabel string  `json:"period" yaml:"period"`
	Value       float64 `json:"value" yaml:"value"`
}

// PeriodOverPeriodGrowth compares the last two points of a series and returns
// the relative change as a percentage rounded to one decimal. Every growth
// figure on the dashboard goes through here, each from its own series.
func PeriodOverPeriodGrowth(series []TimeSeriesPoint) float64 {
	if len(series) < 2 {
		return 0
	}
	current := series[len(series)-1].Value
	previous := series[len(series)-2].Value
	if !finite(current) || !finite(previous) || previous <= 0 {
		return 0
	}
	return Round((current-previous)/previous*100, 1)
}

// SeriesValues extracts the raw values of a series.
func SeriesValues(series []TimeSeriesPoint) []float64 {
	values := make([]float64, len(series))
	for i, point := range series {
		values[i] = point.Value
	}
	return values
}

// SeriesLabels extracts the period labels of a series.
func SeriesLabels(series []TimeSeriesPoint) []string {
	labels := make([]string, len(series))
	for i, point := range series {
		labels[i] = point.PeriodLabel
	}
	return labels
}
