package metrics

// AverageRating averages every rating that coerces to a number, including
// numeric strings. Missing and malformed ratings are skipped.
func AverageRating(ratings []any) float64 {
	sum := 0.0
	count := 0
	for _, raw := range ratings {
		value, ok := Coerce(raw)
		if !ok {
			continue
		}
		sum += value
		count++
	}
	if count == 0 {
		return 0
	}
	return Round(sum/float64(count), 1)
}
