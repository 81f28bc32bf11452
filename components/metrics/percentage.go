package metrics

import "github.com/shopspring/decimal"

// maxDecimals is the most fractional digits a float64 can carry.
const maxDecimals = 15

// Round rounds half away from zero at the given number of decimals. Non-finite
// input rounds to 0, negative decimals are treated as 0 and anything above 15
// is capped at 15.
func Round(value float64, decimals int) float64 {
	if !finite(value) {
		return 0
	}
	decimals = min(max(decimals, 0), maxDecimals)
	rounded, _ := decimal.NewFromFloat(value).Round(int32(decimals)).Float64()
	return rounded
}

// PercentageOf returns part as a percentage of whole. A non-positive whole
// yields 0 instead of dividing by zero.
func PercentageOf(part, whole float64, decimals int) float64 {
	if !finite(part) || !finite(whole) || whole <= 0 {
		return 0
	}
	return Round(part/whole*100, decimals)
}
