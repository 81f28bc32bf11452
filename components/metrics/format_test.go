package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatCount(1234567, "en"))
	assert.Equal(t, "1.234.567", FormatCount(1234567, "de"))
	assert.Equal(t, "0", FormatCount(math.NaN(), "en"))
	assert.Equal(t, "1,000", FormatCount(1000, "not a locale!!"))
}

func TestFormatCurrencyFractionDigitsAreExplicit(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatCurrency(1234.5, "USD", "en", ReportFractionDigits))
	assert.Equal(t, "$1,235", FormatCurrency(1234.5, "usd", "en", DashboardFractionDigits))
	assert.Equal(t, "-$12.00", FormatCurrency(-12, "USD", "en", 2))
}

func TestFormatCurrencySymbolPlacementFollowsLocale(t *testing.T) {
	assert.Equal(t, "1.234,50 €", FormatCurrency(1234.5, "EUR", "de", 2))
	assert.Equal(t, "-12,00 €", FormatCurrency(-12, "EUR", "de-AT", 2))
	assert.Equal(t, "€1,234.50", FormatCurrency(1234.5, "EUR", "en", 2))
}

func TestFormatCurrencyUnknownCode(t *testing.T) {
	assert.Equal(t, "NOPE 10.00", FormatCurrency(10, "nope", "en", 2))
	assert.Equal(t, "10", FormatCurrency(10, "", "en", 0))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "11.1%", FormatPercent(11.1, "en"))
	assert.Equal(t, "33,3%", FormatPercent(33.3, "de"))
	assert.Equal(t, "0.0%", FormatPercent(math.Inf(1), "en"))
}
