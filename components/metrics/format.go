package metrics

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Fraction digits used by the two kinds of pages. Callers pass one of these
// (or their own value) to FormatCurrency.
const (
	DashboardFractionDigits = 0
	ReportFractionDigits    = 2
)

// FormatCount renders a count with the locale's grouping separators.
func FormatCount(amount float64, locale string) string {
	return formatNumber(amount, localeTag(locale), 0)
}

// FormatPercent renders a derived percentage with one decimal and a percent sign.
func FormatPercent(value float64, locale string) string {
	if !finite(value) {
		value = 0
	}
	return formatNumber(value, localeTag(locale), 1) + "%"
}

// symbolAfter lists base languages that write the currency symbol after the
// amount, separated by a space ("1.234,50 €").
var symbolAfter = map[string]bool{
	"cs": true, "da": true, "de": true, "el": true, "es": true, "fi": true,
	"fr": true, "hu": true, "it": true, "nb": true, "no": true, "pl": true,
	"ro": true, "ru": true, "sk": true, "sv": true, "uk": true,
}

// FormatCurrency renders an amount with the currency symbol for the locale
// and exactly fractionDigits decimals. The symbol goes before the number
// unless the locale's language writes it after. Unknown currency codes are
// printed verbatim in front of the number.
func FormatCurrency(amount float64, currencyCode, locale string, fractionDigits int) string {
	if fractionDigits < 0 {
		fractionDigits = 0
	}
	tag := localeTag(locale)
	amount = Round(amount, fractionDigits)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	formatted := formatNumber(amount, tag, fractionDigits)

	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	unit, err := currency.ParseISO(code)
	if err != nil {
		if code == "" {
			return sign + formatted
		}
		return sign + code + " " + formatted
	}
	symbol := message.NewPrinter(tag).Sprint(currency.Symbol(unit))
	if base, _ := tag.Base(); symbolAfter[base.String()] {
		return sign + formatted + " " + symbol
	}
	return sign + symbol + formatted
}

func formatNumber(amount float64, tag language.Tag, fractionDigits int) string {
	amount = Round(amount, fractionDigits)
	printer := message.NewPrinter(tag)
	return printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(fractionDigits),
		number.MaxFractionDigits(fractionDigits),
	))
}

func localeTag(locale string) language.Tag {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}
