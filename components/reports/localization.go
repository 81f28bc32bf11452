package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TranslationService resolves display labels for an explicit locale.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ErrMissingTranslation is returned by MapTranslator when no candidate locale has the key.
var ErrMissingTranslation = errors.New("reports: missing translation")

// MapTranslator serves translations from an in-memory catalog keyed by
// locale then key. Lookups fall back from region to base language to "default".
type MapTranslator map[string]map[string]string

// Translate implements TranslationService.
func (m MapTranslator) Translate(_ context.Context, key, locale string, _ map[string]any) (string, error) {
	for _, candidate := range localeCandidates(locale) {
		for catalogLocale, entries := range m {
			if !strings.EqualFold(catalogLocale, candidate) {
				continue
			}
			if value := entries[key]; value != "" {
				return value, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

var defaultLabels = map[string]string{
	"reports.card.total_users":          "Total users",
	"reports.card.active_subscriptions": "Active subscriptions",
	"reports.card.total_revenue":        "Total revenue",
	"reports.card.total_views":          "Total views",
	"reports.card.total_videos":         "Total videos",
	"reports.card.conversion_rate":      "Conversion rate",
	"reports.card.churn_rate":           "Churn rate",
	"reports.series.users":              "Users",
	"reports.series.revenue":            "Revenue",
	"reports.series.views":              "Views",
	"reports.series.active_users":       "Active users",
	"reports.tier.freemium":             "Freemium",
	"reports.tier.basic":                "Basic",
	"reports.tier.premium":              "Premium",
	"reports.chart.growth":              "Growth",
	"reports.chart.distribution":        "Subscription distribution",
	"reports.chart.top_content":         "Top content",
	"reports.column.section":            "Section",
	"reports.column.metric":             "Metric",
	"reports.column.value":              "Value",
	"reports.column.change":             "Change",
	"reports.column.title":              "Title",
	"reports.column.views":              "Views",
	"reports.column.rating":             "Rating",
	"reports.column.completion_rate":    "Completion rate",
	"reports.menu.dashboard":            "Dashboard",
	"reports.menu.reports":              "Reports",
}

// Label resolves key for locale, falling back to the built-in English text.
func Label(ctx context.Context, svc TranslationService, key, locale string) string {
	return translateOrFallback(ctx, svc, key, locale, defaultLabels[key], nil)
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	candidates = append(candidates, "default")
	return candidates
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(locale)), "_", "-")
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
