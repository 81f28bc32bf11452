package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderDashboardPlan(t *testing.T) {
	source := fixtureSource()
	loader := NewLoader(source, "")

	batch, err := loader.Load(context.Background(), Request{Page: PageDashboard, Period: PeriodMonth, Locale: "es-MX"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"overview", "users", "revenue", "views", "active_users", "subscriptions"}, source.callNames())
	assert.Len(t, batch.Series, 4)
	assert.Nil(t, batch.TopContent)
	for _, locale := range source.locales {
		assert.Equal(t, "es-MX", locale)
	}
}

func TestLoaderReportsPlanIncludesTopContent(t *testing.T) {
	source := fixtureSource()
	loader := NewLoader(source, FailBatch)

	batch, err := loader.Load(context.Background(), Request{Page: PageReports, Period: PeriodWeek, TopContentLimit: 2})
	require.NoError(t, err)
	assert.Contains(t, source.callNames(), FetchTopContent)
	assert.Len(t, batch.TopContent, 2)
}

func TestLoaderFailBatchPropagatesOriginalMessage(t *testing.T) {
	source := fixtureSource()
	source.errs = map[string]error{string(SeriesRevenue): errors.New("Revenue service unavailable")}
	loader := NewLoader(source, FailBatch)

	_, err := loader.Load(context.Background(), Request{Page: PageDashboard, Period: PeriodMonth})
	require.Error(t, err)
	assert.Equal(t, "Revenue service unavailable", err.Error())
}

func TestLoaderPartialResultsKeepsSuccessfulFetches(t *testing.T) {
	source := fixtureSource()
	source.errs = map[string]error{
		FetchSubscriptions: errors.New("subscriptions offline"),
		FetchTopContent:    errors.New("ranking offline"),
	}
	loader := NewLoader(source, PartialResults)

	batch, err := loader.Load(context.Background(), Request{Page: PageReports, Period: PeriodMonth})
	require.NoError(t, err)
	require.Len(t, batch.Errors, 2)
	assert.True(t, batch.Failed(FetchSubscriptions))
	assert.True(t, batch.Failed(FetchTopContent))
	assert.False(t, batch.Failed(FetchOverview))
	assert.Equal(t, 1000.0, batch.Overview.TotalUsers.Float())

	dash := Build(batch, BuildOptions{})
	assert.Equal(t, "subscriptions offline", dash.Errors[FetchSubscriptions])
	assert.Equal(t, 0.0, dash.Overview.ConversionRate.Value)
	assert.Equal(t, 0.0, dash.Overview.ChurnRate.Value)
	require.NotNil(t, dash.TopContent)
	assert.Empty(t, dash.TopContent.Items)
	assert.Equal(t, 11.1, dash.Overview.UserGrowth.Value)
}

func TestLoaderRejectsInvalidInput(t *testing.T) {
	loader := NewLoader(fixtureSource(), FailBatch)

	_, err := loader.Load(context.Background(), Request{Page: PageDashboard, Period: "daily"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = loader.Load(context.Background(), Request{Page: "billing", Period: PeriodMonth})
	assert.ErrorIs(t, err, ErrUnknownPage)

	_, err = NewLoader(nil, FailBatch).Load(context.Background(), Request{Page: PageDashboard, Period: PeriodMonth})
	assert.Error(t, err)
}

func TestParseFailurePolicy(t *testing.T) {
	policy, err := ParseFailurePolicy("")
	require.NoError(t, err)
	assert.Equal(t, FailBatch, policy)

	policy, err = ParseFailurePolicy("Partial")
	require.NoError(t, err)
	assert.Equal(t, PartialResults, policy)

	_, err = ParseFailurePolicy("retry")
	assert.Error(t, err)
}
