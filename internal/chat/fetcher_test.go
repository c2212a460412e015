package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eagle-health/analytics-backend/internal/knowledge"
	"github.com/eagle-health/analytics-backend/internal/storage/models"
	"github.com/eagle-health/analytics-backend/internal/trends"
)

type countingStore struct {
	mockStore
	sums, tops, trendCalls, corr, states, cities, years int
}

func (c *countingStore) SumByCondition(ctx context.Context) (map[trends.Condition]int64, error) {
	c.sums++
	return c.mockStore.SumByCondition(ctx)
}

func (c *countingStore) TopStates(ctx context.Context, condition trends.Condition, limit int) ([]models.StateVolume, error) {
	c.tops++
	return c.mockStore.TopStates(ctx, condition, limit)
}

func (c *countingStore) YearlyTrend(ctx context.Context, condition trends.Condition) ([]models.YearVolume, error) {
	c.trendCalls++
	return c.mockStore.YearlyTrend(ctx, condition)
}

func (c *countingStore) Correlation(ctx context.Context, a, b trends.Condition) (*float64, error) {
	c.corr++
	return c.mockStore.Correlation(ctx, a, b)
}

func (c *countingStore) StateSeries(ctx context.Context, state string, condition *trends.Condition) ([]models.YearVolume, error) {
	c.states++
	return c.mockStore.StateSeries(ctx, state, condition)
}

func (c *countingStore) CitySeries(ctx context.Context, city string) ([]models.YearVolume, error) {
	c.cities++
	return c.mockStore.CitySeries(ctx, city)
}

func (c *countingStore) TotalsByYear(ctx context.Context) ([]models.YearVolume, error) {
	c.years++
	return c.mockStore.TotalsByYear(ctx)
}

func TestFetchSpecificCondition(t *testing.T) {
	store := &countingStore{}
	f := NewFetcher(store, time.Second)

	cond := trends.Diabetes
	bag := f.Fetch(context.Background(), knowledge.CategorySpecificCondition, Entities{Condition: &cond})

	require.NotNil(t, bag.ConditionStats)
	assert.Equal(t, cond, bag.ConditionStats.Condition)
	assert.NotEmpty(t, bag.ConditionStats.Info.Definition)
	assert.Equal(t, int64(30), bag.ConditionStats.TotalSearches)
	assert.Equal(t, 1, store.tops)
	assert.Equal(t, 1, store.trendCalls)
}

func TestFetchHealthConditionsOnlyLoadsTotals(t *testing.T) {
	store := &countingStore{}
	f := NewFetcher(store, time.Second)

	bag := f.Fetch(context.Background(), knowledge.CategoryHealthConditions, Entities{})
	assert.NotNil(t, bag.HealthStats)
	assert.Equal(t, 1, store.sums)
	assert.Equal(t, 0, store.tops)
}

func TestFetchCorrelationPairs(t *testing.T) {
	store := &countingStore{}
	f := NewFetcher(store, time.Second)

	bag := f.Fetch(context.Background(), knowledge.CategoryCorrelationAnalysis, Entities{})
	assert.Equal(t, 3, store.corr)
	assert.Len(t, bag.Correlations, 3)
}

func TestFetchStaticCategoriesSkipStore(t *testing.T) {
	store := &countingStore{}
	f := NewFetcher(store, time.Second)

	for _, c := range []knowledge.Category{
		knowledge.CategoryGreeting,
		knowledge.CategoryFarewell,
		knowledge.CategoryThanks,
		knowledge.CategoryHelp,
		knowledge.CategoryDataSources,
		knowledge.CategoryMethodology,
		knowledge.CategoryTeamMembers,
		knowledge.CategorySpecificMember,
	} {
		f.Fetch(context.Background(), c, Entities{})
	}
	assert.Equal(t, 0, store.sums+store.tops+store.trendCalls+store.corr+store.states+store.cities+store.years)
}

func TestFetchAbsorbsErrors(t *testing.T) {
	store := &countingStore{mockStore: mockStore{err: errors.New("boom")}}
	f := NewFetcher(store, time.Second)

	cond := trends.Cancer
	bag := f.Fetch(context.Background(), knowledge.CategorySpecificCondition, Entities{Condition: &cond})
	require.NotNil(t, bag.ConditionStats)
	assert.Empty(t, bag.ConditionStats.TopStates)
	assert.Empty(t, bag.ConditionStats.YearlyTrend)
	// Static knowledge still present.
	assert.NotEmpty(t, bag.ConditionStats.Info.Definition)
}
