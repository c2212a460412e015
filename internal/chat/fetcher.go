package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/internal/knowledge"
	"github.com/eagle-health/analytics-backend/internal/storage/models"
	"github.com/eagle-health/analytics-backend/internal/trends"
	"github.com/eagle-health/analytics-backend/pkg/logger"
)

// Store is the slice of the trends query layer the chat pipeline needs.
type Store interface {
	SumByCondition(ctx context.Context) (map[trends.Condition]int64, error)
	TopStates(ctx context.Context, condition trends.Condition, limit int) ([]models.StateVolume, error)
	YearlyTrend(ctx context.Context, condition trends.Condition) ([]models.YearVolume, error)
	Correlation(ctx context.Context, a, b trends.Condition) (*float64, error)
	StateSeries(ctx context.Context, state string, condition *trends.Condition) ([]models.YearVolume, error)
	CitySeries(ctx context.Context, city string) ([]models.YearVolume, error)
	TotalsByYear(ctx context.Context) ([]models.YearVolume, error)
}

// ConditionStats bundles everything the renderer needs for one condition.
type ConditionStats struct {
	Condition     trends.Condition
	Info          knowledge.ConditionInfo
	TopStates     []models.StateVolume
	YearlyTrend   []models.YearVolume
	TotalSearches int64
}

// CorrelationPair is one computed condition correlation. R is nil when the
// coefficient is undefined for the underlying rows.
type CorrelationPair struct {
	A, B trends.Condition
	R    *float64
}

// DataBag carries whatever data the category requires. Fields left zero are
// simply not rendered; a partially filled bag still produces a response.
type DataBag struct {
	ConditionStats *ConditionStats
	StateSeries    []models.YearVolume
	CitySeries     []models.YearVolume
	HealthStats    map[trends.Condition]int64
	TopStates      []models.StateVolume
	Correlations   []CorrelationPair
	TimeSeries     []models.YearVolume
}

// Fetcher loads only the data the chosen category needs. Every store error
// is logged and absorbed; the bag comes back partial, never an error.
type Fetcher struct {
	store   Store
	timeout time.Duration
}

func NewFetcher(store Store, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fetcher{store: store, timeout: timeout}
}

var correlationPairs = [][2]trends.Condition{
	{trends.Diabetes, trends.Depression},
	{trends.Diabetes, trends.Obesity},
	{trends.Depression, trends.Obesity},
}

// Fetch populates a DataBag for the category. Categories answered from
// static knowledge make no store calls at all.
func (f *Fetcher) Fetch(ctx context.Context, category knowledge.Category, e Entities) DataBag {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var bag DataBag
	switch category {
	case knowledge.CategorySpecificCondition:
		if e.Condition != nil {
			bag.ConditionStats = f.conditionStats(ctx, *e.Condition)
		}
	case knowledge.CategoryStateAnalysis:
		series, err := f.store.StateSeries(ctx, e.State, e.Condition)
		if err != nil {
			logger.Warn("state series fetch failed",
				zap.String("state", e.State), zap.Error(err))
		} else {
			bag.StateSeries = series
		}
	case knowledge.CategoryCityAnalysis:
		series, err := f.store.CitySeries(ctx, e.City)
		if err != nil {
			logger.Warn("city series fetch failed",
				zap.String("city", e.City), zap.Error(err))
		} else {
			bag.CitySeries = series
		}
	case knowledge.CategoryHealthConditions:
		bag.HealthStats = f.healthStats(ctx)
	case knowledge.CategoryMetricsInsights, knowledge.CategoryProjectOverview:
		bag.HealthStats = f.healthStats(ctx)
		top, err := f.store.TopStates(ctx, trends.Cancer, 5)
		if err != nil {
			logger.Warn("top states fetch failed", zap.Error(err))
		} else {
			bag.TopStates = top
		}
	case knowledge.CategoryKeyFindings:
		bag.HealthStats = f.healthStats(ctx)
		top, err := f.store.TopStates(ctx, trends.Cancer, 3)
		if err != nil {
			logger.Warn("top states fetch failed", zap.Error(err))
		} else {
			bag.TopStates = top
		}
		bag.Correlations = f.correlations(ctx)
	case knowledge.CategoryCorrelationAnalysis:
		bag.Correlations = f.correlations(ctx)
	case knowledge.CategoryTimeSeries:
		series, err := f.store.TotalsByYear(ctx)
		if err != nil {
			logger.Warn("totals by year fetch failed", zap.Error(err))
		} else {
			bag.TimeSeries = series
		}
	}
	return bag
}

func (f *Fetcher) conditionStats(ctx context.Context, c trends.Condition) *ConditionStats {
	stats := &ConditionStats{Condition: c}
	if info, ok := knowledge.ConditionDetails(c); ok {
		stats.Info = info
	}

	top, err := f.store.TopStates(ctx, c, 5)
	if err != nil {
		logger.Warn("top states fetch failed",
			zap.String("condition", string(c)), zap.Error(err))
	} else {
		stats.TopStates = top
	}

	trend, err := f.store.YearlyTrend(ctx, c)
	if err != nil {
		logger.Warn("yearly trend fetch failed",
			zap.String("condition", string(c)), zap.Error(err))
	} else {
		stats.YearlyTrend = trend
		for _, yv := range trend {
			stats.TotalSearches += yv.Volume
		}
	}
	return stats
}

func (f *Fetcher) healthStats(ctx context.Context) map[trends.Condition]int64 {
	totals, err := f.store.SumByCondition(ctx)
	if err != nil {
		logger.Warn("condition totals fetch failed", zap.Error(err))
		return nil
	}
	return totals
}

func (f *Fetcher) correlations(ctx context.Context) []CorrelationPair {
	var pairs []CorrelationPair
	for _, p := range correlationPairs {
		r, err := f.store.Correlation(ctx, p[0], p[1])
		if err != nil {
			logger.Warn("correlation fetch failed",
				zap.String("a", string(p[0])), zap.String("b", string(p[1])),
				zap.Error(err))
			continue
		}
		pairs = append(pairs, CorrelationPair{A: p[0], B: p[1], R: r})
	}
	return pairs
}
