package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/internal/metrics"
	"github.com/eagle-health/analytics-backend/internal/trends"
	"github.com/eagle-health/analytics-backend/pkg/logger"
)

// AggregateCache is the cache surface the handler needs. Nil disables
// caching entirely.
type AggregateCache interface {
	GetAggregate(ctx context.Context, key string, value interface{}) (bool, error)
	SetAggregate(ctx context.Context, key string, value interface{}) error
}

type TrendsHandler struct {
	store *trends.Store
	cache AggregateCache
}

func NewTrendsHandler(store *trends.Store, cache AggregateCache) *TrendsHandler {
	return &TrendsHandler{store: store, cache: cache}
}

// respondCached serves the aggregate from cache when possible, otherwise
// loads it and stores the result. Cache failures fall through to the store.
func (h *TrendsHandler) respondCached(c *fiber.Ctx, key string, load func(ctx context.Context) (interface{}, error)) error {
	ctx := c.Context()

	if h.cache != nil {
		var cached json.RawMessage
		hit, err := h.cache.GetAggregate(ctx, key, &cached)
		if err != nil {
			logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			metrics.CacheHits.Inc()
			c.Set("Content-Type", "application/json")
			return c.Send(cached)
		}
		metrics.CacheMisses.Inc()
	}

	data, err := load(ctx)
	if err != nil {
		logger.Error("aggregate query failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load data",
		})
	}

	body := fiber.Map{"success": true, "data": data}
	if h.cache != nil {
		if err := h.cache.SetAggregate(ctx, key, body); err != nil {
			logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return c.JSON(body)
}

// SearchByYear returns all-condition totals per year.
func (h *TrendsHandler) SearchByYear(c *fiber.Ctx) error {
	return h.respondCached(c, "search_by_year", func(ctx context.Context) (interface{}, error) {
		return h.store.TotalsByYear(ctx)
	})
}

// SearchByYearAndCondition returns the yearly trend for one condition.
func (h *TrendsHandler) SearchByYearAndCondition(c *fiber.Ctx) error {
	cond, err := trends.ParseCondition(c.Query("condition"))
	if err != nil {
		return badCondition(c)
	}
	key := "year_condition:" + string(cond)
	return h.respondCached(c, key, func(ctx context.Context) (interface{}, error) {
		return h.store.YearlyTrend(ctx, cond)
	})
}

// SearchByState returns all-condition totals per state.
func (h *TrendsHandler) SearchByState(c *fiber.Ctx) error {
	return h.respondCached(c, "search_by_state", func(ctx context.Context) (interface{}, error) {
		return h.store.TotalsByState(ctx)
	})
}

// StateTimeline returns the yearly series for one state, optionally for a
// single condition.
func (h *TrendsHandler) StateTimeline(c *fiber.Ctx) error {
	state := strings.TrimSpace(c.Query("state"))
	if state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "state is required",
		})
	}

	var cond *trends.Condition
	if q := c.Query("condition"); q != "" {
		parsed, err := trends.ParseCondition(q)
		if err != nil {
			return badCondition(c)
		}
		cond = &parsed
	}

	key := "state_timeline:" + strings.ToLower(state)
	if cond != nil {
		key += ":" + string(*cond)
	}
	return h.respondCached(c, key, func(ctx context.Context) (interface{}, error) {
		return h.store.StateSeries(ctx, state, cond)
	})
}

// SearchByCity returns all-condition totals per city.
func (h *TrendsHandler) SearchByCity(c *fiber.Ctx) error {
	return h.respondCached(c, "search_by_city", func(ctx context.Context) (interface{}, error) {
		return h.store.TotalsByCity(ctx)
	})
}

// CityTimeline returns the yearly series for one city.
func (h *TrendsHandler) CityTimeline(c *fiber.Ctx) error {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "city is required",
		})
	}

	key := "city_timeline:" + strings.ToLower(city)
	return h.respondCached(c, key, func(ctx context.Context) (interface{}, error) {
		return h.store.CitySeries(ctx, city)
	})
}

// ByStateAndYear returns all-condition totals per state per year, used by
// the animated map view.
func (h *TrendsHandler) ByStateAndYear(c *fiber.Ctx) error {
	return h.respondCached(c, "by_state_and_year", func(ctx context.Context) (interface{}, error) {
		return h.store.TotalsByStateAndYear(ctx)
	})
}

// LeadingCauses returns the CDC leading-causes-of-death rows.
func (h *TrendsHandler) LeadingCauses(c *fiber.Ctx) error {
	return h.respondCached(c, "leading_causes", func(ctx context.Context) (interface{}, error) {
		return h.store.LeadingCauses(ctx)
	})
}

// Locations returns the location table.
func (h *TrendsHandler) Locations(c *fiber.Ctx) error {
	return h.respondCached(c, "locations", func(ctx context.Context) (interface{}, error) {
		return h.store.Locations(ctx)
	})
}

// MostSearched returns per-condition sums for the top states.
func (h *TrendsHandler) MostSearched(c *fiber.Ctx) error {
	limit := 10
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "limit must be between 1 and 100",
			})
		}
		limit = n
	}

	key := fmt.Sprintf("most_searched:%d", limit)
	return h.respondCached(c, key, func(ctx context.Context) (interface{}, error) {
		return h.store.SumsByState(ctx, limit)
	})
}

// TotalByCondition returns the dataset-wide totals per condition.
func (h *TrendsHandler) TotalByCondition(c *fiber.Ctx) error {
	return h.respondCached(c, "total_by_condition", func(ctx context.Context) (interface{}, error) {
		return h.store.SumByCondition(ctx)
	})
}

// TopStates returns the highest-volume states for one condition.
func (h *TrendsHandler) TopStates(c *fiber.Ctx) error {
	cond, err := trends.ParseCondition(c.Query("condition"))
	if err != nil {
		return badCondition(c)
	}

	limit := 5
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 50 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "limit must be between 1 and 50",
			})
		}
		limit = n
	}

	key := fmt.Sprintf("top_states:%s:%d", cond, limit)
	return h.respondCached(c, key, func(ctx context.Context) (interface{}, error) {
		return h.store.TopStates(ctx, cond, limit)
	})
}

// Correlation returns the Pearson coefficient for a condition pair. The
// coefficient is null when undefined for the underlying rows.
func (h *TrendsHandler) Correlation(c *fiber.Ctx) error {
	a, err := trends.ParseCondition(c.Query("a"))
	if err != nil {
		return badCondition(c)
	}
	b, err := trends.ParseCondition(c.Query("b"))
	if err != nil {
		return badCondition(c)
	}

	key := fmt.Sprintf("correlation:%s:%s", a, b)
	return h.respondCached(c, key, func(ctx context.Context) (interface{}, error) {
		r, err := h.store.Correlation(ctx, a, b)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"a": string(a), "b": string(b), "r": r}, nil
	})
}

func badCondition(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error": "Unknown condition. Valid conditions: " +
			strings.Join(conditionSlugs(), ", "),
	})
}
