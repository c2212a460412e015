package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/internal/chat"
	"github.com/eagle-health/analytics-backend/internal/knowledge"
	"github.com/eagle-health/analytics-backend/internal/trends"
	"github.com/eagle-health/analytics-backend/pkg/logger"
)

type ChatHandler struct {
	engine *chat.Engine
	store  chat.Store
}

func NewChatHandler(engine *chat.Engine, store chat.Store) *ChatHandler {
	return &ChatHandler{engine: engine, store: store}
}

type suggestedQuestion struct {
	Category string `json:"category"`
	Question string `json:"question"`
}

var fallbackSuggestions = []suggestedQuestion{
	{Category: "followup", Question: "What is this project about?"},
	{Category: "followup", Question: "Which health conditions are analyzed?"},
	{Category: "followup", Question: "What were the key findings?"},
	{Category: "followup", Question: "Who worked on this project?"},
}

// HandleChat answers one chat question. The endpoint never returns a 5xx
// for pipeline problems; any failure collapses into a generic answer so the
// frontend widget always has something to show.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req struct {
		Question  string `json:"question"`
		SessionID string `json:"session_id"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse chat request body", zap.Error(err))
		return c.JSON(fiber.Map{
			"success":             false,
			"error":               "Invalid request body",
			"suggested_questions": fallbackSuggestions,
		})
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("chat pipeline panic", zap.Any("panic", r))
			c.JSON(fiber.Map{
				"success":             false,
				"response":            "I apologize, but something went wrong while answering that. Try asking about the project, a health condition, or the team.",
				"suggested_questions": fallbackSuggestions,
			})
		}
	}()

	result, err := h.engine.Ask(c.Context(), req.SessionID, req.Question)
	if err != nil {
		if err == chat.ErrEmptyQuestion {
			return c.JSON(fiber.Map{
				"success":             false,
				"error":               "Please ask a question.",
				"suggested_questions": fallbackSuggestions,
			})
		}
		logger.Error("Failed to answer chat question", zap.Error(err))
		return c.JSON(fiber.Map{
			"success":             false,
			"error":               "Failed to process question",
			"suggested_questions": fallbackSuggestions,
		})
	}

	suggestions := make([]suggestedQuestion, 0, 4)
	for _, q := range result.Response.Followups {
		if len(suggestions) == 4 {
			break
		}
		suggestions = append(suggestions, suggestedQuestion{Category: "followup", Question: q})
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"session_id":          result.SessionID,
		"response":            result.Response.Answer,
		"category":            result.Response.Category,
		"title":               result.Response.Title,
		"group":               result.Response.Group,
		"entities":            result.Entities,
		"data_summary":        result.Response.DataSummary,
		"suggested_followups": result.Response.Followups,
		"metadata":            result.Response.Metadata,
		"suggested_questions": suggestions,
	})
}

// GetHistory returns the in-memory turns for a session, oldest first.
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "session_id is required",
		})
	}

	history := h.engine.History(sessionID)
	if history == nil {
		history = []chat.Turn{}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"session_id": sessionID,
		"history":    history,
	})
}

// GetConditions lists the tracked conditions with their reference details.
func (h *ChatHandler) GetConditions(c *fiber.Ctx) error {
	conditions := make([]fiber.Map, 0, len(trends.AllConditions))
	for _, cond := range trends.AllConditions {
		entry := fiber.Map{
			"name":  string(cond),
			"title": cond.Title(),
		}
		if info, ok := knowledge.ConditionDetails(cond); ok {
			entry["definition"] = info.Definition
			entry["risk_factors"] = info.RiskFactors
			entry["search_pattern"] = info.SearchPattern
		}
		conditions = append(conditions, entry)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"conditions": conditions,
	})
}

// GetTeam returns the full team directory.
func (h *ChatHandler) GetTeam(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"team":    knowledge.Team(),
	})
}

// GetStats returns the per-condition search totals.
func (h *ChatHandler) GetStats(c *fiber.Ctx) error {
	totals, err := h.store.SumByCondition(c.Context())
	if err != nil {
		logger.Error("Failed to load condition totals", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load statistics",
		})
	}

	stats := fiber.Map{}
	for cond, total := range totals {
		stats[string(cond)] = total
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
		"coverage": fiber.Map{
			"first_year": 2004,
			"last_year":  2017,
			"conditions": len(trends.AllConditions),
		},
	})
}

// GetConditionData returns the full data profile for one condition: top
// states, yearly trend, and totals.
func (h *ChatHandler) GetConditionData(c *fiber.Ctx) error {
	cond, err := trends.ParseCondition(c.Params("condition"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error": "Unknown condition. Valid conditions: " +
				strings.Join(conditionSlugs(), ", "),
		})
	}

	topStates, err := h.store.TopStates(c.Context(), cond, 5)
	if err != nil {
		logger.Error("Failed to load top states",
			zap.String("condition", string(cond)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load condition data",
		})
	}

	trend, err := h.store.YearlyTrend(c.Context(), cond)
	if err != nil {
		logger.Error("Failed to load yearly trend",
			zap.String("condition", string(cond)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to load condition data",
		})
	}

	var total int64
	for _, yv := range trend {
		total += yv.Volume
	}

	resp := fiber.Map{
		"success":        true,
		"condition":      string(cond),
		"title":          cond.Title(),
		"top_states":     topStates,
		"yearly_trend":   trend,
		"total_searches": total,
	}
	if info, ok := knowledge.ConditionDetails(cond); ok {
		resp["definition"] = info.Definition
		resp["risk_factors"] = info.RiskFactors
		resp["search_pattern"] = info.SearchPattern
	}

	return c.JSON(resp)
}

func conditionSlugs() []string {
	slugs := make([]string, 0, len(trends.AllConditions))
	for _, c := range trends.AllConditions {
		slugs = append(slugs, string(c))
	}
	return slugs
}
