package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/internal/chat"
	"github.com/eagle-health/analytics-backend/pkg/logger"
)

// WebSocketHandler streams chat answers word by word, so the frontend widget
// can show text as it "types".
type WebSocketHandler struct {
	engine *chat.Engine
}

func NewWebSocketHandler(engine *chat.Engine) *WebSocketHandler {
	return &WebSocketHandler{engine: engine}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	sessionID := ""

	for {
		var msg struct {
			Type      string `json:"type"`
			Question  string `json:"question"`
			SessionID string `json:"session_id"`
		}

		if err := c.ReadJSON(&msg); err != nil {
			logger.Debug("WebSocket read ended", zap.Error(err))
			break
		}

		if msg.Type != "question" {
			continue
		}
		if msg.SessionID != "" {
			sessionID = msg.SessionID
		}

		result, err := h.engine.Ask(context.Background(), sessionID, msg.Question)
		if err != nil {
			h.sendError(c, "Please ask a question.")
			continue
		}
		sessionID = result.SessionID

		if err := h.streamAnswer(c, result); err != nil {
			logger.Error("Failed to stream answer", zap.Error(err))
			break
		}
	}
}

func (h *WebSocketHandler) streamAnswer(c *websocket.Conn, result chat.Result) error {
	words := strings.Fields(result.Response.Answer)
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}
		if err := c.WriteJSON(map[string]interface{}{
			"type":    "chunk",
			"content": chunk,
		}); err != nil {
			return err
		}
	}

	return c.WriteJSON(map[string]interface{}{
		"type":       "complete",
		"session_id": result.SessionID,
		"category":   string(result.Response.Category),
		"title":      result.Response.Title,
		"followups":  result.Response.Followups,
		"metadata":   result.Response.Metadata,
	})
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	c.WriteJSON(map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	})
}
