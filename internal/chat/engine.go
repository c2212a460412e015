package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/internal/metrics"
	"github.com/eagle-health/analytics-backend/internal/storage/models"
	"github.com/eagle-health/analytics-backend/pkg/logger"
)

// ErrEmptyQuestion is returned when the question is blank after trimming.
// No extraction, fetching, or persistence happens in that case.
var ErrEmptyQuestion = errors.New("question is empty")

// Recorder persists chat turns. Satisfied by the sqlite client; nil disables
// persistence.
type Recorder interface {
	InsertChatTurn(turn *models.ChatTurn) error
}

// Engine runs the full chat pipeline: extract entities, classify, fetch the
// data the category needs, render, then log the turn.
type Engine struct {
	fetcher  *Fetcher
	renderer *Renderer
	sessions *SessionLog
	recorder Recorder
}

func NewEngine(fetcher *Fetcher, renderer *Renderer, sessions *SessionLog, recorder Recorder) *Engine {
	return &Engine{
		fetcher:  fetcher,
		renderer: renderer,
		sessions: sessions,
		recorder: recorder,
	}
}

// Result is the engine's answer plus the session it belongs to. SessionID is
// newly minted when the caller did not supply one.
type Result struct {
	SessionID string
	Entities  Entities
	Response  Response
}

// Ask answers one question. Store failures never surface; the response is
// rendered from whatever data was available.
func (e *Engine) Ask(ctx context.Context, sessionID, question string) (Result, error) {
	start := time.Now()

	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	entities := Extract(question)
	category := Classify(question, entities)
	stats := AnalyzeQuestion(question)
	bag := e.fetcher.Fetch(ctx, category, entities)
	resp := e.renderer.Render(category, entities, bag, stats)

	e.sessions.Record(sessionID, Turn{
		Question:  question,
		Response:  resp.Answer,
		Category:  string(category),
		Timestamp: time.Now().UTC(),
	})
	metrics.ActiveSessions.Set(float64(e.sessions.Len()))

	if e.recorder != nil {
		if err := e.recorder.InsertChatTurn(&models.ChatTurn{
			SessionID: sessionID,
			Question:  question,
			Response:  resp.Answer,
			Category:  string(category),
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			logger.Warn("failed to persist chat turn",
				zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	elapsed := time.Since(start)
	metrics.ChatRequestsTotal.WithLabelValues(string(category), "success").Inc()
	metrics.ChatDuration.WithLabelValues(string(category)).Observe(elapsed.Seconds())
	logger.Info("chat question answered",
		zap.String("session_id", sessionID),
		zap.String("category", string(category)),
		zap.Duration("latency", elapsed),
	)

	return Result{SessionID: sessionID, Entities: entities, Response: resp}, nil
}

// History returns the in-memory turns for a session, oldest first.
func (e *Engine) History(sessionID string) []Turn {
	return e.sessions.History(sessionID)
}
