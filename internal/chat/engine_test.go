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

type mockStore struct {
	calls int
	err   error
}

func (m *mockStore) SumByCondition(ctx context.Context) (map[trends.Condition]int64, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return map[trends.Condition]int64{trends.Cancer: 100}, nil
}

func (m *mockStore) TopStates(ctx context.Context, condition trends.Condition, limit int) ([]models.StateVolume, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []models.StateVolume{{State: "California", Volume: 50}}, nil
}

func (m *mockStore) YearlyTrend(ctx context.Context, condition trends.Condition) ([]models.YearVolume, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []models.YearVolume{{Year: 2004, Volume: 10}, {Year: 2017, Volume: 20}}, nil
}

func (m *mockStore) Correlation(ctx context.Context, a, b trends.Condition) (*float64, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	r := 0.5
	return &r, nil
}

func (m *mockStore) StateSeries(ctx context.Context, state string, condition *trends.Condition) ([]models.YearVolume, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []models.YearVolume{{Year: 2004, Volume: 5}}, nil
}

func (m *mockStore) CitySeries(ctx context.Context, city string) ([]models.YearVolume, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []models.YearVolume{{Year: 2004, Volume: 5}}, nil
}

func (m *mockStore) TotalsByYear(ctx context.Context) ([]models.YearVolume, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []models.YearVolume{{Year: 2004, Volume: 5}}, nil
}

type mockRecorder struct {
	turns []models.ChatTurn
	err   error
}

func (m *mockRecorder) InsertChatTurn(turn *models.ChatTurn) error {
	if m.err != nil {
		return m.err
	}
	m.turns = append(m.turns, *turn)
	return nil
}

func newTestEngine(store *mockStore, recorder Recorder) *Engine {
	fetcher := NewFetcher(store, time.Second)
	renderer := NewRendererWithSource(1, time.Now)
	sessions := NewSessionLog(10, 100)
	return NewEngine(fetcher, renderer, sessions, recorder)
}

func TestEngineEmptyQuestion(t *testing.T) {
	store := &mockStore{}
	engine := newTestEngine(store, nil)

	_, err := engine.Ask(context.Background(), "", "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Equal(t, 0, store.calls, "empty question must not touch the store")
}

func TestEngineAnswersAndMintsSession(t *testing.T) {
	store := &mockStore{}
	recorder := &mockRecorder{}
	engine := newTestEngine(store, recorder)

	result, err := engine.Ask(context.Background(), "", "tell me about diabetes")
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, knowledge.CategorySpecificCondition, result.Response.Category)
	assert.NotEmpty(t, result.Response.Answer)
	assert.Greater(t, store.calls, 0)

	require.Len(t, recorder.turns, 1)
	assert.Equal(t, "tell me about diabetes", recorder.turns[0].Question)
	assert.Equal(t, string(knowledge.CategorySpecificCondition), recorder.turns[0].Category)
}

func TestEngineReusesSession(t *testing.T) {
	engine := newTestEngine(&mockStore{}, nil)

	first, err := engine.Ask(context.Background(), "", "hello")
	require.NoError(t, err)

	second, err := engine.Ask(context.Background(), first.SessionID, "what is this project about")
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	history := engine.History(first.SessionID)
	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Question)
	assert.Equal(t, "what is this project about", history[1].Question)
}

func TestEngineStaticCategoriesSkipStore(t *testing.T) {
	store := &mockStore{}
	engine := newTestEngine(store, nil)

	for _, q := range []string{"hello", "goodbye", "thanks", "who is on the team"} {
		_, err := engine.Ask(context.Background(), "s", q)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, store.calls)
}

func TestEngineAbsorbsStoreFailures(t *testing.T) {
	store := &mockStore{err: errors.New("db down")}
	engine := newTestEngine(store, nil)

	result, err := engine.Ask(context.Background(), "s", "tell me about cancer")
	require.NoError(t, err)
	assert.Equal(t, knowledge.CategorySpecificCondition, result.Response.Category)
	assert.NotEmpty(t, result.Response.Answer)
}

func TestEngineAbsorbsRecorderFailure(t *testing.T) {
	recorder := &mockRecorder{err: errors.New("insert failed")}
	engine := newTestEngine(&mockStore{}, recorder)

	result, err := engine.Ask(context.Background(), "s", "what were the key findings")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Response.Answer)
}
