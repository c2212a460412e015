package sqlite

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eagle-health/analytics-backend/internal/storage/models"
)

func newMockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewClientWithDB(db), mock
}

func TestInsertChatTurn(t *testing.T) {
	client, mock := newMockClient(t)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO chat_history").
		WithArgs("s1", "what is this", "an answer", "project_overview", created.Unix()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := client.InsertChatTurn(&models.ChatTurn{
		SessionID: "s1",
		Question:  "what is this",
		Response:  "an answer",
		Category:  "project_overview",
		CreatedAt: created,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChatHistoryReturnsChronologicalOrder(t *testing.T) {
	client, mock := newMockClient(t)

	// The query reads newest first; the client reverses to oldest first.
	rows := sqlmock.NewRows([]string{"id", "session_id", "question", "response", "category", "created_at"}).
		AddRow(2, "s1", "second", "r2", "help", int64(200)).
		AddRow(1, "s1", "first", "r1", "greeting", int64(100))
	mock.ExpectQuery("FROM chat_history").WithArgs("s1", 10).WillReturnRows(rows)

	turns, err := client.GetChatHistory("s1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "first", turns[0].Question)
	assert.Equal(t, "second", turns[1].Question)
	assert.True(t, turns[0].CreatedAt.Before(turns[1].CreatedAt))
}

func TestInsertContactSubmissionDefaultsStatus(t *testing.T) {
	client, mock := newMockClient(t)

	created := time.Now()
	mock.ExpectExec("INSERT INTO contact_submissions").
		WithArgs("id-1", "Jane", "jane@example.com", "Hi", "A message", "pending", created.Unix()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := client.InsertContactSubmission(&models.ContactSubmission{
		ID:        "id-1",
		Name:      "Jane",
		Email:     "jane@example.com",
		Subject:   "Hi",
		Message:   "A message",
		CreatedAt: created,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
