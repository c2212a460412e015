package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eagle-health/analytics-backend/internal/storage/sqlite"
)

func newContactTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	handler := NewContactHandler(sqlite.NewClientWithDB(db))

	app := fiber.New()
	app.Post("/api/contact", handler.SubmitContact)
	return app, mock
}

func TestSubmitContact(t *testing.T) {
	app, mock := newContactTestApp(t)

	mock.ExpectExec("INSERT INTO contact_submissions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp := postJSON(t, app, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Question about the data",
		"message": "Where can I download the dataset?",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitContactValidation(t *testing.T) {
	app, _ := newContactTestApp(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.com", "message": "hi"}},
		{"missing email", map[string]string{"name": "Jane", "message": "hi"}},
		{"missing message", map[string]string{"name": "Jane", "email": "a@b.com"}},
		{"bad email", map[string]string{"name": "Jane", "email": "not-an-email", "message": "hi"}},
		{"whitespace only", map[string]string{"name": "  ", "email": "a@b.com", "message": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/contact", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
