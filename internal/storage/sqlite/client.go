package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/internal/storage/models"
	"github.com/eagle-health/analytics-backend/pkg/logger"
)

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

// NewClientWithDB wraps an existing handle; used by the trends store and tests.
func NewClientWithDB(db *sql.DB) *Client {
	return &Client{db: db}
}

func (c *Client) DB() *sql.DB {
	return c.db
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS location (
		location_id INTEGER PRIMARY KEY,
		city TEXT NOT NULL,
		postal TEXT,
		state TEXT NOT NULL,
		latitude REAL,
		longitude REAL
	);
	CREATE INDEX IF NOT EXISTS idx_location_state ON location(state);
	CREATE INDEX IF NOT EXISTS idx_location_city ON location(city);

	CREATE TABLE IF NOT EXISTS search_condition (
		location_id INTEGER NOT NULL,
		year INTEGER NOT NULL,
		cancer INTEGER DEFAULT 0,
		cardiovascular INTEGER DEFAULT 0,
		stroke INTEGER DEFAULT 0,
		depression INTEGER DEFAULT 0,
		rehab INTEGER DEFAULT 0,
		vaccine INTEGER DEFAULT 0,
		diarrhea INTEGER DEFAULT 0,
		obesity INTEGER DEFAULT 0,
		diabetes INTEGER DEFAULT 0,
		FOREIGN KEY (location_id) REFERENCES location(location_id)
	);
	CREATE INDEX IF NOT EXISTS idx_search_year ON search_condition(year);
	CREATE INDEX IF NOT EXISTS idx_search_location ON search_condition(location_id);

	CREATE TABLE IF NOT EXISTS leading_causes_of_death (
		year INTEGER NOT NULL,
		state TEXT NOT NULL,
		cause TEXT NOT NULL,
		deaths INTEGER DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_causes_year ON leading_causes_of_death(year);

	CREATE TABLE IF NOT EXISTS chat_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		question TEXT NOT NULL,
		response TEXT,
		category TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_session ON chat_history(session_id);
	CREATE INDEX IF NOT EXISTS idx_chat_created ON chat_history(created_at);

	CREATE TABLE IF NOT EXISTS contact_submissions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		status TEXT DEFAULT 'pending',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_contact_created ON contact_submissions(created_at);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (c *Client) InsertChatTurn(turn *models.ChatTurn) error {
	query := `INSERT INTO chat_history (session_id, question, response, category, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := c.db.Exec(
		query,
		turn.SessionID,
		turn.Question,
		turn.Response,
		turn.Category,
		turn.CreatedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert chat turn: %w", err)
	}

	logger.Debug("Chat turn recorded",
		zap.String("session_id", turn.SessionID),
		zap.String("category", turn.Category),
	)

	return nil
}

func (c *Client) GetChatHistory(sessionID string, limit int) ([]models.ChatTurn, error) {
	query := `
		SELECT id, session_id, question, response, category, created_at
		FROM chat_history
		WHERE session_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := c.db.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	defer rows.Close()

	var turns []models.ChatTurn
	for rows.Next() {
		var t models.ChatTurn
		var createdAt int64

		err := rows.Scan(&t.ID, &t.SessionID, &t.Question, &t.Response, &t.Category, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		t.CreatedAt = time.Unix(createdAt, 0)
		turns = append(turns, t)
	}

	// Reverse to chronological order, oldest first.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	return turns, nil
}

func (c *Client) InsertContactSubmission(sub *models.ContactSubmission) error {
	query := `INSERT INTO contact_submissions (id, name, email, subject, message, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`

	status := sub.Status
	if status == "" {
		status = "pending"
	}

	_, err := c.db.Exec(
		query,
		sub.ID,
		sub.Name,
		sub.Email,
		sub.Subject,
		sub.Message,
		status,
		sub.CreatedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert contact submission: %w", err)
	}

	logger.Info("Contact submission stored",
		zap.String("id", sub.ID),
		zap.String("subject", sub.Subject),
	)

	return nil
}
