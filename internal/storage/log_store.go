package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"snow-agent/internal/models"

	_ "github.com/mattn/go-sqlite3" // Import sqlite3 driver
)

// LogStore is the append-only sink for chat transaction records.
type LogStore interface {
	Append(rec models.LogRecord) error
}

// SQLiteLogStore persists chat log records to a plain SQLite table. Records
// are inserted once and never updated or deleted.
type SQLiteLogStore struct {
	db    *sql.DB
	table string
}

// NewSQLiteLogStore opens (or creates) the log store at dsn.
func NewSQLiteLogStore(dsn, table string) (*SQLiteLogStore, error) {
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid log table name: %q", table)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteLogStore{db: db, table: table}
	if err := store.initDB(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *SQLiteLogStore) initDB() error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		ts TEXT NOT NULL,
		session_id TEXT NOT NULL,
		user_query TEXT NOT NULL,
		prompt_allowed INTEGER NOT NULL,
		prompt_reason TEXT NOT NULL,
		top_k INTEGER NOT NULL,
		retrieved TEXT NOT NULL,
		answer TEXT NOT NULL,
		answer_valid INTEGER NOT NULL,
		answer_issues TEXT NOT NULL
	);
	`, s.table)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create log table: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteLogStore) Close() error {
	return s.db.Close()
}

// Append inserts one log record. Retrieval metadata round-trips as a JSON
// text column so citation markers survive as plain text.
func (s *SQLiteLogStore) Append(rec models.LogRecord) error {
	retrieved := rec.Retrieved
	if retrieved == nil {
		retrieved = []models.ChunkRef{}
	}
	retrievedJSON, err := json.Marshal(retrieved)
	if err != nil {
		return fmt.Errorf("failed to encode retrieved chunks: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (ts, session_id, user_query, prompt_allowed, prompt_reason, top_k, retrieved, answer, answer_valid, answer_issues)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.table)

	_, err = s.db.Exec(query,
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.SessionID,
		rec.UserQuery,
		rec.PromptAllowed,
		rec.PromptReason,
		rec.TopK,
		string(retrievedJSON),
		rec.Answer,
		rec.AnswerValid,
		rec.AnswerIssues,
	)
	if err != nil {
		return fmt.Errorf("failed to insert log record: %w", err)
	}

	return nil
}

// CountRecords returns the number of stored log records.
func (s *SQLiteLogStore) CountRecords() (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)
	if err := s.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count log records: %w", err)
	}
	return count, nil
}
