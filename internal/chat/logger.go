// Package chat contains the guarded chat orchestrator and its transaction
// logger.
package chat

import (
	"time"

	"snow-agent/internal/models"
	"snow-agent/internal/storage"
)

// Logger serializes one chat transaction per request into the log store.
type Logger struct {
	store storage.LogStore
}

// NewLogger builds a logger over a log store.
func NewLogger(store storage.LogStore) *Logger {
	return &Logger{store: store}
}

// Log appends a single transaction record with a UTC timestamp.
func (l *Logger) Log(sessionID, userQuery string, gate models.GateDecision, topK int, retrieved []models.RetrievedChunk, answer string, validation models.ValidationResult) error {
	rec := models.LogRecord{
		Timestamp:     time.Now().UTC(),
		SessionID:     sessionID,
		UserQuery:     userQuery,
		PromptAllowed: gate.Allowed(),
		PromptReason:  gate.Reason,
		TopK:          topK,
		Retrieved:     models.Refs(retrieved),
		Answer:        answer,
		AnswerValid:   validation.Valid,
		AnswerIssues:  validation.IssueString(),
	}
	return l.store.Append(rec)
}
