package models

import "time"

// LogRecord is one append-only chat transaction row. Records are created once
// at the end of the pipeline and never mutated.
type LogRecord struct {
	Timestamp     time.Time  `json:"ts"`
	SessionID     string     `json:"session_id"`
	UserQuery     string     `json:"user_query"`
	PromptAllowed bool       `json:"prompt_allowed"`
	PromptReason  string     `json:"prompt_reason"`
	TopK          int        `json:"top_k"`
	Retrieved     []ChunkRef `json:"retrieved"`
	Answer        string     `json:"answer"`
	AnswerValid   bool       `json:"answer_valid"`
	AnswerIssues  string     `json:"answer_issues"`
}
