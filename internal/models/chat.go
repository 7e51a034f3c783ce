// Package models defines the request, response and log record types shared
// across the service.
package models

// ChatRequest is the body of POST /chat. TopK defaults to 10 when omitted and
// SessionID is generated server-side when empty.
type ChatRequest struct {
	Message   string `json:"message"`
	TopK      int    `json:"top_k"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the body returned by POST /chat.
//
// Blocked responses carry the trivially-valid marker (Valid=true, Issues="")
// since no generation took place.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Blocked   bool   `json:"blocked"`
	Answer    string `json:"answer"`
	Valid     bool   `json:"valid"`
	Issues    string `json:"issues"`
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	Question string `json:"question"`
}

// ClassifyResponse carries the resolved category label.
type ClassifyResponse struct {
	Category string `json:"category"`
}

// AnnounceRequest is the body of POST /announce.
type AnnounceRequest struct {
	Topic string `json:"topic"`
}

// AnnounceResponse carries the generated post text.
type AnnounceResponse struct {
	Post string `json:"post"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
