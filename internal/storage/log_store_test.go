package storage

import (
	"os"
	"strings"
	"testing"
	"time"

	"snow-agent/internal/models"
)

func setupLogStore(t *testing.T) *SQLiteLogStore {
	dbPath := "./test_log_store.db"
	t.Cleanup(func() { _ = os.Remove(dbPath) })

	store, err := NewSQLiteLogStore(dbPath, "chat_logs")
	if err != nil {
		t.Fatalf("Failed to create log store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLogStoreAppend(t *testing.T) {
	store := setupLogStore(t)

	rec := models.LogRecord{
		Timestamp:     time.Now().UTC(),
		SessionID:     "s-1",
		UserQuery:     "How do I report an unplowed road?",
		PromptAllowed: true,
		PromptReason:  "Looks safe.",
		TopK:          10,
		Retrieved: []models.ChunkRef{
			{DocPath: "faq-04.txt", ChunkID: 0, Distance: 0.12},
		},
		Answer:      "Use the 311 portal [faq-04.txt#0].",
		AnswerValid: true,
	}

	if err := store.Append(rec); err != nil {
		t.Fatalf("Failed to append record: %v", err)
	}

	count, err := store.CountRecords()
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 record, got %d", count)
	}
}

func TestLogStoreRoundTripsCitationText(t *testing.T) {
	store := setupLogStore(t)

	rec := models.LogRecord{
		Timestamp: time.Now().UTC(),
		SessionID: "s-2",
		UserQuery: "q",
		TopK:      5,
		Answer:    "Cited [alaska-dept-of-snow/faq-04.txt#0] here.",
	}
	if err := store.Append(rec); err != nil {
		t.Fatalf("Failed to append record: %v", err)
	}

	var answer, retrieved, ts string
	row := store.db.QueryRow("SELECT answer, retrieved, ts FROM chat_logs WHERE session_id = ?", "s-2")
	if err := row.Scan(&answer, &retrieved, &ts); err != nil {
		t.Fatalf("Failed to read back record: %v", err)
	}

	if !strings.Contains(answer, "[alaska-dept-of-snow/faq-04.txt#0]") {
		t.Errorf("Citation marker did not round-trip: %q", answer)
	}
	if retrieved != "[]" {
		t.Errorf("Expected empty retrieved list to serialize as [], got %q", retrieved)
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("Timestamp not ISO-8601: %q (%v)", ts, err)
	}
}

func TestLogStoreAppendsNeverMutate(t *testing.T) {
	store := setupLogStore(t)

	for i := 0; i < 3; i++ {
		rec := models.LogRecord{
			Timestamp: time.Now().UTC(),
			SessionID: "same-session",
			UserQuery: "q",
			TopK:      10,
		}
		if err := store.Append(rec); err != nil {
			t.Fatalf("Failed to append record %d: %v", i, err)
		}
	}

	count, err := store.CountRecords()
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 append-only records, got %d", count)
	}
}
