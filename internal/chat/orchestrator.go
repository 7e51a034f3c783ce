package chat

import (
	"context"
	"log"

	"snow-agent/internal/gate"
	"snow-agent/internal/models"
	"snow-agent/internal/rag"
)

// refusalMessage is the fixed user-facing answer for blocked requests.
const refusalMessage = "Sorry—I can’t help with that request."

// citationHint is appended to the question for the single citation-triggered
// pipeline retry.
const citationHint = " (Include citations like [doc_path#chunk_id].)"

// AnswerPipeline is the answer-producing surface the orchestrator drives.
// *rag.Pipeline implements it.
type AnswerPipeline interface {
	Answer(ctx context.Context, question string, topK int) (string, []models.RetrievedChunk, error)
}

// TransactionLogger records the final outcome of each request. *Logger
// implements it.
type TransactionLogger interface {
	Log(sessionID, userQuery string, gate models.GateDecision, topK int, retrieved []models.RetrievedChunk, answer string, validation models.ValidationResult) error
}

// Orchestrator runs the guarded chat flow: gate, answer pipeline, validation,
// one citation-triggered retry, log. The pipeline is invoked at most twice
// per request.
type Orchestrator struct {
	pipeline AnswerPipeline
	logger   TransactionLogger
}

// NewOrchestrator builds the orchestrator.
func NewOrchestrator(pipeline AnswerPipeline, logger TransactionLogger) *Orchestrator {
	return &Orchestrator{pipeline: pipeline, logger: logger}
}

// Chat handles one request end to end. Gate blocks and validation failures
// are terminal outcomes, not errors; only transport failures from the model
// or store surface as errors.
func (o *Orchestrator) Chat(ctx context.Context, userQuery string, topK int, sessionID string) (models.ChatResponse, error) {
	decision := gate.Evaluate(userQuery)

	if !decision.Allowed() {
		validation := models.TriviallyValid()
		o.logBestEffort(sessionID, userQuery, decision, topK, nil, refusalMessage, validation)
		return models.ChatResponse{
			SessionID: sessionID,
			Blocked:   true,
			Answer:    refusalMessage,
			Valid:     true,
			Issues:    "",
		}, nil
	}

	answer, retrieved, err := o.pipeline.Answer(ctx, userQuery, topK)
	if err != nil {
		return models.ChatResponse{}, err
	}
	validation := rag.ValidateAnswer(answer)

	// One retry when citations are missing. Other issue kinds do not retry.
	if !validation.Valid && validation.Has(models.IssueMissingCitations) {
		answer, retrieved, err = o.pipeline.Answer(ctx, userQuery+citationHint, topK)
		if err != nil {
			return models.ChatResponse{}, err
		}
		validation = rag.ValidateAnswer(answer)
	}

	o.logBestEffort(sessionID, userQuery, decision, topK, retrieved, answer, validation)

	return models.ChatResponse{
		SessionID: sessionID,
		Blocked:   false,
		Answer:    answer,
		Valid:     validation.Valid,
		Issues:    validation.IssueString(),
	}, nil
}

// logBestEffort writes the transaction record without letting a log store
// failure affect the user-facing response.
func (o *Orchestrator) logBestEffort(sessionID, userQuery string, decision models.GateDecision, topK int, retrieved []models.RetrievedChunk, answer string, validation models.ValidationResult) {
	if err := o.logger.Log(sessionID, userQuery, decision, topK, retrieved, answer, validation); err != nil {
		log.Printf("Warning: failed to log chat transaction (session %s): %v", sessionID, err)
	}
}
