package rag

import (
	"context"
	"fmt"
	"strings"

	"snow-agent/internal/gemini"
	"snow-agent/internal/models"
)

const contextDelimiter = "\n\n---\n\n"

// ContextRetriever is the retrieval surface the pipeline depends on.
// *Retriever implements it.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]models.RetrievedChunk, error)
}

// Pipeline composes retrieval, prompt construction and generation into a
// single answer-producing call. At most two model invocations per Answer.
type Pipeline struct {
	model     gemini.Generator
	retriever ContextRetriever
}

// NewPipeline builds the answer pipeline.
func NewPipeline(model gemini.Generator, retriever ContextRetriever) *Pipeline {
	return &Pipeline{model: model, retriever: retriever}
}

// Answer retrieves context for the question and generates a grounded answer.
// An empty or truncated first result triggers exactly one more call with a
// larger output budget; its result is kept only when non-empty. The retrieved
// chunk metadata is returned for logging.
func (p *Pipeline) Answer(ctx context.Context, question string, topK int) (string, []models.RetrievedChunk, error) {
	chunks, err := p.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		return "", nil, err
	}

	prompt := buildPrompt(question, buildContext(chunks))

	resp, err := p.model.GenerateContent(ctx, prompt, gemini.AnswerConfig())
	if err != nil {
		return "", nil, fmt.Errorf("answer generation failed: %w", err)
	}
	answer := gemini.SafeText(resp)

	// A missing terminal punctuation mark signals truncation.
	if answer == "" || !endsWithTerminal(answer) {
		resp2, err := p.model.GenerateContent(ctx, prompt, gemini.AnswerRetryConfig())
		if err != nil {
			return "", nil, fmt.Errorf("answer retry failed: %w", err)
		}
		if retried := gemini.SafeText(resp2); retried != "" {
			answer = retried
		}
	}

	return answer, chunks, nil
}

func endsWithTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

// buildContext concatenates citation-tagged chunk texts in ranked order.
func buildContext(chunks []models.RetrievedChunk) string {
	lines := make([]string, 0, len(chunks))
	for _, c := range chunks {
		lines = append(lines, c.Cite()+"\n"+c.ChunkText)
	}
	return strings.Join(lines, contextDelimiter)
}

func buildPrompt(question, context string) string {
	return fmt.Sprintf(`You are the Alaska Department of Snow online assistant.
Use ONLY the context below.

Requirements:
- If the answer is not in the context, say exactly:
  "%s"
- Add inline citations like [doc_path#chunk_id] after each key fact.
- Write 2-6 sentences. End with a complete sentence.

User question:
%s

Context:
%s

Answer:`, Sentinel, question, context)
}
