// Package rag implements context retrieval, answer validation and the
// retrieval-augmented answer pipeline.
package rag

import (
	"context"
	"fmt"

	"snow-agent/internal/models"
	"snow-agent/internal/storage"
)

// Embedder turns a query into its embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever fetches the passages most similar to a query. It is a thin
// passthrough over the store: ranking quality is entirely the store's
// responsibility.
type Retriever struct {
	embedder Embedder
	store    storage.ChunkSearcher
}

// NewRetriever builds a retriever over an embedder and a chunk store.
func NewRetriever(embedder Embedder, store storage.ChunkSearcher) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Retrieve returns the topK nearest chunks in store-ranked order.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]models.RetrievedChunk, error) {
	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := r.store.SearchSimilar(embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return chunks, nil
}
