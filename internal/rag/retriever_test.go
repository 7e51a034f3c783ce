package rag

import (
	"context"
	"errors"
	"testing"

	"snow-agent/internal/models"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return f.vec, f.err
}

type fakeSearcher struct {
	gotEmbedding []float32
	gotTopK      int
	chunks       []models.RetrievedChunk
}

func (f *fakeSearcher) SearchSimilar(embedding []float32, topK int) ([]models.RetrievedChunk, error) {
	f.gotEmbedding = embedding
	f.gotTopK = topK
	return f.chunks, nil
}

func TestRetrievePreservesStoreOrder(t *testing.T) {
	searcher := &fakeSearcher{chunks: testChunks()}
	r := NewRetriever(&fakeEmbedder{vec: []float32{0.1, 0.2, 0.3}}, searcher)

	chunks, err := r.Retrieve(context.Background(), "How do I report an unplowed road?", 7)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if searcher.gotTopK != 7 {
		t.Errorf("Expected top_k passed through, got %d", searcher.gotTopK)
	}
	if len(searcher.gotEmbedding) != 3 {
		t.Errorf("Expected query embedding forwarded, got %v", searcher.gotEmbedding)
	}

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	// The store ranking is final.
	if chunks[0].DocPath != "faq-04.txt" || chunks[1].DocPath != "plowing.txt" {
		t.Errorf("Store order not preserved: %+v", chunks)
	}
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{err: errors.New("embedding service down")}, &fakeSearcher{})

	if _, err := r.Retrieve(context.Background(), "q", 10); err == nil {
		t.Fatal("Expected embedding error to propagate")
	}
}
