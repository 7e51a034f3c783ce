package models

import "fmt"

// RetrievedChunk is a passage returned by the vector store, in store-ranked
// order (ascending distance, smaller is closer).
type RetrievedChunk struct {
	DocPath   string  `json:"doc_path"`
	ChunkID   int     `json:"chunk_id"`
	ChunkText string  `json:"chunk_text"`
	Distance  float64 `json:"distance"`
}

// Cite returns the citation marker for the chunk, e.g. "[faq-04.txt#0]".
// This exact textual form is what the answer validator recognizes.
func (c RetrievedChunk) Cite() string {
	return fmt.Sprintf("[%s#%d]", c.DocPath, c.ChunkID)
}

// Ref strips the chunk text for logging.
func (c RetrievedChunk) Ref() ChunkRef {
	return ChunkRef{DocPath: c.DocPath, ChunkID: c.ChunkID, Distance: c.Distance}
}

// ChunkRef is the retrieval metadata persisted in the chat log.
type ChunkRef struct {
	DocPath  string  `json:"doc_path"`
	ChunkID  int     `json:"chunk_id"`
	Distance float64 `json:"distance"`
}

// Refs maps retrieved chunks to their log references, preserving order.
func Refs(chunks []RetrievedChunk) []ChunkRef {
	refs := make([]ChunkRef, len(chunks))
	for i, c := range chunks {
		refs[i] = c.Ref()
	}
	return refs
}
