// Package gemini wraps the google.golang.org/genai client behind the small
// generation and embedding surfaces the rest of the service consumes.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Config selects the model-hosting backend. Either APIKey (Gemini API) or
// Project+Location (Vertex AI) must be set.
type Config struct {
	Project        string
	Location       string
	APIKey         string
	Model          string
	EmbeddingModel string
}

// Client is a process-lifetime handle to the generative and embedding models.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	client     *genai.Client
	model      string
	embedModel string
}

// NewClient creates the shared model client at process start.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cc := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case cfg.Project != "":
		cc.Project = cfg.Project
		cc.Location = cfg.Location
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("gemini: either api_key or project must be configured")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client:     client,
		model:      cfg.Model,
		embedModel: cfg.EmbeddingModel,
	}, nil
}

// GenerateContent issues a single generation call for the given prompt.
func (c *Client) GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}
	return resp, nil
}

// Embed returns the embedding vector for a single query text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := c.client.Models.EmbedContent(ctx,
		c.embedModel,
		contents,
		&genai.EmbedContentConfig{
			TaskType: "RETRIEVAL_QUERY",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("embed failed: %w", err)
	}

	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return result.Embeddings[0].Values, nil
}
