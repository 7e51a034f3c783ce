package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// Generator is the single-call generation surface. *Client implements it;
// tests substitute deterministic fakes.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Replacement is one ordered prompt-softening substitution.
type Replacement struct {
	From string
	To   string
}

// DefaultSoftenings replaces alarming vocabulary that makes the model refuse
// otherwise legitimate government-service prompts. Order is applied as given.
func DefaultSoftenings() []Replacement {
	return []Replacement{
		{From: "Emergency alert", To: "Public notice"},
		{From: "boil-water", To: "water advisory"},
		{From: "gas", To: "odor"},
		{From: "fire", To: "urgent situation"},
	}
}

// TextGenerator produces plain text from a prompt, retrying exactly once with
// softened wording when the first call yields empty output. At most two model
// invocations per Generate call.
type TextGenerator struct {
	model      Generator
	softenings []Replacement
}

// NewTextGenerator wraps a model with the default softening table.
func NewTextGenerator(model Generator) *TextGenerator {
	return &TextGenerator{model: model, softenings: DefaultSoftenings()}
}

// NewTextGeneratorWithSoftenings wraps a model with a custom softening table.
func NewTextGeneratorWithSoftenings(model Generator, softenings []Replacement) *TextGenerator {
	return &TextGenerator{model: model, softenings: softenings}
}

// Generate calls the model once and extracts text. On empty output it softens
// the prompt and tries once more, returning whatever that call yields,
// possibly still empty. Transport errors propagate to the caller.
func (g *TextGenerator) Generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.model.GenerateContent(ctx, prompt, cfg)
	if err != nil {
		return "", err
	}
	if out := SafeText(resp); out != "" {
		return out, nil
	}

	resp2, err := g.model.GenerateContent(ctx, g.soften(prompt), cfg)
	if err != nil {
		return "", err
	}
	return SafeText(resp2), nil
}

func (g *TextGenerator) soften(prompt string) string {
	for _, r := range g.softenings {
		prompt = strings.ReplaceAll(prompt, r.From, r.To)
	}
	return prompt
}
