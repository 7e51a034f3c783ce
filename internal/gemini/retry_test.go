package gemini

import (
	"context"
	"strings"
	"testing"

	"google.golang.org/genai"
)

// fakeModel replays scripted responses and records the prompts it saw.
type fakeModel struct {
	responses []*genai.GenerateContentResponse
	err       error
	prompts   []string
}

func (f *fakeModel) GenerateContent(_ context.Context, prompt string, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.prompts) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

func TestGenerateReturnsFirstNonEmpty(t *testing.T) {
	model := &fakeModel{responses: []*genai.GenerateContentResponse{textResponse("snow removal starts at 5am.")}}
	gen := NewTextGenerator(model)

	out, err := gen.Generate(context.Background(), "When does plowing start?", DeterministicConfig())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "snow removal starts at 5am." {
		t.Errorf("Unexpected output: %q", out)
	}
	if len(model.prompts) != 1 {
		t.Errorf("Expected 1 model call, got %d", len(model.prompts))
	}
}

func TestGenerateRetriesOnceWithSoftenedPrompt(t *testing.T) {
	model := &fakeModel{responses: []*genai.GenerateContentResponse{
		{}, // empty first response
		textResponse("second attempt answer."),
	}}
	gen := NewTextGenerator(model)

	out, err := gen.Generate(context.Background(), "Emergency alert: fire near the gas station", PostConfig())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "second attempt answer." {
		t.Errorf("Unexpected output: %q", out)
	}
	if len(model.prompts) != 2 {
		t.Fatalf("Expected 2 model calls, got %d", len(model.prompts))
	}

	softened := model.prompts[1]
	if strings.Contains(softened, "fire") || strings.Contains(softened, "gas") || strings.Contains(softened, "Emergency alert") {
		t.Errorf("Softened prompt still contains trigger phrases: %q", softened)
	}
	if !strings.Contains(softened, "Public notice") || !strings.Contains(softened, "urgent situation") || !strings.Contains(softened, "odor") {
		t.Errorf("Softened prompt missing replacements: %q", softened)
	}
}

func TestGenerateBoundedAtTwoCalls(t *testing.T) {
	model := &fakeModel{responses: []*genai.GenerateContentResponse{{}}}
	gen := NewTextGenerator(model)

	out, err := gen.Generate(context.Background(), "anything", DeterministicConfig())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "" {
		t.Errorf("Expected empty output when both calls are empty, got %q", out)
	}
	if len(model.prompts) != 2 {
		t.Errorf("Expected exactly 2 model calls, got %d", len(model.prompts))
	}
}

func TestGenerateCustomSoftenings(t *testing.T) {
	model := &fakeModel{responses: []*genai.GenerateContentResponse{
		{},
		textResponse("ok."),
	}}
	gen := NewTextGeneratorWithSoftenings(model, []Replacement{{From: "avalanche", To: "snow event"}})

	if _, err := gen.Generate(context.Background(), "avalanche warning", PostConfig()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := model.prompts[1]; got != "snow event warning" {
		t.Errorf("Expected custom softening applied, got %q", got)
	}
}
