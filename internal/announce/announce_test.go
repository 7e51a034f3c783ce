package announce

import (
	"context"
	"strings"
	"testing"

	"snow-agent/internal/gemini"

	"google.golang.org/genai"
)

type fakeModel struct {
	text string
}

func (f *fakeModel) GenerateContent(_ context.Context, _ string, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}}},
		},
	}, nil
}

func newTestGenerator(text string) *Generator {
	return NewGenerator(gemini.NewTextGenerator(&fakeModel{text: text}))
}

func checkContract(t *testing.T, post string) {
	t.Helper()
	if len([]rune(post)) > MaxPostLength {
		t.Errorf("Post exceeds %d characters: %d", MaxPostLength, len([]rune(post)))
	}
	if !strings.Contains(strings.ToLower(post), "check for updates") {
		t.Errorf("Post missing required phrase: %q", post)
	}
}

func TestGenerateCompliantModel(t *testing.T) {
	g := newTestGenerator("City update: Schools closed tomorrow. Check for updates.")

	post, err := g.Generate(context.Background(), "School closing tomorrow due to snow.")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	checkContract(t, post)

	keywords := []string{"visit", "check", "call", "follow", "updates"}
	lower := strings.ToLower(post)
	found := false
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Post contains none of %v: %q", keywords, post)
	}
}

func TestGenerateRepairsMissingPhrase(t *testing.T) {
	g := newTestGenerator("Snow removal begins at 5am on all priority routes")

	post, err := g.Generate(context.Background(), "Snow removal schedule")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	checkContract(t, post)

	if !strings.HasSuffix(post, "Check for updates.") {
		t.Errorf("Expected repaired post to end with the literal phrase, got %q", post)
	}
	if !strings.Contains(post, "routes.") {
		t.Errorf("Expected terminal punctuation added before the phrase, got %q", post)
	}
}

func TestGenerateTruncatesLongPosts(t *testing.T) {
	g := newTestGenerator(strings.Repeat("snow ", 100) + "Check for updates.")

	post, err := g.Generate(context.Background(), "long topic")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len([]rune(post)) != MaxPostLength {
		t.Errorf("Expected truncation to exactly %d characters, got %d", MaxPostLength, len([]rune(post)))
	}
}

func TestGenerateCollapsesWhitespace(t *testing.T) {
	g := newTestGenerator("Roads  are\n\nicy.   Check for updates.")

	post, err := g.Generate(context.Background(), "road conditions")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if post != "Roads are icy. Check for updates." {
		t.Errorf("Expected collapsed whitespace, got %q", post)
	}
}
