package gemini

import (
	"testing"

	"google.golang.org/genai"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}

func TestSafeTextExtractsText(t *testing.T) {
	if got := SafeText(textResponse("hello there.")); got != "hello there." {
		t.Errorf("Expected %q, got %q", "hello there.", got)
	}
}

func TestSafeTextTrimsWhitespace(t *testing.T) {
	if got := SafeText(textResponse("  spaced out  \n")); got != "spaced out" {
		t.Errorf("Expected trimmed text, got %q", got)
	}
}

func TestSafeTextConcatenatesParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "first "},
						{Text: "second"},
					},
				},
			},
		},
	}

	if got := SafeText(resp); got != "first second" {
		t.Errorf("Expected concatenated parts, got %q", got)
	}
}

func TestSafeTextNeverFails(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{
			"blocked candidate without content",
			&genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: nil}},
			},
		},
		{
			"candidate with no parts",
			&genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
			},
		},
		{
			"nil part",
			&genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{nil}}},
				},
			},
		},
		{"whitespace only", textResponse("   \n\t ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeText(tt.resp); got != "" {
				t.Errorf("Expected empty string, got %q", got)
			}
		})
	}
}
