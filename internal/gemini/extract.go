package gemini

import (
	"strings"

	"google.golang.org/genai"
)

// SafeText extracts the textual content of a model response without ever
// failing: a nil, empty, blocked or otherwise malformed response yields "".
//
// Extraction is an ordered chain with first-success-wins semantics: the
// direct text accessor, then a manual walk of the first candidate's content
// parts. Each step swallows its own panics.
func SafeText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if out, ok := directText(resp); ok {
		return out
	}
	if out, ok := candidateText(resp); ok {
		return out
	}
	return ""
}

// directText tries the response's own text accessor.
func directText(resp *genai.GenerateContentResponse) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()

	t := strings.TrimSpace(resp.Text())
	if t == "" {
		return "", false
	}
	return t, true
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()

	if len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", false
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	t := strings.TrimSpace(sb.String())
	if t == "" {
		return "", false
	}
	return t, true
}
