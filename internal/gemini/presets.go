package gemini

import "google.golang.org/genai"

// Generation presets. Classification needs reproducible single-label output,
// announcements tolerate mild creativity, and answers get a larger budget
// with a bigger fallback for truncated output.

// DeterministicConfig is used for classification.
func DeterministicConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.0),
		TopP:            genai.Ptr[float32](1.0),
		MaxOutputTokens: 256,
	}
}

// PostConfig is used for social-media announcements.
func PostConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		TopP:            genai.Ptr[float32](0.95),
		MaxOutputTokens: 256,
	}
}

// AnswerConfig is used for grounded RAG answers.
func AnswerConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		TopP:            genai.Ptr[float32](0.95),
		MaxOutputTokens: 768,
	}
}

// AnswerRetryConfig is used for the single post-truncation retry.
func AnswerRetryConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		MaxOutputTokens: 1024,
	}
}
