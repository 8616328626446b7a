// Package explain produces one-sentence explanations of quiz answers via an
// OpenAI-compatible chat-completion endpoint. The contract is deliberately
// forgiving: Explain never fails, it degrades to a fixed fallback string so
// the quiz flow is never interrupted by the provider.
package explain

import "strings"

// Fallback strings. These are part of the boundary contract: callers store
// whatever Explain returns directly into session state.
const (
	// FallbackUnconfigured is returned when no API key was provided.
	FallbackUnconfigured = "Explanations are not configured. Set OPENAI_API_KEY to enable them."
	// FallbackUnavailable is returned on any transport or provider failure.
	FallbackUnavailable = "Unable to generate an explanation at this time."
	// FallbackEmpty is returned when the provider answered with no text.
	FallbackEmpty = "No explanation available."
)

// FirstSentence truncates text to its first sentence: everything up to and
// including the first period. Providers are asked for a single sentence but
// routinely return more; the truncation happens here, at the boundary,
// because it determines what gets stored in session state.
func FirstSentence(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "."); idx >= 0 {
		return text[:idx+1]
	}
	return text
}
