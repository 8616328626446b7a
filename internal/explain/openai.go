package explain

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a helpful assistant for a quiz application. " +
	"For the given question and its correct answer, explain in a SINGLE " +
	"SENTENCE why the answer is correct. Keep it concise, informative, and " +
	"suitable for educational purposes."

// Config holds the provider settings. BaseURL allows pointing the client at
// any OpenAI-compatible endpoint (Gemini exposes one as well).
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client asks a chat-completion model for answer explanations. A Client
// built without an API key is valid: every call returns the
// configuration-missing fallback.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(cfg Config) *Client {
	client := &Client{model: cfg.Model}
	if client.model == "" {
		client.model = openai.GPT4oMini
	}
	if cfg.APIKey == "" {
		log.Printf("explain: no API key configured, explanations disabled")
		return client
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	client.api = openai.NewClientWithConfig(apiCfg)
	return client
}

// Explain returns a one-sentence explanation of why correctAnswer answers
// question. It never returns an error: failures degrade to fixed fallback
// strings, and multi-sentence replies are truncated to the first sentence.
func (c *Client) Explain(ctx context.Context, question, correctAnswer string) string {
	if c.api == nil {
		return FallbackUnconfigured
	}

	prompt := fmt.Sprintf("Question: %s\nCorrect answer: %s\n\nYour explanation (in a single sentence):",
		question, correctAnswer)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 120,
	})
	if err != nil {
		log.Printf("explain: completion failed: %v", err)
		return FallbackUnavailable
	}
	if len(resp.Choices) == 0 {
		return FallbackEmpty
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return FallbackEmpty
	}
	return FirstSentence(text)
}
