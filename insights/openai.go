package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Generator abstracts the hosted generation API. The production
// implementation is OpenAI-backed; tests substitute a canned one.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type openAIGenerator struct {
	client *openai.Client
}

// NewOpenAIGenerator returns an OpenAI-backed Generator, or nil when no API
// key is configured. A nil Generator makes the service skip the AI attempt
// entirely and go straight to the rule-based fallback.
func NewOpenAIGenerator(apiKey string) Generator {
	if apiKey == "" {
		return nil
	}
	return &openAIGenerator{client: openai.NewClient(apiKey)}
}

// Generate sends one chat completion request. Single attempt; retries, if
// any, are the transport's concern.
func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that analyzes hospital operations and environmental data and replies only with the exact JSON requested.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   600,
			N:           1,
			Temperature: 0.4,
		},
	)

	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
