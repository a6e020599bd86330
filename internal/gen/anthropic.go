package gen

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	generateTimeout = 10 * time.Second
	generateModel   = anthropic.ModelClaude3_5HaikuLatest
)

// AnthropicGenerator generates offer descriptions with a small Claude
// model. One request per user action, no automatic retry.
type AnthropicGenerator struct {
	client anthropic.Client
}

func NewAnthropicGenerator(apiKey string) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic generator missing api key")
	}
	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, title, category string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write a professional, compelling, and concise (max 50 words) description "+
			"for a service offered by an insurance vendor.\n\n"+
			"Service Title: %s\nCategory: %s\n\nTone: Professional, High-Converting.",
		title, category,
	)

	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     generateModel,
		MaxTokens: 256,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(message.Content) == 0 || message.Content[0].Type != "text" {
		return "", fmt.Errorf("%w: unexpected response format", ErrUnavailable)
	}
	return message.Content[0].Text, nil
}
