// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/profile-engine/pkg/types"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// maxOutputTokens bounds the response; extraction lists are short.
const maxOutputTokens = 1024

// AnthropicBackend calls the Anthropic Messages API.
type AnthropicBackend struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicBackend creates a backend from AI configuration. The API key
// must be non-empty; callers check for a configured key before constructing
// the backend.
func NewAnthropicBackend(cfg types.AIConfig) *AnthropicBackend {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &AnthropicBackend{client: &client, model: model}
}

// Complete sends the instruction as the system prompt and the data blob as
// the user message, returning the concatenated text blocks of the response.
func (b *AnthropicBackend) Complete(ctx context.Context, instruction, data string) (string, error) {
	resp, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: maxOutputTokens,
		System:    []anthropic.TextBlockParam{{Text: instruction}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(data)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("text-understanding API call: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.AsText().Text
		}
	}
	return text, nil
}
