package services

import (
	"context"
	"fmt"

	"doctrone-backend/internal/config"
)

// ConversationClient runs one stateless exchange with a generative model:
// the instruction is seeded as a single prior user turn, then message is sent.
type ConversationClient interface {
	Ask(ctx context.Context, instruction, message string) (string, error)
}

// NewConversationClient builds the client for cfg.ModelProvider. The returned
// close func releases provider resources and is never nil.
func NewConversationClient(ctx context.Context, cfg *config.Config) (ConversationClient, func() error, error) {
	noop := func() error { return nil }

	switch cfg.ModelProvider {
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ModelName, float32(cfg.ModelTemperature))
		if err != nil {
			return nil, noop, err
		}
		return c, c.Close, nil

	case config.ProviderArk:
		c, err := NewArkClient(ctx, ArkConfig{
			APIKey:      cfg.ArkAPIKey,
			BaseURL:     cfg.ArkBaseURL,
			Region:      cfg.ArkRegion,
			Model:       cfg.ModelName,
			Temperature: float32(cfg.ModelTemperature),
		})
		if err != nil {
			return nil, noop, err
		}
		return c, noop, nil

	case config.ProviderOpenAI, config.ProviderAnthropic, config.ProviderOllama:
		c, err := NewLangChainClient(cfg)
		if err != nil {
			return nil, noop, err
		}
		return c, noop, nil

	default:
		return nil, noop, fmt.Errorf("unsupported model provider: %s", cfg.ModelProvider)
	}
}
