package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"doctrone-backend/internal/config"
)

// LangChainClient covers the OpenAI, Anthropic and Ollama providers.
type LangChainClient struct {
	llm         llms.Model
	temperature float64
}

func NewLangChainClient(cfg *config.Config) (*LangChainClient, error) {
	var llm llms.Model
	var err error

	switch cfg.ModelProvider {
	case config.ProviderOpenAI:
		llm, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.ModelName),
		)
	case config.ProviderAnthropic:
		llm, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.ModelName),
		)
	case config.ProviderOllama:
		llm, err = ollama.New(
			ollama.WithModel(cfg.ModelName),
			ollama.WithServerURL(cfg.OllamaHost),
		)
	default:
		return nil, fmt.Errorf("unsupported langchain provider: %s", cfg.ModelProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s model: %w", cfg.ModelProvider, err)
	}

	return &LangChainClient{llm: llm, temperature: cfg.ModelTemperature}, nil
}

func (c *LangChainClient) Ask(ctx context.Context, instruction, message string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, instruction),
		llms.TextParts(llms.ChatMessageTypeHuman, message),
	}

	resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generate content: no response choices")
	}
	return resp.Choices[0].Content, nil
}
