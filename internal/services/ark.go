package services

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type ArkConfig struct {
	APIKey      string
	BaseURL     string
	Region      string
	Model       string
	Temperature float32
}

// ArkClient talks to Volcengine Ark through an eino chat model.
type ArkClient struct {
	chatModel model.BaseChatModel
}

func NewArkClient(ctx context.Context, cfg ArkConfig) (*ArkClient, error) {
	temperature := cfg.Temperature
	cm, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Region:      cfg.Region,
		Model:       cfg.Model,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("create ark chat model: %w", err)
	}
	return &ArkClient{chatModel: cm}, nil
}

func (c *ArkClient) Ask(ctx context.Context, instruction, message string) (string, error) {
	resp, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(instruction),
		schema.UserMessage(message),
	})
	if err != nil {
		return "", fmt.Errorf("ark generate: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("ark generate: empty response")
	}
	return resp.Content, nil
}
