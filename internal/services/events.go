package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"doctrone-backend/internal/models"
)

// TurnPublisher announces a recorded turn. Failures are the publisher's
// concern; callers never see them.
type TurnPublisher interface {
	PublishTurn(ctx context.Context, turn *models.Turn)
}

type RedisTurnPublisher struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewRedisTurnPublisher(rdb *redis.Client, logger *slog.Logger) *RedisTurnPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisTurnPublisher{rdb: rdb, logger: logger}
}

func (p *RedisTurnPublisher) PublishTurn(ctx context.Context, turn *models.Turn) {
	data, err := json.Marshal(turnMessage(turn))
	if err != nil {
		p.logger.Warn("encode turn event", "chat_id", turn.Conversation.ID, "error", err)
		return
	}

	channel := models.UserChannel(turn.Conversation.UserID)
	if err := p.rdb.Publish(ctx, channel, data).Err(); err != nil {
		p.logger.Warn("publish turn event", "channel", channel, "error", err)
	}
}

func turnMessage(turn *models.Turn) models.WSMessage {
	return models.WSMessage{
		Type: models.WSTypeChatTurn,
		Payload: models.TurnEvent{
			ChatID:   turn.Conversation.ID,
			UserID:   turn.Conversation.UserID,
			Messages: turn.Messages,
		},
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishTurn(context.Context, *models.Turn) {}
