package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"doctrone-backend/internal/models"
)

const maxTitleRunes = 60

type chatStore interface {
	Create(ctx context.Context, chat *models.Conversation) error
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Conversation, error)
	ListMessages(ctx context.Context, chatID int64) ([]models.Message, error)
	StartWithTurn(ctx context.Context, chat *models.Conversation, userText, aiText string) ([]models.Message, error)
	AppendTurn(ctx context.Context, chatID int64, userText, aiText string) ([]models.Message, error)
}

// Recorder persists conversations and their user/ai message pairs. Both
// messages of a turn are written in one transaction.
type Recorder struct {
	chats  chatStore
	events TurnPublisher
}

func NewRecorder(chats chatStore, events TurnPublisher) *Recorder {
	if events == nil {
		events = noopPublisher{}
	}
	return &Recorder{chats: chats, events: events}
}

// Start creates an empty conversation owned by userID.
func (r *Recorder) Start(ctx context.Context, userID int64, firstMessage string) (int64, error) {
	chat := &models.Conversation{UserID: userID, Title: chatTitle(firstMessage)}
	if err := r.chats.Create(ctx, chat); err != nil {
		return 0, fmt.Errorf("create chat: %w", err)
	}
	return chat.ID, nil
}

// Append adds one user/ai pair to an existing conversation.
func (r *Recorder) Append(ctx context.Context, chatID int64, userText, aiText string) ([]models.Message, error) {
	msgs, err := r.chats.AppendTurn(ctx, chatID, userText, aiText)
	if err != nil {
		return nil, fmt.Errorf("append turn: %w", err)
	}
	return msgs, nil
}

// RecordTurn stores a turn on chat, then publishes it. A chat without an ID
// is created in the same transaction as its first turn.
func (r *Recorder) RecordTurn(ctx context.Context, chat *models.Conversation, userText, aiText string) (*models.Turn, error) {
	turn := &models.Turn{}

	if chat.ID == 0 {
		conv := *chat
		conv.Title = chatTitle(userText)
		msgs, err := r.chats.StartWithTurn(ctx, &conv, userText, aiText)
		if err != nil {
			return nil, fmt.Errorf("start chat: %w", err)
		}
		turn.Conversation = conv
		turn.Messages = msgs
	} else {
		msgs, err := r.Append(ctx, chat.ID, userText, aiText)
		if err != nil {
			return nil, err
		}
		turn.Conversation = *chat
		turn.Messages = msgs
	}

	r.events.PublishTurn(ctx, turn)
	return turn, nil
}

func chatTitle(message string) *string {
	title := strings.TrimSpace(message)
	if title == "" {
		return nil
	}
	if utf8.RuneCountInString(title) > maxTitleRunes {
		title = strings.TrimSpace(string([]rune(title)[:maxTitleRunes]))
	}
	return &title
}
