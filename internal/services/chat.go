package services

import (
	"context"
	"fmt"
	"strings"

	"doctrone-backend/internal/apperr"
	"doctrone-backend/internal/models"
)

// ChatService runs a chat turn: validate, resolve the profile, compose the
// instruction, ask the model, record. Nothing is written before the model
// has answered.
type ChatService struct {
	profiles *ProfileResolver
	composer PromptComposer
	client   ConversationClient
	recorder *Recorder
	chats    chatStore
	folders  *FolderService
}

func NewChatService(profiles *ProfileResolver, composer PromptComposer, client ConversationClient, recorder *Recorder, chats chatStore, folders *FolderService) *ChatService {
	return &ChatService{
		profiles: profiles,
		composer: composer,
		client:   client,
		recorder: recorder,
		chats:    chats,
		folders:  folders,
	}
}

// NewSimpleChatService serves the profile-less variant; only Ask is usable.
func NewSimpleChatService(composer PromptComposer, client ConversationClient) *ChatService {
	return &ChatService{composer: composer, client: client}
}

// StartOrContinue records the turn on req.ChatID when given, otherwise on a
// new conversation filed under req.FolderID.
func (s *ChatService) StartOrContinue(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	return s.turn(ctx, req, false)
}

// Continue requires req.ChatID.
func (s *ChatService) Continue(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	return s.turn(ctx, req, true)
}

// Ask answers a message with no profile and records nothing.
func (s *ChatService) Ask(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &apperr.ValidationError{Message: "message is required"}
	}
	reply, err := s.client.Ask(ctx, s.composer.ComposeGeneral(), message)
	if err != nil {
		return "", fmt.Errorf("ask model: %w", err)
	}
	return reply, nil
}

func (s *ChatService) turn(ctx context.Context, req models.ChatRequest, requireChat bool) (*models.ChatResponse, error) {
	if req.UserID == nil {
		return nil, &apperr.ValidationError{Message: "user_id is required"}
	}
	if !req.UserID.Valid() {
		return nil, errUserNotFound
	}
	if requireChat && req.ChatID == nil {
		return nil, &apperr.ValidationError{Message: "chat_id is required"}
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, &apperr.ValidationError{Message: "message is required"}
	}
	userID := req.UserID.Int64()

	profile, err := s.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	chat := &models.Conversation{UserID: userID}
	switch {
	case req.ChatID != nil:
		if !req.ChatID.Valid() {
			return nil, errChatNotFound
		}
		chat, err = s.ownedChat(ctx, userID, req.ChatID.Int64())
		if err != nil {
			return nil, err
		}
	case req.FolderID != nil:
		if s.folders == nil {
			return nil, errFolderNotFound
		}
		chat.FolderID, err = s.folders.owned(ctx, userID, req.FolderID)
		if err != nil {
			return nil, err
		}
	}

	instruction := s.composer.Compose(profile.MedicationSummary, profile.Gender, profile.Age)
	reply, err := s.client.Ask(ctx, instruction, req.Message)
	if err != nil {
		return nil, fmt.Errorf("ask model: %w", err)
	}

	turn, err := s.recorder.RecordTurn(ctx, chat, req.Message, reply)
	if err != nil {
		return nil, err
	}

	return &models.ChatResponse{ChatID: turn.Conversation.ID, Response: reply}, nil
}

func (s *ChatService) ownedChat(ctx context.Context, userID, chatID int64) (*models.Conversation, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, notFoundOr(err, errChatNotFound)
	}
	if chat.UserID != userID {
		return nil, errChatNotFound
	}
	return chat, nil
}

func (s *ChatService) ListChats(ctx context.Context, userID int64) ([]models.Conversation, error) {
	chats, err := s.chats.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	if chats == nil {
		chats = []models.Conversation{}
	}
	return chats, nil
}

// ListMessages returns the chat and its messages in insertion order, or a
// apperr.NotFoundError for an unknown chat.
func (s *ChatService) ListMessages(ctx context.Context, chatID int64) (*models.Conversation, []models.Message, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, nil, notFoundOr(err, errChatNotFound)
	}
	msgs, err := s.chats.ListMessages(ctx, chatID)
	if err != nil {
		return nil, nil, fmt.Errorf("list messages: %w", err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return chat, msgs, nil
}
