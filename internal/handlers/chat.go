package handlers

import (
	"context"
	"net/http"

	"doctrone-backend/internal/apperr"
	"doctrone-backend/internal/models"
)

type chatService interface {
	StartOrContinue(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	Continue(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	Ask(ctx context.Context, message string) (string, error)
	ListChats(ctx context.Context, userID int64) ([]models.Conversation, error)
	ListMessages(ctx context.Context, chatID int64) (*models.Conversation, []models.Message, error)
}

type ChatHandler struct {
	chats chatService
}

func NewChatHandler(chats chatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// NewChat handles POST /new_chat: start a conversation, or continue the one
// named by chat_id.
func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	h.turn(w, r, h.chats.StartOrContinue)
}

// Chat handles POST /chat in the profile variant; chat_id is required.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.turn(w, r, h.chats.Continue)
}

func (h *ChatHandler) turn(w http.ResponseWriter, r *http.Request,
	run func(context.Context, models.ChatRequest) (*models.ChatResponse, error)) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	if req.UserID != nil && req.UserID.Valid() && !canAccess(r, req.UserID.Int64()) {
		apperr.Write(w, r, errAccessDenied)
		return
	}

	resp, err := run(r.Context(), req)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, resp)
}

// SimpleChat handles POST /chat in the simple variant.
func (h *ChatHandler) SimpleChat(w http.ResponseWriter, r *http.Request) {
	var req models.SimpleChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	reply, err := h.chats.Ask(r.Context(), req.Message)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, models.SimpleChatResponse{Response: reply})
}

func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromPath(r)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	chats, err := h.chats.ListChats(r.Context(), userID)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathID(r, "chatID", "chat")
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	chat, msgs, err := h.chats.ListMessages(r.Context(), chatID)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	if !canAccess(r, chat.UserID) {
		apperr.Write(w, r, errAccessDenied)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, msgs)
}
