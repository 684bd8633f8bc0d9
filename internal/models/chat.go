package models

import "time"

// Message senders as stored in messages.sender.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

type Conversation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FolderID  *int64    `json:"folder_id"`
	Title     *string   `json:"title"`
	StartedAt time.Time `json:"started_at"`
}

// Folder groups a user's conversations.
type Folder struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type FolderRequest struct {
	Name string `json:"name"`
}

type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	Sender    string    `json:"sender"` // "user" or "ai"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatRequest is the payload of /new_chat and the profile-aware /chat.
// FolderID only applies when a new conversation is started.
type ChatRequest struct {
	UserID   *ID    `json:"user_id"`
	ChatID   *ID    `json:"chat_id"`
	FolderID *ID    `json:"folder_id"`
	Message  string `json:"message"`
}

type ChatResponse struct {
	ChatID   int64  `json:"chat_id"`
	Response string `json:"response"`
}

// SimpleChatRequest is the payload of the profile-less /chat.
type SimpleChatRequest struct {
	Message string `json:"message"`
}

type SimpleChatResponse struct {
	Response string `json:"response"`
}

// Turn is one recorded user/ai exchange.
type Turn struct {
	Conversation Conversation `json:"conversation"`
	Messages     []Message    `json:"messages"`
}
