package models

import "fmt"

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const WSTypeChatTurn = "chat_turn"

type TurnEvent struct {
	ChatID   int64     `json:"chat_id"`
	UserID   int64     `json:"user_id"`
	Messages []Message `json:"messages"`
}

// API Error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserChannel is the Redis pub/sub channel carrying one user's live updates.
func UserChannel(userID int64) string {
	return fmt.Sprintf("user_updates:%d", userID)
}
