package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"doctrone-backend/internal/models"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

func (r *ChatRepo) Create(ctx context.Context, chat *models.Conversation) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO chats (user_id, folder_id, title) VALUES ($1, $2, $3)
		RETURNING id, started_at`,
		chat.UserID, chat.FolderID, chat.Title,
	).Scan(&chat.ID, &chat.StartedAt)
}

func (r *ChatRepo) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, user_id, folder_id, title, started_at FROM chats WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	chat, err := pgx.CollectExactlyOneRow(rows, scanConversation)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *ChatRepo) ListByUser(ctx context.Context, userID int64) ([]models.Conversation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, folder_id, title, started_at FROM chats
		WHERE user_id = $1 ORDER BY started_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanConversation)
}

func (r *ChatRepo) ListMessages(ctx context.Context, chatID int64) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, chat_id, sender, content, created_at FROM messages
		WHERE chat_id = $1 ORDER BY id`, chatID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanMessage)
}

// StartWithTurn creates the chat and its first user/ai pair atomically.
// chat.ID and chat.StartedAt are filled in on success.
func (r *ChatRepo) StartWithTurn(ctx context.Context, chat *models.Conversation, userText, aiText string) ([]models.Message, error) {
	var msgs []models.Message
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO chats (user_id, folder_id, title) VALUES ($1, $2, $3)
			RETURNING id, started_at`,
			chat.UserID, chat.FolderID, chat.Title,
		).Scan(&chat.ID, &chat.StartedAt)
		if err != nil {
			return err
		}

		msgs, err = insertTurn(ctx, tx, chat.ID, userText, aiText)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// AppendTurn stores a user/ai pair on an existing chat atomically.
func (r *ChatRepo) AppendTurn(ctx context.Context, chatID int64, userText, aiText string) ([]models.Message, error) {
	var msgs []models.Message
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		msgs, err = insertTurn(ctx, tx, chatID, userText, aiText)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func insertTurn(ctx context.Context, tx pgx.Tx, chatID int64, userText, aiText string) ([]models.Message, error) {
	const query = `INSERT INTO messages (chat_id, sender, content) VALUES ($1, $2, $3)
		RETURNING id, chat_id, sender, content, created_at`

	batch := &pgx.Batch{}
	batch.Queue(query, chatID, models.SenderUser, userText)
	batch.Queue(query, chatID, models.SenderAI, aiText)

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	msgs := make([]models.Message, 0, 2)
	for range 2 {
		var m models.Message
		if err := br.QueryRow().Scan(&m.ID, &m.ChatID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func scanConversation(row pgx.CollectableRow) (models.Conversation, error) {
	var c models.Conversation
	err := row.Scan(&c.ID, &c.UserID, &c.FolderID, &c.Title, &c.StartedAt)
	return c, err
}

func scanMessage(row pgx.CollectableRow) (models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.ChatID, &m.Sender, &m.Content, &m.CreatedAt)
	return m, err
}
