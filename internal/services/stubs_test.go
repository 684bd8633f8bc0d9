package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"doctrone-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func int32Ptr(n int32) *int32 { return &n }

type stubUsers struct {
	users map[int64]*models.User
	calls int
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.calls++
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

type stubPrescriptions struct {
	byUser map[int64][]models.Prescription
	err    error
}

func (s *stubPrescriptions) ListByUser(_ context.Context, userID int64) ([]models.Prescription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byUser[userID], nil
}

type stubDrugs struct {
	drugs     map[int64]models.Drug
	calls     int
	requested []int64
}

func (s *stubDrugs) GetByIDs(_ context.Context, ids []int64) (map[int64]models.Drug, error) {
	s.calls++
	s.requested = append(s.requested, ids...)
	out := map[int64]models.Drug{}
	for _, id := range ids {
		if d, ok := s.drugs[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

// memChats is an in-memory chatStore.
type memChats struct {
	chats    map[int64]*models.Conversation
	messages map[int64][]models.Message
	nextChat int64
	nextMsg  int64
	failTurn error
}

func newMemChats() *memChats {
	return &memChats{
		chats:    map[int64]*models.Conversation{},
		messages: map[int64][]models.Message{},
	}
}

func (m *memChats) Create(_ context.Context, chat *models.Conversation) error {
	m.nextChat++
	chat.ID = m.nextChat
	chat.StartedAt = time.Now()
	c := *chat
	m.chats[c.ID] = &c
	return nil
}

func (m *memChats) GetByID(_ context.Context, id int64) (*models.Conversation, error) {
	if c, ok := m.chats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memChats) ListByUser(_ context.Context, userID int64) ([]models.Conversation, error) {
	var out []models.Conversation
	for id := m.nextChat; id > 0; id-- {
		if c, ok := m.chats[id]; ok && c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memChats) ListMessages(_ context.Context, chatID int64) ([]models.Message, error) {
	return m.messages[chatID], nil
}

func (m *memChats) StartWithTurn(ctx context.Context, chat *models.Conversation, userText, aiText string) ([]models.Message, error) {
	if m.failTurn != nil {
		return nil, m.failTurn
	}
	if err := m.Create(ctx, chat); err != nil {
		return nil, err
	}
	return m.AppendTurn(ctx, chat.ID, userText, aiText)
}

func (m *memChats) AppendTurn(_ context.Context, chatID int64, userText, aiText string) ([]models.Message, error) {
	if m.failTurn != nil {
		return nil, m.failTurn
	}
	if _, ok := m.chats[chatID]; !ok {
		return nil, errors.New("insert or update on table \"messages\" violates foreign key constraint")
	}
	var out []models.Message
	for _, pair := range [][2]string{{models.SenderUser, userText}, {models.SenderAI, aiText}} {
		m.nextMsg++
		msg := models.Message{ID: m.nextMsg, ChatID: chatID, Sender: pair[0], Content: pair[1], CreatedAt: time.Now()}
		m.messages[chatID] = append(m.messages[chatID], msg)
		out = append(out, msg)
	}
	return out, nil
}

func (m *memChats) messageCount() int {
	n := 0
	for _, msgs := range m.messages {
		n += len(msgs)
	}
	return n
}

type stubClient struct {
	reply        string
	err          error
	calls        int
	instructions []string
	messages     []string
}

func (c *stubClient) Ask(_ context.Context, instruction, message string) (string, error) {
	c.calls++
	c.instructions = append(c.instructions, instruction)
	c.messages = append(c.messages, message)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

type stubPublisher struct {
	turns []*models.Turn
}

func (p *stubPublisher) PublishTurn(_ context.Context, turn *models.Turn) {
	p.turns = append(p.turns, turn)
}

// memFolders is an in-memory folderStore.
type memFolders struct {
	folders []models.Folder
	err     error
}

func (m *memFolders) Create(_ context.Context, folder *models.Folder) error {
	if m.err != nil {
		return m.err
	}
	folder.ID = int64(len(m.folders) + 1)
	folder.CreatedAt = time.Now()
	m.folders = append(m.folders, *folder)
	return nil
}

func (m *memFolders) GetByID(_ context.Context, id int64) (*models.Folder, error) {
	for _, f := range m.folders {
		if f.ID == id {
			cp := f
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memFolders) ListByUser(_ context.Context, userID int64) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range m.folders {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}
