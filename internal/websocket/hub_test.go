package websocket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doctrone-backend/internal/models"
)

type stubAuth map[string]int64

func (s stubAuth) ParseToken(token string) (int64, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("invalid token")
}

func dial(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func TestHub_DeliversToUser(t *testing.T) {
	hub := NewHub(nil, stubAuth{"good": 7}, "*", nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()
	defer hub.Close()

	conn, _, err := dial(t, srv, "good")
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ConnectionCount(7) == 1 }, time.Second, 10*time.Millisecond)

	hub.SendToUser(7, models.WSMessage{
		Type:    models.WSTypeChatTurn,
		Payload: models.TurnEvent{ChatID: 3, UserID: 7},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got struct {
		Type    string           `json:"type"`
		Payload models.TurnEvent `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "chat_turn", got.Type)
	assert.Equal(t, int64(3), got.Payload.ChatID)

	assert.Zero(t, hub.ConnectionCount(8))
}

func TestHub_RejectsBadToken(t *testing.T) {
	hub := NewHub(nil, stubAuth{"good": 7}, "*", nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	_, resp, err := dial(t, srv, "bad")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = dial(t, srv, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub := NewHub(nil, stubAuth{"good": 7}, "*", nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn, _, err := dial(t, srv, "good")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ConnectionCount(7) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ConnectionCount(7) == 0 }, 2*time.Second, 10*time.Millisecond)
}
