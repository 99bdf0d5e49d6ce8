package chat

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func dialChat(t *testing.T, serverURL, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/chat/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	return conn
}

func TestWebSocketChatRoundTrip(t *testing.T) {
	r, store := setupRouter()
	sessionID := newConsentedSession(t, store)

	server := httptest.NewServer(r)
	defer server.Close()

	conn := dialChat(t, server.URL, sessionID)
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"message": "can I walk in?"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var frame struct {
		Type string `json:"type"`
		Data struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Cards   []any  `json:"cards"`
		} `json:"data"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if frame.Type != "response" {
		t.Fatalf("expected response frame, got %q", frame.Type)
	}
	if !frame.Data.Success || len(frame.Data.Cards) != 1 {
		t.Fatalf("unexpected mediation payload: %+v", frame.Data)
	}

	history, _ := store.History(context.Background(), sessionID)
	if len(history) != 2 {
		t.Fatalf("expected user+assistant messages, got %d", len(history))
	}
}

func TestWebSocketChatEnforcesConsent(t *testing.T) {
	r, store := setupRouter()
	created := store.Create(context.Background())

	server := httptest.NewServer(r)
	defer server.Close()

	conn := dialChat(t, server.URL, created.ID)
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"message": "hello"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var frame struct {
		Type  string `json:"type"`
		Error string `json:"error"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if frame.Type != "error" || frame.Error != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED error frame, got %+v", frame)
	}
}
