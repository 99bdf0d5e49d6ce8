package chat

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sjsu-mhc/concierge/internal/apperr"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type inboundFrame struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type outboundFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// handleWebSocket 提供基于WebSocket的聊天通道。每一帧都经过完整的
// 调解流程，同意门控逐帧生效。
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[chat] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[chat] websocket opened for session=%s", sessionID)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[chat] websocket read error for session=%s: %v", sessionID, err)
			}
			return
		}

		resp, err := h.mediatorSvc.SendMessage(r.Context(), sessionID, frame.Message)
		if err != nil {
			appErr := apperr.From(err)
			h.writeFrame(conn, sessionID, outboundFrame{
				Type:    "error",
				Error:   string(appErr.Code),
				Message: appErr.Message,
			})
			continue
		}

		h.writeFrame(conn, sessionID, outboundFrame{
			Type: "response",
			Data: resp,
		})
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, sessionID string, frame outboundFrame) {
	frame.SessionID = sessionID
	frame.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[chat] websocket write failed for session=%s: %v", sessionID, err)
	}
}
