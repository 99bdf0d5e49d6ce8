package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sjsu-mhc/concierge/internal/analysis/crisis"
	"github.com/sjsu-mhc/concierge/internal/apperr"
	"github.com/sjsu-mhc/concierge/internal/service/assistant"
	"github.com/sjsu-mhc/concierge/internal/service/mediator"
	"github.com/sjsu-mhc/concierge/internal/service/session"
	"github.com/sjsu-mhc/concierge/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	mediatorSvc *mediator.Service
	store       *session.Store
	gateway     assistant.Gateway
	detector    *crisis.Detector
}

// New 创建聊天处理器
func New(mediatorSvc *mediator.Service, store *session.Store, gateway assistant.Gateway, detector *crisis.Detector) *Handler {
	return &Handler{
		mediatorSvc: mediatorSvc,
		store:       store,
		gateway:     gateway,
		detector:    detector,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/send", h.handleSend)
	r.Get("/chat/history/{sessionID}", h.handleHistory)
	r.Delete("/chat/session/{sessionID}", h.handleDeleteSession)
	r.Get("/chat/status", h.handleStatus)
	r.Get("/chat/stream/{sessionID}", h.handleStream)
	r.Get("/chat/ws/{sessionID}", h.handleWebSocket)
}

// handleSend 处理一次聊天请求
func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondAppError(w, apperr.Validation("invalid request body", nil))
		return
	}

	resp, err := h.mediatorSvc.SendMessage(r.Context(), payload.SessionID, payload.Message)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// handleHistory 返回会话消息记录
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.store.History(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondAppError(w, apperr.NotFound("Session not found", map[string]any{"sessionId": sessionID}))
			return
		}
		utils.RespondAppError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"sessionId":    sessionID,
			"messages":     messages,
			"messageCount": len(messages),
		},
	})
}

// handleDeleteSession 清除会话
func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if !h.store.Delete(r.Context(), sessionID) {
		utils.RespondAppError(w, apperr.NotFound("Session not found", map[string]any{"sessionId": sessionID}))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Session cleared successfully",
	})
}

// handleStatus 返回服务与网关状态
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	gatewayStatus := h.gateway.Status(r.Context())

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"service":        "SJSU Mental Health Concierge Chat",
			"status":         "operational",
			"assistant":      gatewayStatus,
			"activeSessions": h.store.Count(),
			"crisisDetection": map[string]any{
				"enabled":  true,
				"keywords": h.detector.CrisisKeywordCount(),
			},
		},
	})
}

// handleStream 通过SSE返回一次聊天的处理结果
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	message := r.URL.Query().Get("message")

	if message == "" {
		utils.RespondAppError(w, apperr.Validation("message query parameter is required", nil))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "start", map[string]any{"sessionId": sessionID})

	resp, err := h.mediatorSvc.SendMessage(r.Context(), sessionID, message)
	if err != nil {
		appErr := apperr.From(err)
		utils.SendSSEEvent(w, flusher, "error", map[string]any{
			"error":   appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	if len(resp.Cards) > 0 {
		utils.SendSSEEvent(w, flusher, "cards", resp.Cards)
	}
	utils.SendSSEEvent(w, flusher, "message", map[string]any{"message": resp.Message})
	utils.SendSSEEvent(w, flusher, "end", map[string]any{"sessionId": sessionID, "finished": true})
}
