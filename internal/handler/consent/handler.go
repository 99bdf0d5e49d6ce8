package consent

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sjsu-mhc/concierge/internal/apperr"
	"github.com/sjsu-mhc/concierge/internal/service/session"
	"github.com/sjsu-mhc/concierge/pkg/utils"
)

// Handler 同意管理的HTTP处理器
type Handler struct {
	store *session.Store
}

// New 创建同意处理器
func New(store *session.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册同意相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/consent/give", h.handleGive)
	r.Post("/consent/withdraw", h.handleWithdraw)
	r.Get("/consent/status/{sessionID}", h.handleStatus)
	r.Get("/consent/create-session", h.handleCreateSession)
	r.Get("/consent/privacy-policy", h.handlePrivacyPolicy)
}

func (h *Handler) handleGive(w http.ResponseWriter, r *http.Request) {
	h.setConsent(w, r, true, "Consent recorded successfully")
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	h.setConsent(w, r, false, "Consent withdrawn successfully")
}

func (h *Handler) setConsent(w http.ResponseWriter, r *http.Request, given bool, message string) {
	var payload struct {
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondAppError(w, apperr.Validation("invalid request body", nil))
		return
	}
	if payload.SessionID == "" {
		utils.RespondAppError(w, apperr.Validation("Session ID is required", nil))
		return
	}

	updated, err := h.store.SetConsent(r.Context(), payload.SessionID, given)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			utils.RespondAppError(w, apperr.NotFound("No session found for this id", map[string]any{"sessionId": payload.SessionID}))
			return
		}
		utils.RespondAppError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
		"data": map[string]any{
			"sessionId":    updated.ID,
			"consentGiven": updated.ConsentGiven,
			"timestamp":    updated.ConsentTimestamp,
		},
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	given, exists := h.store.Consent(r.Context(), sessionID)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"sessionId":    sessionID,
			"consentGiven": given,
			"hasRecord":    exists,
		},
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	created := h.store.Create(r.Context())

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"sessionId": created.ID,
			"message":   "New session created. Consent required before using chat features.",
		},
	})
}

func (h *Handler) handlePrivacyPolicy(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"title":       "Privacy Policy - SJSU Mental Health Concierge",
			"lastUpdated": time.Now().UTC().Format(time.RFC3339),
			"sections": []map[string]string{
				{
					"title":   "Data Collection",
					"content": "We only collect the messages you send during your current session. No personal information is stored beyond the session duration.",
				},
				{
					"title":   "Data Usage",
					"content": "Your messages are used solely to provide you with relevant CAPS resources and support information. We do not use your data for any other purposes.",
				},
				{
					"title":   "Data Storage",
					"content": "Session data is stored temporarily in memory and is automatically deleted when your session ends. No persistent storage of personal data occurs.",
				},
				{
					"title":   "Third-Party Services",
					"content": "We may use an external assistant service to process your messages and provide relevant responses. This service also does not store your personal data.",
				},
				{
					"title":   "Your Rights",
					"content": "You can withdraw consent at any time, which will immediately stop data processing for your session.",
				},
				{
					"title":   "Contact",
					"content": "For questions about this privacy policy, contact SJSU CAPS at (408) 924-5678.",
				},
			},
		},
	})
}
