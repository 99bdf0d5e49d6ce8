// Package plan generates email previews and drafts for contacting CAPS.
// Nothing is ever sent; the handlers only render content for the student to
// copy into their own mail client.
package plan

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sjsu-mhc/concierge/internal/apperr"
	"github.com/sjsu-mhc/concierge/pkg/utils"
)

// Handler 邮件预览的HTTP处理器
type Handler struct{}

// New 创建处理器
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/plan/email", h.handleEmail)
	r.Post("/plan/draft", h.handleDraft)
}

type planRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	UserEmail string `json:"userEmail"`
	Urgency   string `json:"urgency"`
}

func (h *Handler) handleEmail(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    emailPreview(req.Message, req.UserEmail),
		"message": "Email preview generated successfully",
	})
}

func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePlanRequest(w, r)
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    draftEmail(req.Message, req.UserEmail, req.Urgency),
		"message": "Draft email generated successfully",
	})
}

func decodePlanRequest(w http.ResponseWriter, r *http.Request) (planRequest, bool) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondAppError(w, apperr.Validation("invalid request body", nil))
		return req, false
	}
	if req.SessionID == "" || req.Message == "" {
		utils.RespondAppError(w, apperr.Validation("Session ID and message are required", map[string]any{
			"sessionId": req.SessionID,
			"message":   req.Message != "",
		}))
		return req, false
	}
	return req, true
}

type emailContent struct {
	To         string `json:"to"`
	From       string `json:"from"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Template   string `json:"template"`
	Preview    string `json:"preview"`
	Disclaimer string `json:"disclaimer"`
}

func emailPreview(message, userEmail string) emailContent {
	lower := strings.ToLower(message)

	subject := "Inquiry about CAPS Services"
	template := "general"
	switch {
	case strings.Contains(lower, "appointment") || strings.Contains(lower, "book"):
		subject = "Request for CAPS Appointment"
		template = "appointment"
	case strings.Contains(lower, "crisis") || strings.Contains(lower, "urgent"):
		subject = "Urgent: Need CAPS Support"
		template = "crisis"
	case strings.Contains(lower, "workshop") || strings.Contains(lower, "group"):
		subject = "Interest in CAPS Workshops/Groups"
		template = "workshop"
	}

	from := userEmail
	if from == "" {
		from = "student@sjsu.edu"
	}

	return emailContent{
		To:         "caps@sjsu.edu",
		From:       from,
		Subject:    subject,
		Body:       emailBody(message, template),
		Template:   template,
		Preview:    fmt.Sprintf("This email would be sent to CAPS with your inquiry about: %s", inquirySummary(message)),
		Disclaimer: "This is a preview only. No email will be sent automatically.",
	}
}

func draftEmail(message, userEmail, urgency string) map[string]any {
	preview := emailPreview(message, userEmail)

	if urgency == "high" || urgency == "crisis" {
		preview.Subject = "[URGENT] " + preview.Subject
		preview.Body = "URGENT REQUEST\n\n" + preview.Body
	}

	return map[string]any{
		"to":         preview.To,
		"from":       preview.From,
		"subject":    preview.Subject,
		"body":       preview.Body,
		"template":   preview.Template,
		"preview":    preview.Preview,
		"disclaimer": preview.Disclaimer,
		"instructions": []string{
			"Copy this email content",
			"Open your email client",
			"Paste the content and send to caps@sjsu.edu",
			"Or call CAPS directly at (408) 924-5678 for immediate assistance",
		},
		"alternativeContact": map[string]string{
			"phone":    "(408) 924-5678",
			"website":  "https://www.sjsu.edu/counseling/",
			"location": "Student Wellness Center, Room 300B",
		},
	}
}

func emailBody(message, template string) string {
	switch template {
	case "appointment":
		return fmt.Sprintf("Dear CAPS Team,\n\nI would like to schedule an appointment to discuss: %s\n\nPlease let me know about available appointment times.\n\nThank you,\nSJSU Student", message)
	case "crisis":
		return fmt.Sprintf("Dear CAPS Team,\n\nI am experiencing some challenges and would like to discuss: %s\n\nI would appreciate immediate support or guidance.\n\nThank you,\nSJSU Student", message)
	case "workshop":
		return fmt.Sprintf("Dear CAPS Team,\n\nI am interested in learning more about: %s\n\nCould you provide information about relevant workshops or group sessions?\n\nThank you,\nSJSU Student", message)
	default:
		return fmt.Sprintf("Dear CAPS Team,\n\nI am reaching out regarding the following: %s\n\nI would appreciate any guidance or support you can provide.\n\nThank you,\nSJSU Student", message)
	}
}

func inquirySummary(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "appointment"):
		return "scheduling an appointment"
	case strings.Contains(lower, "crisis"):
		return "crisis support"
	case strings.Contains(lower, "workshop"):
		return "workshops or groups"
	case strings.Contains(lower, "anxious") || strings.Contains(lower, "stress"):
		return "stress and anxiety support"
	case strings.Contains(lower, "depressed") || strings.Contains(lower, "sad"):
		return "depression support"
	default:
		return "general mental health support"
	}
}
