// Package checkin renders check-in message previews. Messages are never sent
// automatically; the endpoints only show what a check-in would look like.
package checkin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sjsu-mhc/concierge/internal/apperr"
	"github.com/sjsu-mhc/concierge/pkg/utils"
)

// Handler 回访消息的HTTP处理器
type Handler struct{}

// New 创建处理器
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/checkin/preview", h.handlePreview)
	r.Post("/checkin/customize", h.handleCustomize)
}

func (h *Handler) handlePreview(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    checkinPreview(),
		"message": "Check-in preview generated successfully",
	})
}

func (h *Handler) handleCustomize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID   string `json:"sessionId"`
		Preferences struct {
			Focus string `json:"focus"`
		} `json:"preferences"`
		LastInteraction struct {
			Topics    []string `json:"topics"`
			WasCrisis bool     `json:"wasCrisis"`
		} `json:"lastInteraction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondAppError(w, apperr.Validation("invalid request body", nil))
		return
	}
	if payload.SessionID == "" {
		utils.RespondAppError(w, apperr.Validation("Session ID is required", nil))
		return
	}

	preview := checkinPreview()

	switch payload.Preferences.Focus {
	case "academic":
		preview.Message = "Hey! How's your academic workload this week? Need any study strategies or stress management support?"
		preview.SuggestedActions = []string{
			"Get academic counseling support",
			"Find study skills workshops",
			"Explore time management resources",
			"Connect with academic peer mentors",
		}
	case "social":
		preview.Message = "Hi there! How are your social connections this week? Need any support with relationships or social anxiety?"
		preview.SuggestedActions = []string{
			"Join social skills groups",
			"Find peer support networks",
			"Explore social anxiety resources",
			"Connect with campus community groups",
		}
	case "emotional":
		preview.Message = "Hello! How are you feeling emotionally this week? Need any support with mood or emotional wellness?"
		preview.SuggestedActions = []string{
			"Schedule individual counseling",
			"Find mood management resources",
			"Explore emotional wellness workshops",
			"Connect with mental health peer support",
		}
	}

	if len(payload.LastInteraction.Topics) > 0 {
		preview.FollowUpQuestions = append(preview.FollowUpQuestions,
			fmt.Sprintf("I remember you mentioned %s. How are those going?", strings.Join(payload.LastInteraction.Topics, " and ")))
	}

	urgency := "normal"
	if payload.LastInteraction.WasCrisis {
		urgency = "high"
		preview.Message = "Hi! I wanted to check in after our last conversation. How are you doing today? Need any immediate support?"
		preview.SuggestedActions = []string{
			"Contact CAPS crisis line: (408) 924-5678",
			"Schedule urgent appointment",
			"Access immediate support resources",
			"Connect with 24/7 crisis support",
		}
	}

	personalization := "low"
	if len(payload.LastInteraction.Topics) > 0 {
		personalization = "high"
	}
	focus := payload.Preferences.Focus
	if focus == "" {
		focus = "general"
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"message":           preview.Message,
			"suggestedActions":  preview.SuggestedActions,
			"followUpQuestions": preview.FollowUpQuestions,
			"resources":         preview.Resources,
			"disclaimer":        preview.Disclaimer,
			"customization": map[string]string{
				"focus":           focus,
				"urgency":         urgency,
				"personalization": personalization,
			},
		},
		"message": "Customized check-in generated successfully",
	})
}

type checkinContent struct {
	Message           string            `json:"message"`
	SuggestedActions  []string          `json:"suggestedActions"`
	FollowUpQuestions []string          `json:"followUpQuestions"`
	Resources         []checkinResource `json:"resources"`
	Disclaimer        string            `json:"disclaimer"`
}

type checkinResource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func checkinPreview() checkinContent {
	greeting := "Hello"
	switch hour := time.Now().Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 17:
		greeting = "Good afternoon"
	default:
		greeting = "Good evening"
	}

	return checkinContent{
		Message: fmt.Sprintf("%s! How's your workload this week? Need any calming options or in-person support?", greeting),
		SuggestedActions: []string{
			"Book a CAPS appointment",
			"Find stress management resources",
			"Explore mindfulness workshops",
			"Connect with peer support groups",
		},
		FollowUpQuestions: []string{
			"How are you feeling about your current stress levels?",
			"Are there specific challenges you're facing this week?",
			"Would you like to explore some relaxation techniques?",
			"Do you need help finding time management strategies?",
		},
		Resources: []checkinResource{
			{
				Title:       "CAPS Drop-in Hours",
				Description: "Walk-in counseling available Monday-Friday, 10 AM - 3 PM",
				Link:        "https://www.sjsu.edu/counseling/drop-in/",
			},
			{
				Title:       "Stress Management Workshop",
				Description: "Weekly workshop on managing academic stress",
				Link:        "https://www.sjsu.edu/counseling/workshops/",
			},
			{
				Title:       "Mindfulness Resources",
				Description: "Guided meditation and relaxation techniques",
				Link:        "https://www.sjsu.edu/counseling/mindfulness/",
			},
		},
		Disclaimer: "This is a preview of a check-in message. No actual message will be sent automatically.",
	}
}
