// Package mediator orchestrates one chat turn: validation, the consent gate,
// crisis detection, and either a safety intercept or delegation to the
// external assistant.
package mediator

import (
	"context"
	"errors"
	"log"

	"github.com/sjsu-mhc/concierge/internal/analysis/crisis"
	"github.com/sjsu-mhc/concierge/internal/apperr"
	"github.com/sjsu-mhc/concierge/internal/model/chat"
	"github.com/sjsu-mhc/concierge/internal/service/assistant"
	"github.com/sjsu-mhc/concierge/internal/service/session"
)

// crisisInterceptMessage replaces the assistant reply when safety resources
// are shown instead.
const crisisInterceptMessage = "Crisis detected - showing safety resources first"

// Response is the payload returned for an accepted chat turn. Cards holds
// card.SupportCard values, or a single *card.SafetyCard on crisis intercepts.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Cards   []any  `json:"cards"`
}

// Service wires the session store, crisis detector and assistant gateway.
type Service struct {
	store    *session.Store
	detector *crisis.Detector
	gateway  assistant.Gateway
}

// New builds the mediator.
func New(store *session.Store, detector *crisis.Detector, gateway assistant.Gateway) *Service {
	return &Service{
		store:    store,
		detector: detector,
		gateway:  gateway,
	}
}

// SendMessage processes one user message.
//
// Local failures (missing input, missing consent, unknown session) surface as
// *apperr.Error. Once the message is accepted and delegated, the gateway's
// fail-soft contract guarantees a response; there is no error path back to
// the caller from that point.
func (s *Service) SendMessage(ctx context.Context, sessionID, message string) (*Response, error) {
	if sessionID == "" || message == "" {
		return nil, apperr.Validation("Session ID and message are required", map[string]any{
			"sessionId": sessionID,
			"message":   message != "",
		})
	}

	given, exists := s.store.Consent(ctx, sessionID)
	if !exists || !given {
		return nil, apperr.Unauthorized("Consent required before sending messages", map[string]any{
			"sessionId":  sessionID,
			"hasConsent": given,
		})
	}

	detection := s.detector.Detect(message)

	userMessage := chat.Message{
		Content:  message,
		Role:     chat.RoleUser,
		IsCrisis: detection.IsCrisis,
	}
	if _, err := s.store.AppendMessage(ctx, sessionID, userMessage); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, apperr.NotFound("Session not found", map[string]any{"sessionId": sessionID})
		}
		return nil, apperr.Internal("Failed to record message", map[string]any{"sessionId": sessionID})
	}

	// Crisis intercept: the safety card is the whole response and the
	// assistant is never consulted.
	if detection.IsCrisis && detection.SafetyCard != nil {
		log.Printf("[mediator] crisis intercept for session=%s keywords=%v", sessionID, detection.Keywords)
		return &Response{
			Success: true,
			Message: crisisInterceptMessage,
			Cards:   []any{detection.SafetyCard},
		}, nil
	}

	messageCount, err := s.store.MessageCount(ctx, sessionID)
	if err != nil {
		messageCount = 1
	}

	reply := s.gateway.SendMessage(ctx, assistant.Request{
		Message:   message,
		SessionID: sessionID,
		Context: map[string]any{
			"hasMoodKeywords":  s.detector.HasMoodKeywords(message),
			"detectedKeywords": detection.Keywords,
			"messageCount":     messageCount,
		},
	})

	assistantMessage := chat.Message{
		Content: reply.Response,
		Role:    chat.RoleAssistant,
	}
	if _, err := s.store.AppendMessage(ctx, sessionID, assistantMessage); err != nil {
		// The session vanished mid-turn; the reply still goes out.
		log.Printf("[mediator] failed to record assistant message for session=%s: %v", sessionID, err)
	}

	cards := make([]any, 0, len(reply.Cards))
	for _, c := range reply.Cards {
		cards = append(cards, c)
	}

	return &Response{
		Success: true,
		Message: reply.Response,
		Cards:   cards,
	}, nil
}
