// Package assistant is the boundary to the external concierge assistant.
//
// Whatever backend serves a request, SendMessage never surfaces a failure:
// the chat surface must always produce a response, so every transport or
// upstream error is converted into a degraded reply pointing at the CAPS
// phone line.
package assistant

import (
	"context"

	"github.com/sjsu-mhc/concierge/internal/model/card"
)

// Request carries one user message to the assistant.
type Request struct {
	Message   string         `json:"message"`
	SessionID string         `json:"sessionId"`
	Context   map[string]any `json:"context"`
}

// Reply is the assistant's answer. Confidence is best-effort and clamped to
// [0,1] before the reply leaves the gateway.
type Reply struct {
	Response   string             `json:"response"`
	Cards      []card.SupportCard `json:"cards,omitempty"`
	Confidence float64            `json:"confidence,omitempty"`
	Metadata   map[string]any     `json:"metadata,omitempty"`
}

// Status reports gateway health for the status endpoint.
type Status struct {
	Available  bool `json:"available"`
	Configured bool `json:"configured"`
}

// Gateway answers chat messages. SendMessage has no error return on purpose:
// the fail-soft contract makes an upstream failure unrepresentable to callers.
type Gateway interface {
	SendMessage(ctx context.Context, req Request) Reply
	Status(ctx context.Context) Status
}

// fallbackReply is returned whenever the external assistant cannot be
// reached or answers with garbage.
func fallbackReply() Reply {
	return Reply{
		Response:   "I'm having trouble connecting to our support system right now. Please try again in a moment, or contact CAPS directly at (408) 924-5678.",
		Confidence: 0.1,
		Metadata:   map[string]any{"error": "External API unavailable"},
	}
}

func clampConfidence(reply Reply) Reply {
	if reply.Confidence < 0 {
		reply.Confidence = 0
	}
	if reply.Confidence > 1 {
		reply.Confidence = 1
	}
	return reply
}
