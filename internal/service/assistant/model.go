package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const conciergeSystemPrompt = "You are the SJSU mental health concierge. " +
	"You help students find Counseling & Psychological Services resources: " +
	"appointments, drop-in counseling, workshops and self-help material. " +
	"Keep answers short, warm and practical, and always point to official " +
	"CAPS channels rather than giving clinical advice. If a student appears " +
	"to be in danger, direct them to the CAPS crisis line at (408) 924-5678."

// ModelGateway answers chat messages with a direct LLM call instead of the
// orchestrate agent. It honors the same fail-soft contract: a failed or empty
// model response degrades to the canned fallback reply.
type ModelGateway struct {
	chain   compose.Runnable[map[string]any, *schema.Message]
	timeout time.Duration
}

// NewModelGateway compiles the concierge prompt chain on top of the provided
// chat model.
func NewModelGateway(ctx context.Context, chatModel model.ChatModel) (*ModelGateway, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(conciergeSystemPrompt),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile concierge chain: %w", err)
	}

	return &ModelGateway{chain: runnable, timeout: defaultSendTimeout}, nil
}

// SendMessage runs the model under the gateway timeout. Never errors.
func (g *ModelGateway) SendMessage(ctx context.Context, req Request) Reply {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	msg, err := g.chain.Invoke(ctx, map[string]any{"query": buildQuery(req)})
	if err != nil {
		log.Printf("[gateway] model invoke failed for session=%s: %v", req.SessionID, err)
		return fallbackReply()
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		log.Printf("[gateway] model returned empty response for session=%s", req.SessionID)
		return fallbackReply()
	}

	return Reply{
		Response:   msg.Content,
		Confidence: 0.9,
		Metadata:   map[string]any{"source": "ark"},
	}
}

// Status reports the model backend as configured and available; only send
// failures count as unavailability.
func (g *ModelGateway) Status(_ context.Context) Status {
	return Status{Available: true, Configured: true}
}

func buildQuery(req Request) string {
	query := req.Message
	if req.Context == nil {
		return query
	}
	if mood, ok := req.Context["hasMoodKeywords"].(bool); ok && mood {
		query += "\n\nNote: the student may be showing signs of emotional distress; respond with extra care."
	}
	return query
}

var _ Gateway = (*ModelGateway)(nil)
