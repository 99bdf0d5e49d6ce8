package chat

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message persists individual turns for the session transcript. Messages are
// append-only; once stored they are never modified.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	IsCrisis  bool      `json:"isCrisis,omitempty"`
}
