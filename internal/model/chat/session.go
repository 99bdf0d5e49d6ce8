package chat

import "time"

// Session captures a transient anonymous conversation. All state lives in
// memory for the lifetime of the process; nothing is persisted.
type Session struct {
	ID               string     `json:"id"`
	ConsentGiven     bool       `json:"consentGiven"`
	ConsentTimestamp *time.Time `json:"consentTimestamp,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastActivity     time.Time  `json:"lastActivity"`
}
