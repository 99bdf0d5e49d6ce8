// Package card defines the resource cards surfaced alongside chat replies.
// Field names follow the public API contract shared with the web client.
package card

// Card categories.
const (
	CategorySafety    = "safety"
	CategoryBooking   = "booking"
	CategoryDropIn    = "dropin"
	CategoryResources = "resources"
	CategoryGeneral   = "general"
)

// Priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// SupportCard is a single actionable resource shown to the student.
type SupportCard struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Action        string `json:"action,omitempty"`
	WhenWhere     string `json:"when_where,omitempty"`
	OfficialLink  string `json:"official_link"`
	WhyForUser    string `json:"why_for_user"`
	Priority      string `json:"priority,omitempty"`
}

// EmergencyContact is one entry on a safety card.
type EmergencyContact struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Description string `json:"description"`
	Available   string `json:"available"`
}

// SafetyCard is a high-priority support card carrying emergency contacts.
// It always lists exactly four contacts in a fixed order: the CAPS crisis
// line, the national lifeline, the crisis text line, and emergency services.
type SafetyCard struct {
	SupportCard
	EmergencyContacts []EmergencyContact `json:"emergency_contacts"`
}
