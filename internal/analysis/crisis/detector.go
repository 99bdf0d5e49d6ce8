// Package crisis scores chat messages for self-harm risk and mood signals.
// Detection is deterministic keyword and pattern matching; no model calls.
package crisis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sjsu-mhc/concierge/internal/model/card"
)

// Scoring weights. Crisis keywords dominate; mood keywords alone never cross
// the decision threshold.
const (
	crisisKeywordWeight = 0.8
	moodKeywordWeight   = 0.3
	patternWeight       = 0.9
	crisisThreshold     = 0.5
)

// patternTag marks a regex hit in the detected keyword list.
const patternTag = "crisis_pattern"

var defaultCrisisKeywords = []string{
	"suicidal",
	"harm",
	"panic",
	"can't cope",
	"danger",
	"kill myself",
	"end it all",
	"not worth living",
}

var defaultMoodKeywords = []string{
	"anxious",
	"overwhelmed",
	"stressed",
	"panic",
	"depressed",
	"sad",
	"worried",
	"scared",
	"frustrated",
}

var crisisPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(kill|hurt|harm)\s+(myself|me)\b`),
	regexp.MustCompile(`(?i)\b(end\s+it\s+all|not\s+worth\s+living)\b`),
	regexp.MustCompile(`(?i)\b(can't\s+cope|can't\s+handle)\b`),
	regexp.MustCompile(`(?i)\b(emergency|urgent|immediate)\s+(help|support)\b`),
}

// Result is the outcome of scoring one message. Keywords preserve scan order
// and may contain duplicates. SafetyCard is set iff IsCrisis is true.
type Result struct {
	IsCrisis   bool             `json:"isCrisis"`
	Keywords   []string         `json:"keywords"`
	Confidence float64          `json:"confidence"`
	SafetyCard *card.SafetyCard `json:"safetyCard,omitempty"`
}

// Detector matches messages against configured keyword lists and the fixed
// crisis patterns. The zero value is not usable; construct with NewDetector.
type Detector struct {
	crisisKeywords []string
	moodKeywords   []string
}

// NewDetector returns a detector loaded with the default keyword lists.
func NewDetector() *Detector {
	return &Detector{
		crisisKeywords: defaultCrisisKeywords,
		moodKeywords:   defaultMoodKeywords,
	}
}

// Detect scores a message for crisis indicators. Pure and deterministic apart
// from the generated safety card identifier.
func (d *Detector) Detect(message string) Result {
	lower := strings.ToLower(message)
	var found []string
	confidence := 0.0

	for _, keyword := range d.crisisKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found = append(found, keyword)
			confidence += crisisKeywordWeight
		}
	}

	for _, keyword := range d.moodKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found = append(found, keyword)
			confidence += moodKeywordWeight
		}
	}

	for _, pattern := range crisisPatterns {
		if pattern.MatchString(message) {
			found = append(found, patternTag)
			confidence += patternWeight
		}
	}

	if confidence > 1.0 {
		confidence = 1.0
	}

	// The keyword clause is near-redundant with the threshold under the
	// current weights, but it is the literal decision rule; keep both so
	// future weight tuning cannot silently change the decision.
	isCrisis := confidence >= crisisThreshold || d.containsCrisisKeyword(found)

	result := Result{
		IsCrisis:   isCrisis,
		Keywords:   found,
		Confidence: confidence,
	}
	if isCrisis {
		result.SafetyCard = newSafetyCard(found)
	}
	return result
}

// HasMoodKeywords reports whether the message contains any mood keyword.
// It never influences the crisis decision; it only enriches the context sent
// to the external assistant.
func (d *Detector) HasMoodKeywords(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range d.moodKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// AllKeywords returns every configured keyword present in the message,
// crisis keywords first.
func (d *Detector) AllKeywords(message string) []string {
	lower := strings.ToLower(message)
	var found []string
	for _, keyword := range append(append([]string(nil), d.crisisKeywords...), d.moodKeywords...) {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found = append(found, keyword)
		}
	}
	return found
}

// CrisisKeywordCount exposes the configured crisis keyword count for status
// reporting.
func (d *Detector) CrisisKeywordCount() int {
	return len(d.crisisKeywords)
}

func (d *Detector) containsCrisisKeyword(keywords []string) bool {
	for _, keyword := range keywords {
		for _, crisisKeyword := range d.crisisKeywords {
			if keyword == crisisKeyword {
				return true
			}
		}
	}
	return false
}

func newSafetyCard(keywords []string) *card.SafetyCard {
	return &card.SafetyCard{
		SupportCard: card.SupportCard{
			ID:           "safety-" + uuid.NewString(),
			Category:     card.CategorySafety,
			Title:        "Immediate Support Available",
			Summary:      "If you're in immediate danger or having thoughts of self-harm, please reach out for help right away.",
			Action:       "Contact emergency services or CAPS immediately",
			WhenWhere:    "Available 24/7",
			OfficialLink: "https://www.sjsu.edu/counseling/",
			WhyForUser:   fmt.Sprintf("You used words that may indicate crisis (%s); I'm showing safety info first.", strings.Join(keywords, ", ")),
			Priority:     card.PriorityHigh,
		},
		EmergencyContacts: []card.EmergencyContact{
			{
				Name:        "CAPS 24/7 Crisis Line",
				Number:      "(408) 924-5678",
				Description: "SJSU Counseling & Psychological Services",
				Available:   "24/7",
			},
			{
				Name:        "National Suicide Prevention Lifeline",
				Number:      "988",
				Description: "National crisis support",
				Available:   "24/7",
			},
			{
				Name:        "Crisis Text Line",
				Number:      "Text HOME to 741741",
				Description: "Text-based crisis support",
				Available:   "24/7",
			},
			{
				Name:        "Emergency Services",
				Number:      "911",
				Description: "For immediate life-threatening emergencies",
				Available:   "24/7",
			},
		},
	}
}
