package assistant

import (
	"strings"

	"github.com/sjsu-mhc/concierge/internal/model/card"
)

// mockReply answers deterministically when no agent is configured. Rules are
// evaluated in priority order; the first match wins.
func mockReply(req Request) Reply {
	message := strings.ToLower(req.Message)

	if strings.Contains(message, "appointment") || strings.Contains(message, "book") {
		return Reply{
			Response: "I can help you with CAPS appointments. Here are your options:",
			Cards: []card.SupportCard{
				{
					ID:           "appointment-1",
					Category:     card.CategoryBooking,
					Title:        "Schedule an Appointment",
					Summary:      "Book a counseling session with CAPS",
					Action:       "Call (408) 924-5678 to schedule",
					WhenWhere:    "Monday-Friday, 8:00 AM - 5:00 PM",
					OfficialLink: "https://www.sjsu.edu/counseling/appointments/",
					WhyForUser:   "You mentioned wanting to book an appointment",
				},
			},
			Confidence: 0.8,
		}
	}

	if strings.Contains(message, "drop") || strings.Contains(message, "walk") {
		return Reply{
			Response: "CAPS offers drop-in services for immediate support:",
			Cards: []card.SupportCard{
				{
					ID:           "dropin-1",
					Category:     card.CategoryDropIn,
					Title:        "Drop-in Counseling",
					Summary:      "Walk-in counseling sessions available",
					Action:       "Visit CAPS office during drop-in hours",
					WhenWhere:    "Monday-Friday, 10:00 AM - 3:00 PM",
					OfficialLink: "https://www.sjsu.edu/counseling/drop-in/",
					WhyForUser:   "You asked about drop-in services",
				},
			},
			Confidence: 0.8,
		}
	}

	if strings.Contains(message, "anxious") || strings.Contains(message, "stress") {
		return Reply{
			Response: "I understand you're feeling anxious or stressed. Here are some resources that might help:",
			Cards: []card.SupportCard{
				{
					ID:           "stress-1",
					Category:     card.CategoryResources,
					Title:        "Stress Management Resources",
					Summary:      "Tools and techniques for managing stress and anxiety",
					Action:       "Explore stress management workshops",
					WhenWhere:    "Various times throughout the semester",
					OfficialLink: "https://www.sjsu.edu/counseling/workshops/",
					WhyForUser:   "You mentioned feeling anxious or stressed",
				},
				{
					ID:           "mindfulness-1",
					Category:     card.CategoryResources,
					Title:        "Mindfulness and Relaxation",
					Summary:      "Guided meditation and relaxation techniques",
					Action:       "Access online mindfulness resources",
					WhenWhere:    "Available 24/7 online",
					OfficialLink: "https://www.sjsu.edu/counseling/mindfulness/",
					WhyForUser:   "Mindfulness can help with anxiety and stress",
				},
			},
			Confidence: 0.7,
		}
	}

	return Reply{
		Response: "I'm here to help you find the right CAPS resources. You can ask me about appointments, drop-in services, workshops, or any other mental health support options available at SJSU.",
		Cards: []card.SupportCard{
			{
				ID:           "general-1",
				Category:     card.CategoryGeneral,
				Title:        "CAPS General Information",
				Summary:      "Learn about all CAPS services and resources",
				Action:       "Visit the CAPS website",
				WhenWhere:    "Available 24/7 online",
				OfficialLink: "https://www.sjsu.edu/counseling/",
				WhyForUser:   "General information about CAPS services",
			},
		},
		Confidence: 0.6,
	}
}
