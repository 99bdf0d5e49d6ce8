package crisis

import (
	"reflect"
	"testing"
)

func TestDetectCrisisPhraseClampsConfidence(t *testing.T) {
	d := NewDetector()
	result := d.Detect("I want to kill myself")

	if !result.IsCrisis {
		t.Fatal("expected crisis for self-harm phrase")
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected clamped confidence 1.0, got %f", result.Confidence)
	}
	if result.SafetyCard == nil {
		t.Fatal("expected safety card for crisis result")
	}
	if len(result.SafetyCard.EmergencyContacts) != 4 {
		t.Fatalf("expected exactly 4 emergency contacts, got %d", len(result.SafetyCard.EmergencyContacts))
	}
}

func TestDetectEmergencyContactOrder(t *testing.T) {
	d := NewDetector()
	result := d.Detect("suicidal")

	if result.SafetyCard == nil {
		t.Fatal("expected safety card")
	}
	want := []string{
		"CAPS 24/7 Crisis Line",
		"National Suicide Prevention Lifeline",
		"Crisis Text Line",
		"Emergency Services",
	}
	for i, contact := range result.SafetyCard.EmergencyContacts {
		if contact.Name != want[i] {
			t.Fatalf("contact %d: got %q want %q", i, contact.Name, want[i])
		}
	}
	if result.SafetyCard.EmergencyContacts[1].Number != "988" {
		t.Fatalf("expected lifeline number 988, got %q", result.SafetyCard.EmergencyContacts[1].Number)
	}
	if result.SafetyCard.EmergencyContacts[3].Number != "911" {
		t.Fatalf("expected emergency number 911, got %q", result.SafetyCard.EmergencyContacts[3].Number)
	}
}

func TestDetectMoodOnlyIsNotCrisis(t *testing.T) {
	d := NewDetector()
	result := d.Detect("I am stressed about finals")

	if result.IsCrisis {
		t.Fatal("mood-only message must not be classified as crisis")
	}
	if result.Confidence != 0.3 {
		t.Fatalf("expected confidence 0.3 for one mood keyword, got %f", result.Confidence)
	}
	if result.SafetyCard != nil {
		t.Fatal("non-crisis result must not carry a safety card")
	}
	if !d.HasMoodKeywords("I am stressed about finals") {
		t.Fatal("expected mood signal for stressed message")
	}
}

func TestDetectEveryCrisisKeywordTriggersCrisis(t *testing.T) {
	d := NewDetector()
	for _, keyword := range defaultCrisisKeywords {
		result := d.Detect("my message mentions " + keyword)
		if !result.IsCrisis {
			t.Fatalf("keyword %q should trigger crisis", keyword)
		}
	}
}

func TestDetectPatternWithoutKeyword(t *testing.T) {
	d := NewDetector()
	result := d.Detect("I need urgent help right now")

	if !result.IsCrisis {
		t.Fatal("urgent-help pattern should trigger crisis")
	}
	hasTag := false
	for _, keyword := range result.Keywords {
		if keyword == patternTag {
			hasTag = true
		}
	}
	if !hasTag {
		t.Fatalf("expected %s tag in keywords, got %v", patternTag, result.Keywords)
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	d := NewDetector()
	first := d.Detect("feeling overwhelmed and anxious, can't cope anymore")
	second := d.Detect("feeling overwhelmed and anxious, can't cope anymore")

	if first.IsCrisis != second.IsCrisis || first.Confidence != second.Confidence {
		t.Fatal("detection must be deterministic")
	}
	if !reflect.DeepEqual(first.Keywords, second.Keywords) {
		t.Fatalf("keyword lists differ: %v vs %v", first.Keywords, second.Keywords)
	}
}

func TestDetectConfidenceStaysInRange(t *testing.T) {
	d := NewDetector()
	result := d.Detect("suicidal danger panic kill myself end it all not worth living can't cope urgent help")

	if result.Confidence < 0 || result.Confidence > 1 {
		t.Fatalf("confidence out of range: %f", result.Confidence)
	}
}

func TestDetectNeutralMessage(t *testing.T) {
	d := NewDetector()
	result := d.Detect("what are the library opening hours")

	if result.IsCrisis {
		t.Fatal("neutral message must not be crisis")
	}
	if result.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %f", result.Confidence)
	}
	if len(result.Keywords) != 0 {
		t.Fatalf("expected no keywords, got %v", result.Keywords)
	}
}

func TestAllKeywordsListsCrisisFirst(t *testing.T) {
	d := NewDetector()
	keywords := d.AllKeywords("I feel sad and in danger")

	want := []string{"danger", "sad"}
	if !reflect.DeepEqual(keywords, want) {
		t.Fatalf("got %v want %v", keywords, want)
	}
}
