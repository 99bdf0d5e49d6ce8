package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMockReplyAppointmentRule(t *testing.T) {
	g := NewHTTPGateway(HTTPConfig{})

	reply := g.SendMessage(context.Background(), Request{Message: "I want to book an appointment", SessionID: "s1"})
	if reply.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %f", reply.Confidence)
	}
	if len(reply.Cards) != 1 || reply.Cards[0].ID != "appointment-1" {
		t.Fatalf("expected appointment card, got %+v", reply.Cards)
	}
}

func TestMockReplyDropInRule(t *testing.T) {
	g := NewHTTPGateway(HTTPConfig{})

	reply := g.SendMessage(context.Background(), Request{Message: "Can I just walk in?"})
	if len(reply.Cards) != 1 || reply.Cards[0].ID != "dropin-1" {
		t.Fatalf("expected drop-in card, got %+v", reply.Cards)
	}
}

func TestMockReplyStressRuleReturnsTwoCards(t *testing.T) {
	g := NewHTTPGateway(HTTPConfig{})

	reply := g.SendMessage(context.Background(), Request{Message: "so much stress lately"})
	if reply.Confidence != 0.7 {
		t.Fatalf("expected confidence 0.7, got %f", reply.Confidence)
	}
	if len(reply.Cards) != 2 {
		t.Fatalf("expected two cards, got %d", len(reply.Cards))
	}
}

func TestMockReplyDefaultRule(t *testing.T) {
	g := NewHTTPGateway(HTTPConfig{})

	reply := g.SendMessage(context.Background(), Request{Message: "hello there"})
	if reply.Confidence != 0.6 {
		t.Fatalf("expected confidence 0.6, got %f", reply.Confidence)
	}
	if len(reply.Cards) != 1 || reply.Cards[0].ID != "general-1" {
		t.Fatalf("expected general card, got %+v", reply.Cards)
	}
}

func TestMockReplyFirstMatchWins(t *testing.T) {
	g := NewHTTPGateway(HTTPConfig{})

	reply := g.SendMessage(context.Background(), Request{Message: "anxious, need to book something"})
	if len(reply.Cards) != 1 || reply.Cards[0].ID != "appointment-1" {
		t.Fatalf("appointment rule should win over stress rule, got %+v", reply.Cards)
	}
}

func TestSendMessageForwardsRequest(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Reply{Response: "agent answer", Confidence: 0.95})
	}))
	defer server.Close()

	g := NewHTTPGateway(HTTPConfig{AgentURL: server.URL, APIKey: "secret"})
	reply := g.SendMessage(context.Background(), Request{
		Message:   "hi",
		SessionID: "s1",
		Context:   map[string]any{"messageCount": 3},
	})

	if reply.Response != "agent answer" {
		t.Fatalf("unexpected reply: %q", reply.Response)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotBody["message"] != "hi" || gotBody["sessionId"] != "s1" {
		t.Fatalf("unexpected request body: %v", gotBody)
	}
}

func TestSendMessageFailsSoftOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	g := NewHTTPGateway(HTTPConfig{AgentURL: server.URL})
	reply := g.SendMessage(context.Background(), Request{Message: "hi"})

	if reply.Confidence != 0.1 {
		t.Fatalf("expected degraded confidence 0.1, got %f", reply.Confidence)
	}
	if reply.Metadata["error"] != "External API unavailable" {
		t.Fatalf("expected unavailable marker, got %v", reply.Metadata)
	}
}

func TestSendMessageFailsSoftOnDeadEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	g := NewHTTPGateway(HTTPConfig{AgentURL: url})
	reply := g.SendMessage(context.Background(), Request{Message: "hi"})

	if reply.Confidence != 0.1 {
		t.Fatalf("expected degraded confidence 0.1, got %f", reply.Confidence)
	}
	if reply.Response == "" {
		t.Fatal("degraded reply must still carry text")
	}
}

func TestSendMessageClampsConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Reply{Response: "over-confident", Confidence: 4.2})
	}))
	defer server.Close()

	g := NewHTTPGateway(HTTPConfig{AgentURL: server.URL})
	reply := g.SendMessage(context.Background(), Request{Message: "hi"})

	if reply.Confidence != 1.0 {
		t.Fatalf("expected clamped confidence 1.0, got %f", reply.Confidence)
	}
}

func TestStatusUnconfigured(t *testing.T) {
	g := NewHTTPGateway(HTTPConfig{})

	status := g.Status(context.Background())
	if status.Available || status.Configured {
		t.Fatalf("unconfigured gateway must report both false, got %+v", status)
	}
}

func TestStatusFailOpenOnProbeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	g := NewHTTPGateway(HTTPConfig{AgentURL: url + "/chat"})
	status := g.Status(context.Background())

	if !status.Available || !status.Configured {
		t.Fatalf("configured gateway must fail open, got %+v", status)
	}
}
