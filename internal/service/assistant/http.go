package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	defaultSendTimeout  = 30 * time.Second
	defaultProbeTimeout = 5 * time.Second
)

// HTTPConfig configures the HTTP gateway. An empty AgentURL selects the
// built-in mock responses, which keeps local development workable without
// any upstream agent.
type HTTPConfig struct {
	AgentURL     string
	APIKey       string
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

// HTTPGateway forwards messages to the orchestrate agent over HTTP.
type HTTPGateway struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	probeClient *http.Client
}

// NewHTTPGateway builds a gateway from config, applying the 30s send and 5s
// probe timeout defaults.
func NewHTTPGateway(cfg HTTPConfig) *HTTPGateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}

	if cfg.AgentURL == "" {
		log.Println("[gateway] agent URL not configured - using mock responses")
	}

	return &HTTPGateway{
		baseURL:     cfg.AgentURL,
		apiKey:      cfg.APIKey,
		client:      &http.Client{Timeout: timeout},
		probeClient: &http.Client{Timeout: probeTimeout},
	}
}

// SendMessage posts the message to the agent. Any failure along the way
// degrades to the canned fallback reply; it never returns an error.
func (g *HTTPGateway) SendMessage(ctx context.Context, req Request) Reply {
	if g.baseURL == "" {
		return mockReply(req)
	}

	payload, err := json.Marshal(map[string]any{
		"message":   req.Message,
		"sessionId": req.SessionID,
		"context":   contextOrEmpty(req.Context),
	})
	if err != nil {
		log.Printf("[gateway] failed to marshal request: %v", err)
		return fallbackReply()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(payload))
	if err != nil {
		log.Printf("[gateway] failed to build request: %v", err)
		return fallbackReply()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		log.Printf("[gateway] agent call failed: %v", err)
		return fallbackReply()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[gateway] agent returned status %d", resp.StatusCode)
		return fallbackReply()
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		log.Printf("[gateway] failed to decode agent response: %v", err)
		return fallbackReply()
	}

	return clampConfidence(reply)
}

// Status probes the agent's health endpoint. Probe failure is not treated as
// proof of unavailability; only SendMessage failures are, so a configured
// gateway always reports available.
func (g *HTTPGateway) Status(ctx context.Context) Status {
	if g.baseURL == "" {
		return Status{Available: false, Configured: false}
	}

	healthURL := strings.Replace(g.baseURL, "/chat", "/health", 1)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return Status{Available: true, Configured: true}
	}

	resp, err := g.probeClient.Do(httpReq)
	if err != nil {
		log.Printf("[gateway] health probe failed: %v", err)
		return Status{Available: true, Configured: true}
	}
	resp.Body.Close()

	return Status{Available: true, Configured: true}
}

// Configured reports whether an agent URL is set.
func (g *HTTPGateway) Configured() bool {
	return g.baseURL != ""
}

func contextOrEmpty(ctx map[string]any) map[string]any {
	if ctx == nil {
		return map[string]any{}
	}
	return ctx
}

var _ Gateway = (*HTTPGateway)(nil)

// String implements fmt.Stringer for log lines.
func (g *HTTPGateway) String() string {
	if g.baseURL == "" {
		return "mock"
	}
	return fmt.Sprintf("http(%s)", g.baseURL)
}
