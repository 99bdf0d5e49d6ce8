package consent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sjsu-mhc/concierge/internal/service/session"
)

func setupRouter() (*chi.Mux, *session.Store) {
	store := session.NewStore()
	handler := New(store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func postJSON(r http.Handler, path string, body map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/consent/create-session", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("create-session: expected 200, got %d", resp.Code)
	}

	var body struct {
		Data struct {
			SessionID string `json:"sessionId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode create-session response: %v", err)
	}
	if body.Data.SessionID == "" {
		t.Fatal("expected non-empty session id")
	}
	return body.Data.SessionID
}

func consentStatus(t *testing.T, r http.Handler, sessionID string) (given bool, hasRecord bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/consent/status/"+sessionID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", resp.Code)
	}

	var body struct {
		Data struct {
			ConsentGiven bool `json:"consentGiven"`
			HasRecord    bool `json:"hasRecord"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode status response: %v", err)
	}
	return body.Data.ConsentGiven, body.Data.HasRecord
}

func TestConsentLifecycle(t *testing.T) {
	r, _ := setupRouter()
	sessionID := createSession(t, r)

	if given, hasRecord := consentStatus(t, r, sessionID); given || !hasRecord {
		t.Fatalf("fresh session: expected given=false hasRecord=true, got %v/%v", given, hasRecord)
	}

	if resp := postJSON(r, "/consent/give", map[string]string{"sessionId": sessionID}); resp.Code != http.StatusOK {
		t.Fatalf("give: expected 200, got %d", resp.Code)
	}
	if given, _ := consentStatus(t, r, sessionID); !given {
		t.Fatal("expected consent recorded")
	}

	if resp := postJSON(r, "/consent/withdraw", map[string]string{"sessionId": sessionID}); resp.Code != http.StatusOK {
		t.Fatalf("withdraw: expected 200, got %d", resp.Code)
	}
	if given, _ := consentStatus(t, r, sessionID); given {
		t.Fatal("expected consent withdrawn")
	}
}

func TestGiveConsentUnknownSession(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/consent/give", map[string]string{"sessionId": "missing"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestGiveConsentMissingSessionID(t *testing.T) {
	r, _ := setupRouter()

	resp := postJSON(r, "/consent/give", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestStatusUnknownSessionReadsFalse(t *testing.T) {
	r, _ := setupRouter()

	given, hasRecord := consentStatus(t, r, "missing")
	if given || hasRecord {
		t.Fatalf("unknown session: expected false/false, got %v/%v", given, hasRecord)
	}
}

func TestPrivacyPolicy(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/consent/privacy-policy", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Data struct {
			Sections []any `json:"sections"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode policy response: %v", err)
	}
	if len(body.Data.Sections) != 6 {
		t.Fatalf("expected 6 policy sections, got %d", len(body.Data.Sections))
	}
}
