package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHandle(t *testing.T) {
	startedAt := time.Now().Add(-90 * time.Second)
	handler := Handle(startedAt)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status code mismatch: got %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Uptime    string `json:"uptime"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if body.Status != "ok" {
		t.Errorf("Status mismatch: got %q, want ok", body.Status)
	}
	if _, err := time.Parse(time.RFC3339, body.Timestamp); err != nil {
		t.Errorf("Timestamp not RFC3339: %q", body.Timestamp)
	}

	uptime, err := time.ParseDuration(body.Uptime)
	if err != nil {
		t.Fatalf("Uptime not a duration: %q", body.Uptime)
	}
	if uptime < 90*time.Second {
		t.Errorf("Uptime mismatch: got %v, want >= 90s", uptime)
	}
}
