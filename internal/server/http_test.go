package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atsblitz/internal/analyzer"
	"atsblitz/internal/config"
	atsErrors "atsblitz/internal/errors"
	"atsblitz/internal/observability"
	"atsblitz/internal/types"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := atsErrors.NewLogger(slog.LevelError)
	return &Server{
		Host:           "localhost",
		Port:           "8080",
		Version:        "test",
		AppConfig:      &config.Config{},
		Analyzer:       analyzer.New(logger),
		APIKeys:        map[string]bool{},
		MaxRequestSize: 1024 * 1024,
		Logger:         logger,
	}
}

func testObservability(t *testing.T) *observability.Manager {
	t.Helper()
	om, err := observability.NewManager(config.ObservabilityConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return om
}

func TestAnalyzeHandlerSuccess(t *testing.T) {
	s := testServer(t)
	handler := s.createAnalyzeHandler(testObservability(t))

	body := `{"resumeText": "Experience: Increased sales by 30%. Education: BSc. Skills: SQL.", "jobTitle": "Sales Manager"}`
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Status != "success" {
		t.Errorf("Status = %q, want %q", result.Status, "success")
	}
	if result.Score <= 0 {
		t.Errorf("Score = %d, want > 0", result.Score)
	}
}

func TestAnalyzeHandlerValidation(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantError   string
	}{
		{
			name:        "missing resume text",
			contentType: "application/json",
			body:        `{"jobTitle": "Engineer"}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Missing resume text",
		},
		{
			name:        "missing job title",
			contentType: "application/json",
			body:        `{"resumeText": "Experience: things"}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Missing job title",
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{not json`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Invalid request body",
		},
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        `{"resumeText": "x", "jobTitle": "y"}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Invalid request body",
		},
	}

	s := testServer(t)
	handler := s.createAnalyzeHandler(testObservability(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var errResp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if errResp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", errResp.Error, tt.wantError)
			}
		})
	}
}

func TestAnalyzeHandlerMethodNotAllowed(t *testing.T) {
	s := testServer(t)
	handler := s.createAnalyzeHandler(testObservability(t))

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := testServer(t)
	s.APIKeys = map[string]bool{"valid-key-12345": true}

	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	handler := s.authMiddleware(next)

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"valid api key header", "X-API-Key", "valid-key-12345", http.StatusOK},
		{"valid bearer token", "Authorization", "Bearer valid-key-12345", http.StatusOK},
		{"invalid api key", "X-API-Key", "wrong-key", http.StatusUnauthorized},
		{"missing api key", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddlewareNoKeysConfigured(t *testing.T) {
	s := testServer(t)

	called := false
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	handler(httptest.NewRecorder(), req)

	if !called {
		t.Error("expected next handler to be called when no API keys configured")
	}
}

func TestHealthHandler(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "atsblitz" {
		t.Errorf("service = %v, want atsblitz", response["service"])
	}
}

func TestStatsHandler(t *testing.T) {
	s := testServer(t)
	s.RateLimit = &config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: 60,
		BurstCapacity:  10,
		ByIP:           true,
	}
	s.RateLimiter = NewRateLimiter(60, 10, s.Logger)
	defer s.RateLimiter.Close()

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	s.statsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := response["rate_limiting"]; !ok {
		t.Error("expected rate_limiting in stats response")
	}
}

func TestRateLimiterAllow(t *testing.T) {
	logger := atsErrors.NewLogger(slog.LevelError)
	limiter := NewRateLimiter(60, 2, logger)
	defer limiter.Close()

	// Burst capacity of 2 allows two immediate requests
	if !limiter.Allow("ip:10.0.0.1") {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow("ip:10.0.0.1") {
		t.Error("second request should be allowed")
	}
	if limiter.Allow("ip:10.0.0.1") {
		t.Error("third immediate request should be rejected")
	}

	// Separate keys get separate buckets
	if !limiter.Allow("ip:10.0.0.2") {
		t.Error("request from different IP should be allowed")
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		want     string
	}{
		{
			name:     "api key preferred",
			byAPIKey: true,
			byIP:     true,
			headers:  map[string]string{"X-API-Key": "abc"},
			want:     "api:abc",
		},
		{
			name:     "bearer token fallback",
			byAPIKey: true,
			byIP:     false,
			headers:  map[string]string{"Authorization": "Bearer xyz"},
			want:     "api:xyz",
		},
		{
			name:     "ip fallback without key",
			byAPIKey: true,
			byIP:     true,
			headers:  nil,
			want:     "ip:192.0.2.1",
		},
		{
			name:     "disabled",
			byAPIKey: false,
			byIP:     false,
			headers:  nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			got := getRateLimitKey(req, tt.byAPIKey, tt.byIP)
			if got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "x-forwarded-for",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			remote:  "192.0.2.1:1234",
			want:    "203.0.113.5",
		},
		{
			name:    "x-real-ip",
			headers: map[string]string{"X-Real-IP": "203.0.113.9"},
			remote:  "192.0.2.1:1234",
			want:    "203.0.113.9",
		},
		{
			name:   "remote addr",
			remote: "192.0.2.7:5678",
			want:   "192.0.2.7",
		},
		{
			name:    "invalid forwarded ip ignored",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip"},
			remote:  "192.0.2.7:5678",
			want:    "192.0.2.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			got := getClientIP(req)
			if got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("maskAPIKey(short) = %q, want ****", got)
	}
	if got := maskAPIKey("abcdefgh12345"); got != "abcdefgh****" {
		t.Errorf("maskAPIKey() = %q, want abcdefgh****", got)
	}
}
