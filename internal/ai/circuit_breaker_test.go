package ai

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"atsblitz/internal/config"
	apperrors "atsblitz/internal/errors"

	"google.golang.org/genai"
)

func breakerConfig(enabled bool) *config.AIConfig {
	return &config.AIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          enabled,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}
}

func TestCircuitBreakerInitialState(t *testing.T) {
	cb := NewOpinionCircuitBreaker(breakerConfig(true), apperrors.NewLogger(slog.LevelError))

	stats := cb.GetStats()
	if name, _ := stats["name"].(string); name != "AI-opinion" {
		t.Errorf("name = %q, want AI-opinion", name)
	}
	if state, _ := stats["state"].(string); state != "closed" {
		t.Errorf("initial state = %q, want closed", state)
	}
	if !cb.IsHealthy() {
		t.Error("a closed breaker must report healthy")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cb := NewOpinionCircuitBreaker(breakerConfig(false), nil)
	if cb != nil {
		t.Fatal("disabled breaker must be nil")
	}

	// A nil breaker must execute the function directly and stay healthy.
	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil || !called {
		t.Errorf("nil breaker pass-through failed: called=%v err=%v", called, err)
	}
	if !cb.IsHealthy() {
		t.Error("nil breaker must report healthy")
	}
	if enabled, _ := cb.GetStats()["enabled"].(bool); enabled {
		t.Error("nil breaker stats must report enabled=false")
	}
}

func TestCircuitBreakerTripsOnFailures(t *testing.T) {
	cb := NewOpinionCircuitBreaker(breakerConfig(true), apperrors.NewLogger(slog.LevelError))

	boom := errors.New("upstream down")
	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (*genai.GenerateContentResponse, error) {
			return nil, boom
		})
	}

	if cb.IsHealthy() {
		t.Error("breaker should trip after repeated failures above the threshold")
	}
	if state, _ := cb.GetStats()["state"].(string); state != "open" {
		t.Errorf("state = %q, want open", state)
	}
}

func TestModelCircuitBreakerLenientThreshold(t *testing.T) {
	cb := NewModelCircuitBreaker(breakerConfig(true), apperrors.NewLogger(slog.LevelError))

	boom := errors.New("unavailable")
	// Below the model breaker's minimum request count: stays closed.
	for i := 0; i < 4; i++ {
		_, _ = cb.ExecuteModel(func() (*genai.Model, error) {
			return nil, boom
		})
	}
	if !cb.IsModelHealthy() {
		t.Error("model breaker must not trip before 5 requests")
	}

	_, _ = cb.ExecuteModel(func() (*genai.Model, error) {
		return nil, boom
	})
	if cb.IsModelHealthy() {
		t.Error("model breaker should trip at 5 requests all failing")
	}
}
