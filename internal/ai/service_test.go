package ai

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"atsblitz/internal/config"
	apperrors "atsblitz/internal/errors"
	"atsblitz/internal/observability"
)

type stubProvider struct {
	opinion string
	usage   *TokenUsage
	err     error
	calls   int
}

func (p *stubProvider) GenerateOpinion(ctx context.Context, resumeText, jobTitle string) (string, *TokenUsage, error) {
	p.calls++
	return p.opinion, p.usage, p.err
}

func (p *stubProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	return &ModelInfo{Name: "stub", Available: true}
}

func (p *stubProvider) GetCircuitBreakerStats() map[string]any { return nil }

func (p *stubProvider) Close() error { return nil }

func TestNewServiceUnsupportedProvider(t *testing.T) {
	cfg := &config.AIConfig{Provider: "oracle"}
	if _, err := NewService(cfg, apperrors.NewLogger(slog.LevelError)); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestServiceGenerateOpinion(t *testing.T) {
	provider := &stubProvider{
		opinion: "A solid resume.",
		usage:   &TokenUsage{InputTokens: 100, OutputTokens: 40, TotalTokens: 140},
	}
	s := &Service{Provider: provider, logger: apperrors.NewLogger(slog.LevelError)}

	opinion, err := s.GenerateOpinion(context.Background(), "resume", "Engineer")
	if err != nil {
		t.Fatalf("GenerateOpinion() error = %v", err)
	}
	if opinion != "A solid resume." {
		t.Errorf("opinion = %q", opinion)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestServiceGenerateOpinionRecordsMetrics(t *testing.T) {
	om, err := observability.NewManager(config.ObservabilityConfig{
		Enabled:     true,
		ServiceName: "atsblitz-test",
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = om.Shutdown(context.Background()) }()

	provider := &stubProvider{
		opinion: "Fine.",
		usage:   &TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}
	s := &Service{Provider: provider, logger: apperrors.NewLogger(slog.LevelError)}
	s.SetMetrics(om.GetMetrics())

	if _, err := s.GenerateOpinion(context.Background(), "resume", "Engineer"); err != nil {
		t.Fatalf("GenerateOpinion() error = %v", err)
	}

	// Failure path records too and still surfaces the error
	provider.err = errors.New("quota exceeded")
	if _, err := s.GenerateOpinion(context.Background(), "resume", "Engineer"); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestServiceGenerateOpinionWithoutMetrics(t *testing.T) {
	provider := &stubProvider{opinion: "Fine."}
	s := &Service{Provider: provider, logger: apperrors.NewLogger(slog.LevelError)}

	// No metrics attached; must not panic
	if _, err := s.GenerateOpinion(context.Background(), "resume", "Engineer"); err != nil {
		t.Fatalf("GenerateOpinion() error = %v", err)
	}
}
