package ai

import (
	"context"
	"fmt"

	"atsblitz/internal/config"
	"atsblitz/internal/errors"
	"atsblitz/internal/observability"
)

// Service handles AI opinion generation. It satisfies the analyzer's
// OpinionGenerator contract while keeping token accounting available to the
// server layer.
type Service struct {
	Provider Provider // Exported for access from server package
	config   *config.AIConfig
	logger   *errors.Logger
	metrics  *observability.Metrics
}

// SetMetrics attaches request and token-usage instruments. A nil metrics
// value leaves recording disabled.
func (s *Service) SetMetrics(m *observability.Metrics) {
	s.metrics = m
}

// NewService creates a new AI service from configuration.
func NewService(cfg *config.AIConfig, logger *errors.Logger) (*Service, error) {
	var provider Provider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout,
		"max_retries", cfg.MaxRetries)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}
	if err != nil {
		return nil, errors.NewExternalError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// GenerateOpinion implements the analyzer's opinion collaborator.
func (s *Service) GenerateOpinion(ctx context.Context, resumeText, jobTitle string) (string, error) {
	opinion, usage, err := s.Provider.GenerateOpinion(ctx, resumeText, jobTitle)
	var inputTokens, outputTokens int64
	if usage != nil {
		inputTokens = usage.InputTokens
		outputTokens = usage.OutputTokens
	}
	s.metrics.RecordAIRequest(ctx, err, inputTokens, outputTokens)
	if err != nil {
		return "", err
	}
	if usage != nil {
		s.logger.Debug("Opinion generated",
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens,
			"total_tokens", usage.TotalTokens)
	}
	return opinion, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases provider resources.
func (s *Service) Close() error {
	return s.Provider.Close()
}
