package ai

import "context"

// Provider is the abstraction over AI backends that can review a resume.
type Provider interface {
	GenerateOpinion(ctx context.Context, resumeText, jobTitle string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}
