package server

import (
	"fmt"
	"time"

	"atsblitz/internal/ai"
	"atsblitz/internal/analyzer"
	"atsblitz/internal/config"
	atsErrors "atsblitz/internal/errors"
	"atsblitz/internal/titlestore"
)

// AnalyzeRequest represents the request body for the analyze endpoint
type AnalyzeRequest struct {
	ResumeText string `json:"resumeText"`
	JobTitle   string `json:"jobTitle"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Analysis pipeline shared by all requests
	Analyzer   *analyzer.Analyzer
	TitleStore *titlestore.Store
	AIService  *ai.Service
	storeProxy *instrumentedTitleStore

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *atsErrors.Logger
}

// NewServer creates a Server instance with its analysis dependencies wired up.
// The title store and AI service are created once and shared across requests
// so circuit breaker state persists between calls.
func NewServer(appCfg *config.Config, version string, logger *atsErrors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range appCfg.Server.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if appCfg.Server.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			appCfg.Server.RateLimit.RequestsPerMin,
			appCfg.Server.RateLimit.BurstCapacity,
			logger,
		)
	}

	var opts []analyzer.Option

	var store *titlestore.Store
	var storeProxy *instrumentedTitleStore
	if appCfg.Store.Enabled {
		var err error
		store, err = titlestore.Open(appCfg.Store.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open title store: %w", err)
		}
		storeProxy = &instrumentedTitleStore{store: store}
		opts = append(opts, analyzer.WithTitleStore(storeProxy))
	}

	var aiService *ai.Service
	if appCfg.AI.Enabled {
		var err error
		aiService, err = ai.NewService(&appCfg.AI, logger)
		if err != nil {
			if store != nil {
				_ = store.Close()
			}
			return nil, fmt.Errorf("failed to create AI service: %w", err)
		}
		opts = append(opts, analyzer.WithOpinionGenerator(aiService))
	}

	return &Server{
		Host:           appCfg.Server.Host,
		Port:           appCfg.Server.Port,
		Version:        version,
		AppConfig:      appCfg,
		Analyzer:       analyzer.New(logger, opts...),
		TitleStore:     store,
		AIService:      aiService,
		storeProxy:     storeProxy,
		APIKeys:        apiKeyMap,
		ReadTimeout:    appCfg.Server.ReadTimeout,
		WriteTimeout:   appCfg.Server.WriteTimeout,
		IdleTimeout:    appCfg.Server.IdleTimeout,
		MaxRequestSize: appCfg.Server.MaxRequestSize,
		RateLimit:      &appCfg.Server.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}, nil
}
