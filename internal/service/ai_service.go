// Package service contains the application business logic.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/knowledge"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/llm"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
)

// ErrEmptyMessage rejects chat turns without content. This is the only
// error the dispatcher itself returns; provider failures are absorbed into
// degraded responses.
var ErrEmptyMessage = errors.New("message content is required")

const apologyContent = "I apologize, but I'm experiencing technical difficulties right now. " +
	"Please try again in a moment, or contact our support team for immediate assistance."

// Identity reported on local-fallback answers, so stored messages name the
// responder that actually produced them.
const (
	fallbackProviderName = "local-fallback"
	fallbackModelName    = "keyword-match-v1"
)

const defaultProviderTimeout = 30 * time.Second

// ProviderHealth describes the configured provider for the ops endpoints.
type ProviderHealth struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
	Message    string `json:"message"`
}

// AIService dispatches one chat turn: it composes the grounded context,
// calls the configured provider, and degrades to the local fallback or the
// apology sentinel so the caller always receives a well-formed response.
type AIService interface {
	GenerateResponse(ctx context.Context, message string, history []string, faqs []model.FAQ, docs []model.Document, imageURL string) (*model.AIResponse, error)
	Health() ProviderHealth
}

type aiService struct {
	cfg      config.AIConfig
	client   llm.Client
	fallback *knowledge.FallbackResponder
}

// NewAIService creates a new AIService instance. The provider credential
// arrives here, in cfg, and nowhere else.
func NewAIService(cfg config.AIConfig, client llm.Client, fallback *knowledge.FallbackResponder) AIService {
	return &aiService{
		cfg:      cfg,
		client:   client,
		fallback: fallback,
	}
}

// GenerateResponse runs the full dispatch for one user message. The
// history slice holds recent turn contents, oldest first; faqs and docs are
// the pre-filtered active candidates (at most 20 and 10). responseTime is
// measured end-to-end regardless of the path taken.
func (s *aiService) GenerateResponse(ctx context.Context, message string, history []string, faqs []model.FAQ, docs []model.Document, imageURL string) (*model.AIResponse, error) {
	start := time.Now()

	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	systemContext := knowledge.Compose(faqs, docs, history)

	if s.cfg.APIKey == "" {
		// Routine mode for environments without external access, not a
		// failure: degraded stays false.
		log.Info("no provider credential configured, answering via local fallback")
		res := s.fallback.Respond(ctx, message, faqs, docs)
		return &model.AIResponse{
			Content:        res.Content,
			Provider:       fallbackProviderName,
			Model:          fallbackModelName,
			Timestamp:      time.Now(),
			TokensUsed:     res.TokensUsed,
			ResponseTimeMs: time.Since(start).Milliseconds(),
			Degraded:       false,
		}, nil
	}

	timeout := defaultProviderTimeout
	if s.cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(s.cfg.TimeoutSeconds) * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := s.client.Chat(callCtx, systemContext, message, imageURL)
	if err != nil {
		// Absorb every provider failure here; the user gets the sentinel
		// apology and operators get the log line.
		log.Errorf("provider call failed, returning degraded response: %v", err)
		return &model.AIResponse{
			Content:        apologyContent,
			Provider:       s.cfg.Provider,
			Model:          s.cfg.Model,
			Timestamp:      time.Now(),
			TokensUsed:     0,
			ResponseTimeMs: time.Since(start).Milliseconds(),
			Degraded:       true,
		}, nil
	}

	return &model.AIResponse{
		Content:        result.Content,
		Provider:       s.cfg.Provider,
		Model:          s.cfg.Model,
		Timestamp:      time.Now(),
		TokensUsed:     result.TokensUsed,
		ResponseTimeMs: time.Since(start).Milliseconds(),
		Degraded:       false,
	}, nil
}

// Health reports whether a credential is configured.
func (s *aiService) Health() ProviderHealth {
	h := ProviderHealth{
		Provider:   s.cfg.Provider,
		Model:      s.cfg.Model,
		Configured: s.cfg.APIKey != "",
	}
	if h.Configured {
		h.Message = "provider is configured"
	} else {
		h.Message = "no credential configured, responses come from the local fallback"
	}
	return h
}
