// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/rigsh/internal/config"
	"github.com/jeranaias/rigsh/internal/offline"
)

// Provider names accepted in the [nl] config section.
const (
	ProviderOllama     = "ollama"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

var (
	// ErrDisabled is returned by New when translation is turned off.
	ErrDisabled = errors.New("natural language translation is disabled")

	// ErrNotConfigured indicates a provider is missing its credentials.
	ErrNotConfigured = errors.New("translation provider not configured")

	// ErrUnknownProvider indicates an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown translation provider")
)

// Translator turns free text into one command line. known lists the shell's
// command names in registry order.
type Translator interface {
	Translate(ctx context.Context, text string, known []string) (string, error)
}

// New builds the translator selected by cfg, wrapped in a rate limiter when
// cfg.RequestsPerMinute is positive. In local-only mode only an Ollama server
// on a loopback address is accepted.
func New(ctx context.Context, cfg config.NLConfig, logger *zap.Logger) (Translator, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	localOnly := offline.LocalOnly(cfg.LocalOnly)
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case ProviderOllama:
		if cfg.OllamaURL != "" {
			if err := offline.ValidateURL(cfg.OllamaURL, localOnly); err != nil {
				return nil, fmt.Errorf("ollama_url %s: %w", cfg.OllamaURL, err)
			}
		}
	case ProviderOpenRouter, ProviderGemini:
		if err := offline.CheckCloudAllowed(localOnly); err != nil {
			return nil, fmt.Errorf("%s: %w", provider, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	var (
		tr  Translator
		err error
	)
	switch provider {
	case ProviderOllama:
		tr = NewOllamaTranslator(cfg.OllamaURL, cfg.Model, timeout)
	case ProviderOpenRouter:
		tr, err = NewOpenRouterTranslator(cfg.OpenRouterKey, cfg.Model, timeout, cfg.MaxRetries, logger)
	case ProviderGemini:
		tr, err = NewGeminiTranslator(ctx, cfg.GeminiKey, cfg.Model, timeout)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("translator ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Bool("local_only", localOnly),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute))

	return NewRateLimited(tr, cfg.RequestsPerMinute), nil
}
