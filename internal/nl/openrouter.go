// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/rigsh/internal/cloud"
)

// OpenRouterTranslator asks an OpenRouter-hosted model for the command.
type OpenRouterTranslator struct {
	client *cloud.OpenRouterClient
}

// NewOpenRouterTranslator returns ErrNotConfigured when apiKey is empty.
// maxRetries below one keeps the client default.
func NewOpenRouterTranslator(apiKey, model string, timeout time.Duration, maxRetries int, logger *zap.Logger) (*OpenRouterTranslator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := cloud.NewOpenRouterClient(apiKey).WithLogger(logger)
	if !client.IsConfigured() {
		return nil, fmt.Errorf("%w: set nl.openrouter_key or RIGSH_OPENROUTER_KEY", ErrNotConfigured)
	}
	if timeout > 0 {
		client.WithTimeout(timeout)
	}
	if maxRetries > 0 {
		client.WithMaxRetries(maxRetries)
	}
	client.SetModel(model)

	logger.Debug("openrouter client configured",
		zap.String("model", client.GetModel()),
		zap.String("key", client.KeyFingerprint()),
		zap.Int("max_retries", maxRetries))
	return &OpenRouterTranslator{client: client}, nil
}

// Model is the resolved OpenRouter model ID.
func (t *OpenRouterTranslator) Model() string {
	return t.client.GetModel()
}

// WithBaseURL points the client at another endpoint.
func (t *OpenRouterTranslator) WithBaseURL(url string) *OpenRouterTranslator {
	t.client.WithBaseURL(url)
	return t
}

// Translate implements Translator.
func (t *OpenRouterTranslator) Translate(ctx context.Context, text string, known []string) (string, error) {
	reply, err := t.client.Generate(ctx, "", BuildPrompt(text, known))
	if err != nil {
		return "", err
	}
	return Clean(reply), nil
}
