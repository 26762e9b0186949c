// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-pro"

// GeminiTranslator asks the Gemini API for the command.
type GeminiTranslator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiTranslator returns ErrNotConfigured when apiKey is empty.
func NewGeminiTranslator(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set nl.gemini_key or GEMINI_API_KEY", ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiTranslator{client: client, model: model, timeout: timeout}, nil
}

// Translate implements Translator.
func (t *GeminiTranslator) Translate(ctx context.Context, text string, known []string) (string, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(BuildPrompt(text, known)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return Clean(resp.Text()), nil
}
