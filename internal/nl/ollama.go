// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jeranaias/rigsh/internal/ollama"
)

// OllamaTranslator asks a local Ollama server for the command.
type OllamaTranslator struct {
	client *ollama.Client
	model  string
	// reachable is set once the server has answered a health check
	reachable atomic.Bool
}

// NewOllamaTranslator creates a translator for the server at baseURL. Empty
// values fall back to the client defaults.
func NewOllamaTranslator(baseURL, model string, timeout time.Duration) *OllamaTranslator {
	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      baseURL,
		Timeout:      timeout,
		DefaultModel: model,
	})
	return &OllamaTranslator{client: client, model: client.GetConfig().DefaultModel}
}

// Translate implements Translator.
// The server is health-checked before the first chat request.
func (t *OllamaTranslator) Translate(ctx context.Context, text string, known []string) (string, error) {
	if !t.reachable.Load() {
		if err := t.client.CheckRunning(ctx); err != nil {
			return "", t.explain(err)
		}
		t.reachable.Store(true)
	}

	resp, err := t.client.ChatWithOptions(ctx, t.model,
		[]ollama.Message{ollama.NewUserMessage(BuildPrompt(text, known))},
		&ollama.Options{Temperature: 0.1, NumPredict: 128})
	if err != nil {
		return "", t.explain(err)
	}
	return Clean(resp.Message.Content), nil
}

// explain adds the user-facing remedy to a client error.
func (t *OllamaTranslator) explain(err error) error {
	cfg := t.client.GetConfig()
	switch {
	case ollama.IsNotRunning(err):
		t.reachable.Store(false)
		return fmt.Errorf("ollama is not running at %s: %w", cfg.BaseURL, err)
	case ollama.IsTimeout(err):
		return fmt.Errorf("ollama did not answer within %s: %w", cfg.Timeout, err)
	case ollama.IsModelNotFound(err):
		return fmt.Errorf("model %q is not pulled (run: ollama pull %s): %w", t.model, t.model, err)
	}
	return err
}
