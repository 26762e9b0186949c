// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud provides the OpenRouter client used for hosted translation.
//
// OpenRouter exposes many model providers behind one chat completions API.
// Requests are non-streaming; rate limiting and 5xx responses are retried
// with exponential backoff.
//
// # Key Types
//
//   - OpenRouterClient: HTTP client with TLS 1.2+ and retry support
//   - ChatMessage: chat message in OpenRouter format
//   - OpenRouterError: structured API error
//
// # Usage
//
//	client := cloud.NewOpenRouterClient(apiKey).WithLogger(logger)
//	client.SetModel("mini")
//	text, err := client.Generate(ctx, "", prompt)
//
// API keys are never logged; KeyFingerprint identifies a key in logs.
package cloud
