// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for a local Ollama server.
//
// Only the non-streaming /api/chat endpoint is used: the shell sends one
// prompt and waits for one short answer.
//
// # Key Types
//
//   - Client: HTTP client for Ollama API communication
//   - Message: Chat message with role and content
//   - ChatResponse: Response structure with message and metrics
//   - ClientError: typed failure (not running, timeout, model not found)
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: url})
//	resp, err := client.Chat(ctx, "qwen2.5-coder:7b", []ollama.Message{
//	    ollama.NewUserMessage("list files"),
//	})
package ollama
