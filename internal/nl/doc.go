// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nl translates free-form requests into a single shell command line
// using a text-generation service.
//
// Three providers are supported: a local Ollama server, OpenRouter, and the
// Gemini API. All of them receive the same prompt, built from the request and
// the shell's command names, and their replies are cleaned with Clean.
//
// # Usage
//
//	tr, err := nl.New(ctx, cfg.NL, logger)
//	line, err := tr.Translate(ctx, "make a folder called test", registry.Names())
package nl
