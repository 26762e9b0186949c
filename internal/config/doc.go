// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for rigsh.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, validation, and a file watcher for live
// reloads.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - NLConfig: translation provider settings
//   - DisplayConfig: cat/head rendering settings
//   - Watcher: fsnotify-based reloader delivering Updates
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (RIGSH_*, GEMINI_API_KEY)
//   - ~/.rigsh/config.toml
//   - ~/.rigsh/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
//	}
package config
