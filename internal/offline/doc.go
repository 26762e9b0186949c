// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline implements local-only mode for the natural-language
// command. In local-only mode cloud providers are refused and the Ollama
// server must be on a loopback address, so no typed text leaves the machine.
//
// Local-only mode is switched on either per config ([nl] local_only) or for
// the whole process with SetOfflineMode (the --offline flag).
//
// # Usage
//
//	if err := offline.ValidateURL(cfg.OllamaURL, cfg.LocalOnly); err != nil {
//		return err
//	}
//	if err := offline.CheckCloudAllowed(cfg.LocalOnly); err != nil {
//		return err
//	}
package offline
