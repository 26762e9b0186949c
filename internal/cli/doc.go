// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the process surface of rigsh: flag parsing, terminal
// detection and the wiring that turns a loaded configuration into a running
// shell.
//
// # Commands
//
//	rigsh                    Start the interactive shell
//	rigsh --cwd DIR          Start in DIR
//	rigsh --config FILE      Use FILE instead of ~/.rigsh/config.toml
//	rigsh --no-color         Disable colors and syntax highlighting
//	rigsh --offline          Local-only mode for nl (loopback Ollama only)
//	rigsh config init        Write a default config file
//	rigsh config show        Print the effective configuration (keys redacted)
//	rigsh config path        Print the config file location
//
// # Exit Codes
//
//	0   normal termination
//	1   the shell could not start
//	2   invalid flags or arguments
package cli
