// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the shell.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth, StringWidth, PadRight: display-width aware text
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - AtomicWriteFileWithDir: the same, creating the parent directory
//
// # Usage
//
//	name := util.TruncateWidth(proc.Name, 30)
//	err := util.AtomicWriteFile(path, data, 0o644)
package util
