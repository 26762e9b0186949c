// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records submitted command lines.
//
// Store is the in-memory, append-only log of the current session: 1-based
// indexing, exportable as plain text, one line per entry. Journal persists
// lines across sessions so the line editor can offer them again; it never
// feeds back into a Store.
//
// # Usage
//
//	store := history.NewStore()
//	store.Append("ls -l")
//	line, ok := store.Get(1)
//	err := store.Export("/tmp/history.txt")
package history
