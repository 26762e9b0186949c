// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the rigsh read-eval-print loop.
//
// A Shell reads one line at a time from a LineReader, records it in the
// session history, and dispatches it through the command registry. Every
// failure is reported on the error writer and the loop continues; only the
// exit command (or end of input) stops it.
//
// Commands run one at a time on the loop's goroutine. Ctrl-C while a command
// runs cancels that command's context; Ctrl-C at the prompt prints a notice.
// Configuration reloads arrive through a mailbox and are applied between
// commands.
package shell
