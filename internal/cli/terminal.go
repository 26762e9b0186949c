// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
// Use this to determine if colored output should be used.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// COLOR CONTROL
// =============================================================================

// ColorEnabled decides whether output is colored. The --no-color flag and
// NO_COLOR always win; FORCE_COLOR enables color on a pipe.
func ColorEnabled(noColorFlag bool) bool {
	return colorEnabled(noColorFlag, IsStdoutTTY())
}

func colorEnabled(noColorFlag, stdoutTTY bool) bool {
	if noColorFlag || termenv.EnvNoColor() {
		return false
	}
	if force := os.Getenv("FORCE_COLOR"); force != "" && force != "0" {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return stdoutTTY
}
