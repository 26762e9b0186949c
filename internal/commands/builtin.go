// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jeranaias/rigsh/internal/ui/styles"
	"github.com/jeranaias/rigsh/internal/util"
)

// HistoryExportExt is appended to export file names that lack it.
const HistoryExportExt = ".txt"

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func handleExit(_ context.Context, env *Env, _ string) error {
	fmt.Fprintln(env.Out, styles.RenderSuccess("Goodbye!"))
	env.Session.Stop()
	return nil
}

// handleHelp lists every registered command in registration order.
func handleHelp(_ context.Context, env *Env, _ string) error {
	fmt.Fprintln(env.Out, styles.RenderHeader("Available commands:"))
	fmt.Fprint(env.Out, HelpText(env.Registry))
	return nil
}

// HelpText formats the usage and description of every command, one per line.
func HelpText(r *Registry) string {
	width := 0
	for _, cmd := range r.All() {
		if w := util.StringWidth(cmd.Usage); w > width {
			width = w
		}
	}

	var sb strings.Builder
	for _, cmd := range r.All() {
		usage := util.PadRight(cmd.Usage, width)
		fmt.Fprintf(&sb, "  %s  - %s\n", styles.RenderCommand(usage), cmd.Description)
	}
	return sb.String()
}

// handleClear clears the terminal with ANSI sequences.
func handleClear(_ context.Context, env *Env, _ string) error {
	out := termenv.NewOutput(env.Out)
	out.ClearScreen()
	return nil
}

// handleExportHistory writes the session history to a text file, one line per
// entry. The export line itself is already recorded when this runs.
func handleExportHistory(_ context.Context, env *Env, args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return usageError("export_history", "export_history <file>")
	}
	if env.History == nil {
		return &CommandError{Command: "export_history", Kind: KindIOFailure, Reason: "no history available", Err: errors.New("history disabled")}
	}
	if !strings.HasSuffix(name, HistoryExportExt) {
		name += HistoryExportExt
	}

	path := env.resolve(name)
	if err := env.History.Export(path); err != nil {
		return fsError("export_history", path, err)
	}
	fmt.Fprintf(env.Out, "Command history exported to '%s'\n", path)
	return nil
}
