// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/rigsh/internal/ui/styles"
)

// =============================================================================
// NATURAL LANGUAGE
// =============================================================================

// handleNL asks the translator for a command line and submits it as if it
// had been typed. A suggestion that names nl itself is rejected before
// anything runs.
func handleNL(ctx context.Context, env *Env, args string) error {
	text := strings.TrimSpace(args)
	if text == "" {
		return usageError("nl", "nl <free text> (e.g. nl create a folder called test)")
	}
	if env.Translator == nil {
		if env.TranslatorErr != nil {
			return collaboratorError("nl", "natural language processing is unavailable", env.TranslatorErr)
		}
		return collaboratorError("nl",
			"natural language processing is not configured; set [nl] provider in ~/.rigsh/config.toml or export GEMINI_API_KEY", nil)
	}

	suggestion, err := env.Translator.Translate(ctx, text, env.Registry.Names())
	if err != nil {
		return collaboratorError("nl", "translation failed", err)
	}

	line := firstLine(suggestion)
	name := ExtractCommandName(line)
	if name == "" {
		return collaboratorError("nl", "the model returned an empty command", nil)
	}
	env.log().Debug("nl suggestion", zap.String("command", name))

	if self := env.Registry.ByKind(CmdNL); self != nil && name == self.Name {
		return &CommandError{
			Command: "nl",
			Kind:    KindRecursion,
			Reason:  "cannot execute 'nl' command from within 'nl'",
		}
	}

	cmd, ok := env.Registry.Lookup(name)
	if !ok {
		return &CommandError{
			Command: "nl",
			Kind:    KindUnknownCommand,
			Reason:  fmt.Sprintf("suggested command '%s' not found in terminal", name),
		}
	}

	fmt.Fprintln(env.Out, styles.RenderSuggestion("→ "+line))
	if env.Submit != nil {
		env.Submit(ctx, line)
		return nil
	}
	_, rest := SplitLine(line)
	return cmd.Handler.Execute(ctx, env, rest)
}

// firstLine returns the first non-blank line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
