// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// TEXT HELPERS
// =============================================================================

func fg(color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(color)
}

// RenderDirectory styles a directory name in listings.
func RenderDirectory(name string) string {
	return fg(Blue).Bold(true).Render(name)
}

// RenderExecutable styles an executable file name in listings.
func RenderExecutable(name string) string {
	return fg(Green).Render(name)
}

// RenderSuccess styles a completed-action message.
func RenderSuccess(message string) string {
	return fg(Green).Render(message)
}

// RenderError styles an error line. The "Error: " prefix is part of the
// message so it survives when colors are off.
func RenderError(message string) string {
	return fg(Rose).Bold(true).Render("Error: " + message)
}

// RenderWarning styles a non-fatal warning.
func RenderWarning(message string) string {
	return fg(Amber).Render("Warning: " + message)
}

// RenderCommand styles a command name or usage string.
func RenderCommand(text string) string {
	return fg(Cyan).Render(text)
}

// RenderValue styles a measured value.
func RenderValue(text string) string {
	return fg(Amber).Render(text)
}

// RenderHeader styles a section or table header.
func RenderHeader(text string) string {
	return fg(Green).Bold(true).Render(text)
}

// RenderSuggestion styles a command line proposed by the translator.
func RenderSuggestion(text string) string {
	return fg(Purple).Render(text)
}

// RenderMuted styles secondary text.
func RenderMuted(text string) string {
	return fg(TextMuted).Render(text)
}

// Prompt builds the shell prompt: the directory name in blue followed by a
// green "$ ".
func Prompt(dirName string) string {
	return fg(Blue).Render(dirName) + fg(Green).Render("$") + " "
}
