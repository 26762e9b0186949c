// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"fmt"
	"strings"
)

const fence = "```"

// BuildPrompt returns the instruction sent to every provider.
func BuildPrompt(text string, known []string) string {
	return fmt.Sprintf(
		"You are an expert at converting natural language commands into shell commands. "+
			"Convert the following natural language command into a single, executable shell command. "+
			"The available commands are: %s.\n\n"+
			"Natural language command: %q\n\n"+
			"Shell command:",
		strings.Join(known, ", "), text)
}

// Clean strips surrounding whitespace and a markdown code fence from a model
// reply. A fenced reply yields the first line inside the fence.
func Clean(reply string) string {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, fence) || !strings.HasSuffix(reply, fence) || len(reply) < 2*len(fence) {
		return strings.Trim(reply, "`")
	}

	lines := strings.Split(reply, "\n")
	if len(lines) < 2 {
		// ```ls```
		return strings.TrimSpace(strings.Trim(reply, "`"))
	}
	line := strings.TrimSpace(lines[1])
	if strings.HasPrefix(line, fence) {
		return ""
	}
	return line
}
