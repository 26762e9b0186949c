// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// =============================================================================
// LINE SPLITTING
// =============================================================================

// foldToken case-folds a command token. cases.Caser is stateful, so each call
// gets a fresh one.
func foldToken(s string) string {
	return cases.Fold().String(s)
}

// SplitLine splits a submitted line into the command token and the raw
// argument string.
//
// Leading whitespace is skipped. The command is everything up to the first run
// of whitespace, case-folded. The argument string is everything after that
// run, verbatim: internal and trailing whitespace is preserved because
// handlers such as write and nl split it themselves.
//
//	"LS  -l   dir" -> ("ls", "-l   dir")
//	"write f  a b " -> ("write", "f  a b ")
//	"pwd"          -> ("pwd", "")
func SplitLine(line string) (command, args string) {
	first, rest := splitFirst(line)
	if first == "" {
		return "", ""
	}
	return foldToken(first), rest
}

// ExtractCommandName returns just the command token of a line.
func ExtractCommandName(line string) string {
	command, _ := SplitLine(line)
	return command
}

// splitFirst splits args into the first whitespace-delimited word and the
// verbatim remainder.
func splitFirst(args string) (first, rest string) {
	args = strings.TrimLeftFunc(args, unicode.IsSpace)
	end := strings.IndexFunc(args, unicode.IsSpace)
	if end == -1 {
		return args, ""
	}
	return args[:end], strings.TrimLeftFunc(args[end:], unicode.IsSpace)
}

// fields splits an argument string on whitespace runs. Quoting is not
// interpreted.
func fields(args string) []string {
	return strings.Fields(args)
}
