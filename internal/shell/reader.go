// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"errors"

	"github.com/peterh/liner"

	"github.com/jeranaias/rigsh/internal/commands"
)

// ErrInterrupted is returned by ReadLine when the user presses Ctrl-C at the
// prompt.
var ErrInterrupted = errors.New("interrupted")

// LineReader supplies input lines. ReadLine returns io.EOF at end of input.
type LineReader interface {
	ReadLine(prompt string) (string, error)

	// AppendHistory makes line reachable with the up arrow
	AppendHistory(line string)

	Close() error
}

// LinerReader is the interactive LineReader: line editing, up-arrow history
// and tab completion. On a non-terminal stdin it degrades to plain line
// reads.
type LinerReader struct {
	state *liner.State
}

// NewLinerReader creates the line editor. preload seeds the up-arrow history,
// oldest first.
func NewLinerReader(completer *commands.Completer, preload []string) *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabCircular)

	if completer != nil {
		state.SetWordCompleter(func(line string, pos int) (string, []string, string) {
			runes := []rune(line)
			if pos > len(runes) {
				pos = len(runes)
			}
			head, candidates := completer.Completions(string(runes[:pos]))
			return head, candidates, string(runes[pos:])
		})
	}

	for _, line := range preload {
		state.AppendHistory(line)
	}
	return &LinerReader{state: state}
}

// ReadLine implements LineReader.
func (r *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrInterrupted
	}
	return line, err
}

// AppendHistory implements LineReader.
func (r *LinerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

// Close restores the terminal mode.
func (r *LinerReader) Close() error {
	return r.state.Close()
}
