// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// =============================================================================
// COMPLETER
// =============================================================================

// CompletionMode is the state the completer is in for a given buffer.
type CompletionMode int

const (
	// ModeCommand completes the first word against registry names.
	ModeCommand CompletionMode = iota
	// ModeArgument completes filesystem entries for path-taking commands.
	ModeArgument
)

// Completer produces tab-completion candidates. It is a pure function of the
// buffer, the registry and the directory listing it reads; it keeps no state
// between calls.
type Completer struct {
	registry *Registry
	cwd      func() string

	// ReadDir and Stat default to the os package; tests may replace them
	ReadDir func(name string) ([]os.DirEntry, error)
	Stat    func(name string) (fs.FileInfo, error)
}

// NewCompleter creates a completer over registry. cwd is consulted on every
// call so completion follows cd.
func NewCompleter(registry *Registry, cwd func() string) *Completer {
	return &Completer{
		registry: registry,
		cwd:      cwd,
		ReadDir:  os.ReadDir,
		Stat:     os.Stat,
	}
}

// Mode reports which completion mode applies to buffer. The buffer is taken
// to end at the cursor.
func Mode(buffer string) CompletionMode {
	trimmed := strings.TrimLeftFunc(buffer, unicode.IsSpace)
	if strings.IndexFunc(trimmed, unicode.IsSpace) == -1 {
		return ModeCommand
	}
	return ModeArgument
}

// Complete returns the index-th candidate for buffer, or false once index is
// past the last candidate.
func (c *Completer) Complete(buffer string, index int) (string, bool) {
	candidates := c.Candidates(buffer)
	if index < 0 || index >= len(candidates) {
		return "", false
	}
	return candidates[index], true
}

// Candidates returns every candidate for buffer in order.
func (c *Completer) Candidates(buffer string) []string {
	_, candidates := c.Completions(buffer)
	return candidates
}

// Completions returns the part of buffer that stays fixed and the
// candidates that may replace the rest. Each candidate completes only the
// final word (or final path segment) of buffer.
func (c *Completer) Completions(buffer string) (head string, candidates []string) {
	trimmed := strings.TrimLeftFunc(buffer, unicode.IsSpace)

	if Mode(buffer) == ModeCommand {
		return buffer[:len(buffer)-len(trimmed)], c.completeCommands(trimmed)
	}

	command, args := SplitLine(trimmed)
	cmd := c.registry.Get(command)
	if cmd == nil || !cmd.PathArgs {
		return buffer, nil
	}

	partial := lastPartial(args)
	dirPart, base := splitPartialPath(partial)
	return buffer[:len(buffer)-len(base)], c.completePaths(dirPart, base)
}

// lastPartial returns the word under the cursor, or "" when the argument
// string ends in whitespace.
func lastPartial(args string) string {
	if args == "" || strings.LastIndexFunc(args, unicode.IsSpace) == len(args)-1 {
		return ""
	}
	words := fields(args)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// =============================================================================
// COMMAND COMPLETION
// =============================================================================

// completeCommands returns registry names starting with partial, in
// registration order, each followed by a space.
func (c *Completer) completeCommands(partial string) []string {
	partial = strings.ToLower(partial)

	var matches []string
	for _, name := range c.registry.Names() {
		if strings.HasPrefix(name, partial) {
			matches = append(matches, name+" ")
		}
	}
	return matches
}

// =============================================================================
// PATH COMPLETION
// =============================================================================

// completePaths lists the directory implied by dirPart and keeps entries
// whose name starts with base. Directories get a trailing slash, files a
// trailing space. Hidden entries are offered only when base starts with ".".
func (c *Completer) completePaths(dirPart, base string) []string {
	dir := Resolve(c.cwd(), dirPart)

	entries, err := c.ReadDir(dir)
	if err != nil {
		return nil
	}

	showHidden := strings.HasPrefix(base, ".")
	var matches []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !showHidden {
			continue
		}

		if c.isDir(dir, entry) {
			matches = append(matches, name+"/")
		} else {
			matches = append(matches, name+" ")
		}
	}
	return matches
}

// isDir reports whether entry is a directory, following symlinks.
func (c *Completer) isDir(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := c.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}
