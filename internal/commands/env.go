// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jeranaias/rigsh/internal/render"
	"github.com/jeranaias/rigsh/internal/sysinfo"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is the mutable state of one shell process: the current directory
// and the running flag. It is only touched from the dispatch loop.
type Session struct {
	dir     string
	home    string
	running bool
}

// NewSession creates a running session rooted at dir.
func NewSession(dir, home string) *Session {
	return &Session{
		dir:     filepath.Clean(dir),
		home:    home,
		running: true,
	}
}

// Dir returns the current directory.
func (s *Session) Dir() string { return s.dir }

// SetDir changes the current directory. Callers must have validated path.
func (s *Session) SetDir(path string) { s.dir = filepath.Clean(path) }

// Home returns the directory cd goes to without arguments.
func (s *Session) Home() string { return s.home }

// Running reports whether the dispatch loop should keep reading.
func (s *Session) Running() bool { return s.running }

// Stop ends the dispatch loop after the current command.
func (s *Session) Stop() { s.running = false }

// =============================================================================
// COLLABORATORS
// =============================================================================

// HistoryStore is the view of submitted lines that handlers need.
type HistoryStore interface {
	Count() int
	Get(index int) (string, bool)
	Export(path string) error
}

// Translator turns free text into a single command line, given the names of
// the commands it may choose from.
type Translator interface {
	Translate(ctx context.Context, text string, known []string) (string, error)
}

// DisplayOptions controls how file contents are shown.
type DisplayOptions struct {
	Render    render.Options
	HeadLines int
}

// DefaultHeadLines is the head line count when -n is not given.
const DefaultHeadLines = 10

// =============================================================================
// HANDLER ENVIRONMENT
// =============================================================================

// Env provides access to shell state for command handlers.
type Env struct {
	Session  *Session
	Registry *Registry
	History  HistoryStore

	// Translator is nil when natural-language translation is disabled
	Translator Translator
	// TranslatorErr is why a configured translator could not be built
	TranslatorErr error

	Sampler sysinfo.Sampler
	Display DisplayOptions

	// Submit feeds a line back into the dispatcher as if the user typed it
	Submit func(ctx context.Context, line string)

	Out    io.Writer
	Err    io.Writer
	Logger *zap.Logger
}

// log returns the environment logger, or a no-op logger.
func (e *Env) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// resolve resolves arg against the session's current directory.
func (e *Env) resolve(arg string) string {
	return Resolve(e.Session.Dir(), arg)
}

// headLines returns the configured default head count.
func (e *Env) headLines() int {
	if e.Display.HeadLines > 0 {
		return e.Display.HeadLines
	}
	return DefaultHeadLines
}
