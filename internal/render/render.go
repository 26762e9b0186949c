// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns file contents into terminal output: syntax
// highlighting through chroma and markdown through glamour.
package render

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// Default display settings.
const (
	DefaultStyle     = "monokai"
	DefaultFormatter = "terminal256"
	DefaultWordWrap  = 80
)

// Options selects how content is rendered. The zero value prints plain text.
type Options struct {
	// Style is a chroma style name
	Style string

	// Formatter is a chroma formatter name; empty disables highlighting
	Formatter string

	// Markdown renders .md files with glamour instead of highlighting them
	Markdown bool

	// WordWrap is the markdown wrap width
	WordWrap int
}

// DefaultOptions returns colored output settings.
func DefaultOptions() Options {
	return Options{
		Style:     DefaultStyle,
		Formatter: DefaultFormatter,
		Markdown:  true,
		WordWrap:  DefaultWordWrap,
	}
}

// File renders content that was read from the file called name.
func File(name, content string, opts Options) (string, error) {
	if opts.Markdown && IsMarkdown(name) {
		return Markdown(content, opts.WordWrap)
	}
	if opts.Formatter == "" {
		return content, nil
	}
	return Highlight(name, content, opts)
}

// IsMarkdown reports whether name has a markdown extension.
func IsMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// LexerFor picks a lexer from the file name, then from the extension as a
// language alias, then from the content, falling back to plain text.
func LexerFor(name, content string) chroma.Lexer {
	lexer := lexers.Match(filepath.Base(name))
	if lexer == nil {
		if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
			lexer = lexers.Get(ext)
		}
	}
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// Highlight colors content for the terminal.
func Highlight(name, content string, opts Options) (string, error) {
	lexer := LexerFor(name, content)

	style := chromaStyles.Get(opts.Style)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get(opts.Formatter)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content, err
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content, err
	}
	return buf.String(), nil
}

// =============================================================================
// MARKDOWN
// =============================================================================

// Markdown renders markdown for the terminal, wrapping at width.
func Markdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWordWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content, err
	}
	out, err := r.Render(content)
	if err != nil {
		return content, err
	}
	return out, nil
}
