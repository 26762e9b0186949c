// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePlainByDefault(t *testing.T) {
	out, err := File("main.go", "package main\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, "package main\n", out)
}

func TestHighlightAddsEscapes(t *testing.T) {
	out, err := File("main.go", "package main\n\nfunc main() {}\n", DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "main")
}

func TestHighlightUnknownStyleAndFormatter(t *testing.T) {
	out, err := Highlight("x.py", "print('hi')\n", Options{Style: "nope", Formatter: "nope"})
	require.NoError(t, err)
	assert.Contains(t, out, "print")
}

func TestLexerFor(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"main.go", "", "Go"},
		{"site/style.css", "", "CSS"},
		{"data.json", "", "JSON"},
	}

	for _, tc := range tests {
		lexer := LexerFor(tc.name, tc.content)
		require.NotNil(t, lexer, tc.name)
		assert.Equal(t, tc.want, lexer.Config().Name, tc.name)
	}
}

func TestLexerForFallsBack(t *testing.T) {
	lexer := LexerFor("notes", "just some words")
	require.NotNil(t, lexer)
}

func TestMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("README.md"))
	assert.True(t, IsMarkdown("doc.MARKDOWN"))
	assert.False(t, IsMarkdown("main.go"))

	out, err := File("README.md", "# Title\n\nSome *text*.\n", Options{Markdown: true})
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.True(t, strings.Contains(out, "text"))
}

func TestMarkdownDisabledShowsSource(t *testing.T) {
	out, err := File("README.md", "# Title\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", out)
}
