// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCompletionTree creates:
//
//	root/
//	  .hidden
//	  alpha/
//	  alpine.txt
//	  beta.go
//	  sub/foo.go
//	  sub/food/
func newCompletionTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "alpha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpine.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beta.go"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "food"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "foo.go"), nil, 0o644))
	return root
}

func newTestCompleter(root string) *Completer {
	return NewCompleter(NewRegistry(), func() string { return root })
}

func TestMode(t *testing.T) {
	tests := []struct {
		buffer string
		want   CompletionMode
	}{
		{"", ModeCommand},
		{"h", ModeCommand},
		{"   he", ModeCommand},
		{"cd ", ModeArgument},
		{"  cd sr", ModeArgument},
		{"rm -r x", ModeArgument},
	}

	for _, tc := range tests {
		if got := Mode(tc.buffer); got != tc.want {
			t.Errorf("Mode(%q) = %v, want %v", tc.buffer, got, tc.want)
		}
	}
}

func TestCompleteCommandPrefix(t *testing.T) {
	c := newTestCompleter(t.TempDir())

	first, ok := c.Complete("h", 0)
	require.True(t, ok)
	second, ok := c.Complete("h", 1)
	require.True(t, ok)
	_, ok = c.Complete("h", 2)
	assert.False(t, ok)

	assert.Equal(t, "help ", first)
	assert.Equal(t, "head ", second)
}

func TestCompleteCommandCases(t *testing.T) {
	c := newTestCompleter(t.TempDir())

	tests := []struct {
		name   string
		buffer string
		want   []string
	}{
		{"all commands", "", c.registry.Names()},
		{"upper case prefix", "H", []string{"help ", "head "}},
		{"leading whitespace", "  pw", []string{"pwd "}},
		{"unique", "exp", []string{"export_history "}},
		{"no match", "zzz", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Candidates(tc.buffer)
			if tc.name == "all commands" {
				require.Len(t, got, len(tc.want))
				for i, name := range tc.want {
					assert.Equal(t, name+" ", got[i])
				}
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompleteIndexOutOfRange(t *testing.T) {
	c := newTestCompleter(t.TempDir())

	_, ok := c.Complete("h", -1)
	assert.False(t, ok)
	_, ok = c.Complete("zzz", 0)
	assert.False(t, ok)
}

func TestCompletePaths(t *testing.T) {
	root := newCompletionTree(t)
	c := newTestCompleter(root)

	tests := []struct {
		name   string
		buffer string
		want   []string
	}{
		{"empty partial lists visible entries", "ls ", []string{"alpha/", "alpine.txt ", "beta.go ", "sub/"}},
		{"prefix", "cd al", []string{"alpha/", "alpine.txt "}},
		{"hidden only with dot", "cat .h", []string{".hidden "}},
		{"nested dir", "cat sub/fo", []string{"foo.go ", "food/"}},
		{"after flags", "rm -r be", []string{"beta.go "}},
		{"absolute", "head " + root + "/be", []string{"beta.go "}},
		{"missing dir", "cd nope/x", nil},
		{"case sensitive", "cd AL", nil},
		{"command without path args", "pwd al", nil},
		{"unknown command", "frobnicate al", nil},
		{"mv is not completed", "mv al", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Candidates(tc.buffer))
		})
	}
}

func TestCompletionsHead(t *testing.T) {
	root := newCompletionTree(t)
	c := newTestCompleter(root)

	head, candidates := c.Completions("cat sub/fo")
	assert.Equal(t, "cat sub/", head)
	assert.Equal(t, []string{"foo.go ", "food/"}, candidates)

	head, _ = c.Completions("  he")
	assert.Equal(t, "  ", head)

	head, candidates = c.Completions("cd ")
	assert.Equal(t, "cd ", head)
	assert.NotEmpty(t, candidates)
}

func TestCompletePathsFollowsCwd(t *testing.T) {
	root := newCompletionTree(t)
	cwd := root
	c := NewCompleter(NewRegistry(), func() string { return cwd })

	assert.Equal(t, []string{"alpha/", "alpine.txt "}, c.Candidates("cd al"))

	cwd = filepath.Join(root, "sub")
	assert.Equal(t, []string{"foo.go ", "food/"}, c.Candidates("cd f"))
}

func TestCompletePathsSymlinkToDir(t *testing.T) {
	root := newCompletionTree(t)
	if err := os.Symlink(filepath.Join(root, "alpha"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	c := newTestCompleter(root)

	assert.Equal(t, []string{"link/"}, c.Candidates("cd li"))
}

func TestCompletePathsStable(t *testing.T) {
	root := newCompletionTree(t)
	c := newTestCompleter(root)

	assert.Equal(t, c.Candidates("ls "), c.Candidates("ls "))
}

func TestCompletePathsReadDirError(t *testing.T) {
	c := newTestCompleter("/")
	c.ReadDir = func(string) ([]os.DirEntry, error) { return nil, errors.New("boom") }

	_, ok := c.Complete("cd a", 0)
	assert.False(t, ok)
}
