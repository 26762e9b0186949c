// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NAVIGATION TESTS
// =============================================================================

func TestCdAndPwd(t *testing.T) {
	env, out := newTestEnv(t)
	root := env.Session.Dir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0o755))

	require.NoError(t, run(t, env, "cd src"))
	assert.Equal(t, filepath.Join(root, "src"), env.Session.Dir())

	require.NoError(t, run(t, env, "cd .."))
	require.NoError(t, run(t, env, "pwd"))
	assert.Equal(t, root+"\n", out.String())
}

func TestCdHome(t *testing.T) {
	env, _ := newTestEnv(t)
	home := t.TempDir()
	env.Session = NewSession(env.Session.Dir(), home)

	require.NoError(t, run(t, env, "cd"))
	assert.Equal(t, home, env.Session.Dir())
}

func TestCdFailureKeepsDirectory(t *testing.T) {
	env, out := newTestEnv(t)
	root := env.Session.Dir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0o644))

	err := run(t, env, "cd missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, CategoryResource, KindOf(err).Category())

	err = run(t, env, "cd file.txt")
	assert.ErrorIs(t, err, ErrNotADirectory)

	require.NoError(t, run(t, env, "pwd"))
	assert.Equal(t, root+"\n", out.String())
}

func TestLs(t *testing.T) {
	env, out := newTestEnv(t)
	root := env.Session.Dir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), nil, 0o644))

	require.NoError(t, run(t, env, "ls"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "a.txt")
	assert.Contains(t, lines[1], "b.go")
	assert.Contains(t, lines[2], "dir/")
}

func TestLsPatternAndDir(t *testing.T) {
	env, out := newTestEnv(t)
	root := env.Session.Dir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "notes.md"), nil, 0o644))

	require.NoError(t, run(t, env, "ls *.go src"))
	assert.Contains(t, out.String(), "main.go")
	assert.NotContains(t, out.String(), "notes.md")

	out.Reset()
	require.NoError(t, run(t, env, "ls src"))
	assert.Contains(t, out.String(), "notes.md")
}

func TestLsErrors(t *testing.T) {
	env, _ := newTestEnv(t)

	assert.ErrorIs(t, run(t, env, "ls nope"), ErrNotFound)
	assert.ErrorIs(t, run(t, env, "ls [ ."), ErrInvalidArgument)
}

// =============================================================================
// MUTATION TESTS
// =============================================================================

func TestMkdirIsIdempotent(t *testing.T) {
	env, _ := newTestEnv(t)
	root := env.Session.Dir()

	require.NoError(t, run(t, env, "mkdir a b c"))
	require.NoError(t, run(t, env, "mkdir a b c"))

	for _, name := range []string{"a", "b", "c"} {
		info, err := os.Stat(filepath.Join(root, name))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestMkdirNested(t *testing.T) {
	env, _ := newTestEnv(t)
	require.NoError(t, run(t, env, "mkdir x/y/z"))
	assert.DirExists(t, filepath.Join(env.Session.Dir(), "x", "y", "z"))

	assert.ErrorIs(t, run(t, env, "mkdir"), ErrInvalidArgument)
}

func TestRmDirectoryNeedsRecursive(t *testing.T) {
	env, _ := newTestEnv(t)
	root := env.Session.Dir()
	dir := filepath.Join(root, "full")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "inner"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644))

	err := run(t, env, "rm full")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIsADirectory)
	assert.Contains(t, err.Error(), "use -r")
	assert.DirExists(t, dir)

	require.NoError(t, run(t, env, "rm -r full"))
	assert.NoDirExists(t, dir)
}

func TestRmEmptyDirectoryWithoutFlag(t *testing.T) {
	env, _ := newTestEnv(t)
	dir := filepath.Join(env.Session.Dir(), "empty")
	require.NoError(t, os.Mkdir(dir, 0o755))

	require.NoError(t, run(t, env, "rm empty"))
	assert.NoDirExists(t, dir)
}

func TestRmFlags(t *testing.T) {
	tests := []struct {
		args      string
		recursive bool
		force     bool
		paths     []string
	}{
		{"x", false, false, []string{"x"}},
		{"-r x", true, false, []string{"x"}},
		{"-f x", false, true, []string{"x"}},
		{"-rf x", true, true, []string{"x"}},
		{"x -fr", true, true, []string{"x"}},
		{"-rvf x", false, false, []string{"-rvf", "x"}},
	}

	for _, tc := range tests {
		opts := parseRmArgs(tc.args)
		assert.Equal(t, tc.recursive, opts.recursive, tc.args)
		assert.Equal(t, tc.force, opts.force, tc.args)
		assert.Equal(t, tc.paths, opts.paths, tc.args)
	}
}

func TestRmUnrecognizedFlagNamed(t *testing.T) {
	env, _ := newTestEnv(t)
	dst := filepath.Join(env.Session.Dir(), "dst")
	require.NoError(t, os.Mkdir(dst, 0o755))

	err := run(t, env, "rm -rvf dst")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "'-rvf' is not a recognized flag and was read as a path")
	assert.DirExists(t, dst)

	err = run(t, env, "rm a b")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotContains(t, err.Error(), "recognized flag")
}

func TestRmDashPrefixedFile(t *testing.T) {
	env, _ := newTestEnv(t)
	path := filepath.Join(env.Session.Dir(), "-rvf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, run(t, env, "rm -rvf"))
	assert.NoFileExists(t, path)
}

func TestRmMissing(t *testing.T) {
	env, _ := newTestEnv(t)

	assert.ErrorIs(t, run(t, env, "rm ghost"), ErrNotFound)
	assert.NoError(t, run(t, env, "rm -f ghost"))
	assert.ErrorIs(t, run(t, env, "rm"), ErrInvalidArgument)
	assert.ErrorIs(t, run(t, env, "rm a b"), ErrInvalidArgument)
}

func TestRmFile(t *testing.T) {
	env, _ := newTestEnv(t)
	file := filepath.Join(env.Session.Dir(), "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	require.NoError(t, run(t, env, "rm f.txt"))
	assert.NoFileExists(t, file)
}

func TestMv(t *testing.T) {
	env, out := newTestEnv(t)
	root := env.Session.Dir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dest"), 0o755))

	require.NoError(t, run(t, env, "mv a.txt b.txt"))
	assert.NoFileExists(t, filepath.Join(root, "a.txt"))
	assert.FileExists(t, filepath.Join(root, "b.txt"))
	assert.Contains(t, out.String(), "Moved 'a.txt' to 'b.txt'")

	require.NoError(t, run(t, env, "mv b.txt dest"))
	data, err := os.ReadFile(filepath.Join(root, "dest", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestMvErrors(t *testing.T) {
	env, _ := newTestEnv(t)

	assert.ErrorIs(t, run(t, env, "mv only"), ErrInvalidArgument)
	assert.ErrorIs(t, run(t, env, "mv a b c"), ErrInvalidArgument)
	assert.ErrorIs(t, run(t, env, "mv ghost b"), ErrNotFound)
}

func TestCopyTree(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "deep", "f.txt"), []byte("data"), 0o600))
	info, err := os.Stat(src)
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "dst")
	require.NoError(t, copyTree(src, dst, info))

	data, err := os.ReadFile(filepath.Join(dst, "deep", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestWrite(t *testing.T) {
	env, out := newTestEnv(t)

	require.NoError(t, run(t, env, "write note.txt hello   spaced  world"))
	data, err := os.ReadFile(filepath.Join(env.Session.Dir(), "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello   spaced  world", string(data))
	assert.Contains(t, out.String(), "Content written to 'note.txt'")

	assert.ErrorIs(t, run(t, env, "write note.txt"), ErrInvalidArgument)
	assert.ErrorIs(t, run(t, env, "write"), ErrInvalidArgument)
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestFind(t *testing.T) {
	env, out := newTestEnv(t)
	root := env.Session.Dir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "x.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "y.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "z.txt"), nil, 0o644))

	require.NoError(t, run(t, env, "find *.go"))
	text := out.String()
	assert.Contains(t, text, "Searching for '*.go' in '"+root+"'...")
	assert.Contains(t, text, filepath.Join(root, "a", "b", "x.go"))
	assert.Contains(t, text, filepath.Join(root, "y.go"))
	assert.NotContains(t, text, "z.txt")

	out.Reset()
	require.NoError(t, run(t, env, "find *.rs a"))
	assert.Contains(t, out.String(), "No files found matching '*.rs'")
}

func TestFindErrors(t *testing.T) {
	env, _ := newTestEnv(t)

	assert.ErrorIs(t, run(t, env, "find"), ErrInvalidArgument)
	assert.ErrorIs(t, run(t, env, "find *.go nope"), ErrNotFound)
	assert.ErrorIs(t, run(t, env, "find [ ."), ErrInvalidArgument)
}

// =============================================================================
// HISTORY EXPORT TESTS
// =============================================================================

func TestExportHistory(t *testing.T) {
	env, out := newTestEnv(t)
	env.History = &fakeHistory{lines: []string{"ls", "cd src", "export_history out"}}

	require.NoError(t, run(t, env, "export_history out"))

	path := filepath.Join(env.Session.Dir(), "out.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ls\ncd src\nexport_history out\n", string(data))
	assert.Contains(t, out.String(), "Command history exported to '"+path+"'")

	require.NoError(t, run(t, env, "export_history log.txt"))
	assert.FileExists(t, filepath.Join(env.Session.Dir(), "log.txt"))
	assert.NoFileExists(t, filepath.Join(env.Session.Dir(), "log.txt.txt"))
}

func TestExportHistoryErrors(t *testing.T) {
	env, _ := newTestEnv(t)

	assert.ErrorIs(t, run(t, env, "export_history"), ErrInvalidArgument)
	assert.ErrorIs(t, run(t, env, "export_history missing/dir/out"), ErrNotFound)
}
