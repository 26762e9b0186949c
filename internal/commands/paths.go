// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve turns arg into an absolute, cleaned path rooted at cwd.
//
// It is a pure string transformation: nothing on disk is consulted, so callers
// must check existence and permissions themselves. An empty arg resolves to
// cwd; commands that want a different default (cd goes home) handle that
// before calling.
func Resolve(cwd, arg string) string {
	if arg == "" {
		return filepath.Clean(cwd)
	}
	if isAbsolute(arg) {
		return filepath.Clean(arg)
	}
	return filepath.Join(cwd, arg)
}

// isAbsolute reports whether arg starts at a filesystem root. On POSIX this is
// a leading "/"; filepath.IsAbs covers volume names elsewhere.
func isAbsolute(arg string) bool {
	return strings.HasPrefix(arg, string(os.PathSeparator)) || strings.HasPrefix(arg, "/") || filepath.IsAbs(arg)
}

// splitPartialPath splits a partially typed path into the directory part
// (including its trailing separator) and the final segment being typed.
//
//	"src/ma" -> ("src/", "ma")
//	"src/"   -> ("src/", "")
//	"ma"     -> ("", "ma")
func splitPartialPath(partial string) (dir, base string) {
	idx := strings.LastIndexAny(partial, "/"+string(os.PathSeparator))
	if idx < 0 {
		return "", partial
	}
	return partial[:idx+1], partial[idx+1:]
}
