// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package commands

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// canEnter always succeeds; Windows has no search bit.
func canEnter(path string) error {
	return nil
}

// isExecutable checks the file extension against the common executable types.
func isExecutable(path string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exe", ".bat", ".cmd", ".com", ".ps1":
		return true
	}
	return false
}
