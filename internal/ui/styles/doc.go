// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the terminal colors of the shell.
//
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
// Output degrades to plain text when the color profile is Ascii, which is the
// case for pipes, NO_COLOR and --no-color.
//
// # Usage
//
//	fmt.Println(styles.RenderDirectory("src/"))
//	fmt.Println(styles.RenderError("cd: 'x' not found"))
//	prompt := styles.Prompt("project")
package styles
