// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jeranaias/rigsh/internal/render"
)

// =============================================================================
// FILE DISPLAY
// =============================================================================

// handleCat prints a whole text file, highlighted by type.
func handleCat(_ context.Context, env *Env, args string) error {
	arg := strings.TrimSpace(args)
	if arg == "" {
		return usageError("cat", "cat <file>")
	}

	f, err := openRegular("cat", env.resolve(arg), arg)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fsError("cat", arg, err)
	}
	return showText(env, "cat", arg, data, true)
}

// handleHead prints the first lines of a text file.
func handleHead(_ context.Context, env *Env, args string) error {
	n, arg, err := parseHeadArgs(args, env.headLines())
	if err != nil {
		return err
	}

	f, err := openRegular("head", env.resolve(arg), arg)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := readLines(f, n)
	if err != nil {
		return fsError("head", arg, err)
	}
	return showText(env, "head", arg, data, false)
}

// parseHeadArgs accepts "<file>" or "-n N <file>".
func parseHeadArgs(args string, defaultLines int) (int, string, error) {
	tokens := fields(args)
	if len(tokens) == 0 {
		return 0, "", usageError("head", "head [-n N] <file>")
	}
	if tokens[0] != "-n" {
		return defaultLines, strings.TrimSpace(args), nil
	}
	if len(tokens) != 3 {
		return 0, "", usageError("head", "head [-n N] <file>")
	}
	n, err := strconv.Atoi(tokens[1])
	if err != nil || n < 0 {
		return 0, "", invalidArgument("head", fmt.Sprintf("invalid number of lines '%s'", tokens[1]))
	}
	return n, tokens[2], nil
}

// openRegular opens path for reading, rejecting directories up front.
func openRegular(command, path, arg string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fsError(command, arg, err)
	}
	if info.IsDir() {
		return nil, &CommandError{Command: command, Kind: KindIsADirectory, Path: arg, Reason: "is a directory"}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fsError(command, arg, err)
	}
	return f, nil
}

// readLines reads at most n lines, keeping their terminators.
func readLines(r io.Reader, n int) ([]byte, error) {
	var buf bytes.Buffer
	br := bufio.NewReader(r)
	for i := 0; i < n; i++ {
		line, err := br.ReadBytes('\n')
		buf.Write(line)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// isBinary reports whether data cannot be shown as text.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data)
}

// showText renders data to the output. Markdown rendering is only applied to
// whole files, and an empty excerpt prints nothing.
func showText(env *Env, command, name string, data []byte, whole bool) error {
	if len(data) == 0 && !whole {
		return nil
	}
	if isBinary(data) {
		return &CommandError{Command: command, Kind: KindBinaryFile, Path: name, Reason: "appears to be a binary file"}
	}

	opts := env.Display.Render
	if !whole {
		opts.Markdown = false
	}
	out, err := render.File(name, string(data), opts)
	if err != nil {
		env.log().Debug("render failed, printing plain text", zap.String("file", name), zap.Error(err))
		out = string(data)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(env.Out, out)
	return err
}
