// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the shell's zap logger. Logs go to a file, never to
// the terminal, so they do not interleave with command output.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/rigsh/internal/config"
)

// ParseLevel maps a config level name to a zap level. Unknown names map to
// info.
func ParseLevel(name string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// New builds a JSON logger writing to path at the given level. The returned
// AtomicLevel can be changed later without rebuilding the logger.
func New(path, level string) (*zap.Logger, zap.AtomicLevel, error) {
	atom := zap.NewAtomicLevelAt(ParseLevel(level))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, atom, fmt.Errorf("create log directory: %w", err)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = atom
	zapConfig.Sampling = nil
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.OutputPaths = []string{path}
	zapConfig.ErrorOutputPaths = []string{path}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, atom, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, atom, nil
}

// FromConfig builds the logger described by cfg. On failure it returns a
// no-op logger together with the error so the shell can still start.
func FromConfig(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	path, err := cfg.LogPath()
	if err != nil {
		return zap.NewNop(), zap.NewAtomicLevel(), err
	}
	logger, atom, err := New(path, cfg.Log.Level)
	if err != nil {
		return zap.NewNop(), atom, err
	}
	return logger.With(zap.Int("pid", os.Getpid())), atom, nil
}
