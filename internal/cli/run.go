// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jeranaias/rigsh/internal/commands"
	"github.com/jeranaias/rigsh/internal/config"
	"github.com/jeranaias/rigsh/internal/history"
	"github.com/jeranaias/rigsh/internal/logging"
	"github.com/jeranaias/rigsh/internal/offline"
	"github.com/jeranaias/rigsh/internal/shell"
	"github.com/jeranaias/rigsh/internal/sysinfo"
	"github.com/jeranaias/rigsh/internal/ui/styles"
)

// runShell wires the configuration, logger, journal, line editor and config
// watcher into a Shell and runs it until exit.
func runShell(ctx context.Context, opts *Options, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Offline {
		offline.SetOfflineMode(true)
	}

	cfg, cfgErr := loadConfig(opts)
	color := ColorEnabled(opts.NoColor)
	styles.SetColorEnabled(color)
	if cfgErr != nil {
		fmt.Fprintln(errOut, styles.RenderWarning(cfgErr.Error()+"; using defaults"))
	}

	dir, err := startDir(opts.Cwd, cfg.Shell.StartDir)
	if err != nil {
		return err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = dir
	}

	logger, level, err := logging.FromConfig(cfg)
	if err != nil {
		fmt.Fprintln(errOut, styles.RenderWarning("logging disabled: "+err.Error()))
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("rigsh starting",
		zap.String("version", Version),
		zap.String("dir", dir),
		zap.Bool("color", color),
		zap.Bool("offline", offline.IsOfflineMode()))
	if cfgErr != nil {
		logger.Warn("config load failed", zap.Error(cfgErr))
	}

	journal, preload := openJournal(ctx, cfg, logger)
	defer journal.Close()

	session := commands.NewSession(dir, home)
	registry := commands.NewRegistry()
	reader := shell.NewLinerReader(commands.NewCompleter(registry, session.Dir), preload)

	var reloads <-chan config.Update
	if watcher := startWatcher(ctx, opts, logger); watcher != nil {
		defer watcher.Close()
		reloads = watcher.Updates()
	}

	sh, err := shell.New(ctx, shell.Options{
		Session:       session,
		Registry:      registry,
		Journal:       journal,
		Reader:        reader,
		Sampler:       sysinfo.NewHostSampler(),
		Config:        cfg,
		Reloads:       reloads,
		Logger:        logger,
		LogLevel:      &level,
		Out:           out,
		Err:           errOut,
		Version:       Version,
		Color:         color,
		HandleSignals: true,
	})
	if err != nil {
		_ = reader.Close()
		return err
	}

	err = sh.Run(ctx)
	logger.Info("rigsh stopped", zap.Error(err))
	return err
}

// startDir resolves the initial directory: --cwd, then [shell] start_dir,
// then the process working directory. A bad --cwd is a usage error.
func startDir(flagDir, configDir string) (string, error) {
	if flagDir != "" {
		dir, err := checkDir(flagDir)
		if err != nil {
			return "", usageErrorf("--cwd: %v", err)
		}
		return dir, nil
	}
	if configDir != "" {
		if dir, err := checkDir(configDir); err == nil {
			return dir, nil
		}
	}
	return os.Getwd()
}

func checkDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// openJournal opens the persistent history when enabled and returns the most
// recent lines for the editor. Failures degrade to an in-memory session.
func openJournal(ctx context.Context, cfg *config.Config, logger *zap.Logger) (history.Journal, []string) {
	if !cfg.Shell.PersistHistory {
		return history.NopJournal{}, nil
	}
	path, err := cfg.HistoryDBPath()
	if err != nil {
		logger.Warn("history journal disabled", zap.Error(err))
		return history.NopJournal{}, nil
	}

	journal, err := history.OpenSQLiteJournal(path)
	if err != nil {
		logger.Warn("history journal disabled", zap.String("path", path), zap.Error(err))
		return history.NopJournal{}, nil
	}

	preload, err := journal.Recent(ctx, cfg.Shell.HistoryLoadLimit)
	if err != nil {
		logger.Warn("history preload failed", zap.Error(err))
	}
	return journal, preload
}

// startWatcher watches the config file for changes. It returns nil when the
// file's directory cannot be watched.
func startWatcher(ctx context.Context, opts *Options, logger *zap.Logger) *config.Watcher {
	path, err := configTarget(opts)
	if err != nil {
		return nil
	}
	watcher, err := config.NewWatcher(path, logger)
	if err != nil {
		logger.Info("config watcher disabled", zap.String("path", path), zap.Error(err))
		return nil
	}
	watcher.Start(ctx)
	return watcher
}
