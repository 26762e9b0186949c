// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/rigsh/internal/commands"
	"github.com/jeranaias/rigsh/internal/config"
	"github.com/jeranaias/rigsh/internal/history"
	"github.com/jeranaias/rigsh/internal/logging"
	"github.com/jeranaias/rigsh/internal/nl"
	"github.com/jeranaias/rigsh/internal/offline"
	"github.com/jeranaias/rigsh/internal/render"
	"github.com/jeranaias/rigsh/internal/sysinfo"
	"github.com/jeranaias/rigsh/internal/ui/styles"
)

// Messages shown by the loop itself.
const (
	interruptNotice = "Use 'exit' to quit the terminal"
	unknownHint     = "Type help for a list of available commands"
	bannerHint      = "Type help for a list of commands"
)

// TranslatorFactory builds the nl translator for a config section.
type TranslatorFactory func(ctx context.Context, cfg config.NLConfig, logger *zap.Logger) (nl.Translator, error)

// Options configures a Shell. Session and Reader are required.
type Options struct {
	Session  *commands.Session
	Registry *commands.Registry
	History  *history.Store
	Journal  history.Journal
	Reader   LineReader
	Sampler  sysinfo.Sampler

	// Config is applied at construction; nil means config.Default()
	Config *config.Config

	// Reloads delivers configs from the file watcher
	Reloads <-chan config.Update

	// NewTranslator defaults to nl.New
	NewTranslator TranslatorFactory

	Logger   *zap.Logger
	LogLevel *zap.AtomicLevel

	Out io.Writer
	Err io.Writer

	Version string

	// Color enables syntax highlighting in cat and head
	Color bool

	// HandleSignals installs a SIGINT handler for the duration of Run
	HandleSignals bool
}

// Shell is the dispatcher.
type Shell struct {
	env           *commands.Env
	history       *history.Store
	journal       history.Journal
	reader        LineReader
	reloads       <-chan config.Update
	newTranslator TranslatorFactory
	logger        *zap.Logger
	level         *zap.AtomicLevel
	version       string
	color         bool
	banner        bool
	localOnly     bool
	handleSignals bool

	mu     sync.Mutex
	cancel context.CancelFunc // cancels the running command
}

// New creates a Shell and applies opts.Config.
func New(ctx context.Context, opts Options) (*Shell, error) {
	if opts.Session == nil {
		return nil, errors.New("shell: session is required")
	}
	if opts.Reader == nil {
		return nil, errors.New("shell: reader is required")
	}
	if opts.Registry == nil {
		opts.Registry = commands.NewRegistry()
	}
	if opts.History == nil {
		opts.History = history.NewStore()
	}
	if opts.Journal == nil {
		opts.Journal = history.NopJournal{}
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.NewTranslator == nil {
		opts.NewTranslator = nl.New
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	s := &Shell{
		history:       opts.History,
		journal:       opts.Journal,
		reader:        opts.Reader,
		reloads:       opts.Reloads,
		newTranslator: opts.NewTranslator,
		logger:        opts.Logger,
		level:         opts.LogLevel,
		version:       opts.Version,
		color:         opts.Color,
		handleSignals: opts.HandleSignals,
	}
	s.env = &commands.Env{
		Session:  opts.Session,
		Registry: opts.Registry,
		History:  opts.History,
		Sampler:  opts.Sampler,
		Submit:   s.Submit,
		Out:      opts.Out,
		Err:      opts.Err,
		Logger:   opts.Logger,
	}
	s.ApplyConfig(ctx, opts.Config)
	return s, nil
}

// Env exposes the handler environment.
func (s *Shell) Env() *commands.Env {
	return s.env
}

// =============================================================================
// DISPATCH
// =============================================================================

// Submit records raw in the history and runs it. Blank lines are ignored.
// Failures are reported on the error writer; Submit never stops the loop
// except through the exit command.
func (s *Shell) Submit(ctx context.Context, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	entry := s.history.Append(raw)
	if err := s.journal.Record(ctx, entry, s.env.Session.Dir()); err != nil {
		s.logger.Warn("history journal write failed", zap.Error(err))
	}

	name := commands.ExtractCommandName(line)
	s.logger.Debug("dispatch", zap.String("command", name), zap.Int("seq", entry.Index))

	cmdCtx, cancel := context.WithCancel(ctx)
	prev := s.swapCancel(cancel)
	defer func() {
		s.swapCancel(prev)
		cancel()
	}()

	if err := s.execute(cmdCtx, line); err != nil {
		s.report(name, err)
	}
}

// execute runs one line, converting a handler panic into an error.
func (s *Shell) execute(ctx context.Context, line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("command panicked",
				zap.String("line", line),
				zap.Any("panic", r),
				zap.Stack("stack"))
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return s.env.Registry.Execute(ctx, s.env, line)
}

// report prints err and logs it with its kind.
func (s *Shell) report(name string, err error) {
	fmt.Fprintln(s.env.Err, styles.RenderError(err.Error()))
	if commands.IsUnknownCommand(err) {
		fmt.Fprintln(s.env.Err, unknownHint)
	}
	s.logger.Warn("command failed",
		zap.String("command", name),
		zap.Stringer("kind", commands.KindOf(err)),
		zap.Error(err))
}

func (s *Shell) swapCancel(cancel context.CancelFunc) context.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.cancel
	s.cancel = cancel
	return prev
}

// Interrupt cancels the running command. It reports false when no command
// is running.
func (s *Shell) Interrupt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

// =============================================================================
// LOOP
// =============================================================================

// Run reads and dispatches lines until the session stops, input ends, or ctx
// is done. It closes the reader on return.
func (s *Shell) Run(ctx context.Context) error {
	defer s.reader.Close()

	if s.banner {
		fmt.Fprintf(s.env.Out, "rigsh v%s\n", s.version)
		if status := offline.StatusIndicator(s.localOnly); status != "" {
			fmt.Fprintln(s.env.Out, styles.RenderWarning(status))
		}
		fmt.Fprintln(s.env.Out, styles.RenderMuted(bannerHint))
	}

	if s.handleSignals {
		stop := s.watchInterrupts()
		defer stop()
	}

	for s.env.Session.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.applyPendingConfig(ctx)

		line, err := s.reader.ReadLine(s.prompt())
		switch {
		case errors.Is(err, ErrInterrupted):
			fmt.Fprintln(s.env.Out)
			fmt.Fprintln(s.env.Out, interruptNotice)
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.env.Out)
			s.exit(ctx)
			return nil
		case err != nil:
			return fmt.Errorf("read line: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			s.reader.AppendHistory(line)
		}
		s.Submit(ctx, line)
	}
	return nil
}

// exit runs the exit command without recording it.
func (s *Shell) exit(ctx context.Context) {
	if cmd := s.env.Registry.ByKind(commands.CmdExit); cmd != nil {
		if err := cmd.Handler.Execute(ctx, s.env, ""); err == nil {
			return
		}
	}
	s.env.Session.Stop()
}

func (s *Shell) prompt() string {
	return styles.Prompt(filepath.Base(s.env.Session.Dir()))
}

// watchInterrupts routes SIGINT to Interrupt while Run is active. While the
// line editor owns the terminal, Ctrl-C arrives as ErrInterrupted instead.
func (s *Shell) watchInterrupts() func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigs:
				s.handleInterruptSignal()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// handleInterruptSignal cancels the running command. At the prompt it prints
// the same notice as an interrupted read, then the prompt again.
func (s *Shell) handleInterruptSignal() {
	if s.Interrupt() {
		s.logger.Info("command interrupted")
		return
	}
	fmt.Fprintln(s.env.Out)
	fmt.Fprintln(s.env.Out, interruptNotice)
	fmt.Fprint(s.env.Out, s.prompt())
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// ApplyConfig installs display options, log level and a translator built
// from cfg. A translator that cannot be built leaves nl unavailable.
func (s *Shell) ApplyConfig(ctx context.Context, cfg *config.Config) {
	config.SetGlobal(cfg)
	s.banner = cfg.Shell.Banner
	s.localOnly = cfg.NL.LocalOnly
	s.env.Display = DisplayOptions(cfg.Display, s.color)
	if s.level != nil {
		s.level.SetLevel(logging.ParseLevel(cfg.Log.Level))
	}

	tr, err := s.newTranslator(ctx, cfg.NL, s.logger)
	if err != nil {
		s.logger.Info("translator unavailable", zap.Error(err))
		s.env.Translator = nil
		s.env.TranslatorErr = err
		if errors.Is(err, nl.ErrDisabled) {
			s.env.TranslatorErr = nil
		}
		return
	}
	s.env.Translator = tr
	s.env.TranslatorErr = nil
}

// applyPendingConfig applies a reload waiting in the mailbox, if any.
func (s *Shell) applyPendingConfig(ctx context.Context) {
	if s.reloads == nil {
		return
	}
	select {
	case u, ok := <-s.reloads:
		if !ok {
			s.reloads = nil
			return
		}
		if u.Err != nil {
			fmt.Fprintln(s.env.Err, styles.RenderWarning("config reload failed: "+u.Err.Error()))
			return
		}
		s.ApplyConfig(ctx, u.Config)
		fmt.Fprintln(s.env.Out, styles.RenderMuted("Configuration reloaded"))
	default:
	}
}

// DisplayOptions converts the [display] section. Without color, highlighting
// is off and files print as plain text.
func DisplayOptions(d config.DisplayConfig, color bool) commands.DisplayOptions {
	opts := commands.DisplayOptions{HeadLines: d.HeadLines}
	if color {
		opts.Render = render.Options{
			Style:     d.HighlightStyle,
			Formatter: d.Formatter,
			Markdown:  d.RenderMarkdown,
			WordWrap:  d.WordWrap,
		}
	}
	return opts
}
