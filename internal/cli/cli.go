// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigsh/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates the shell could not start or failed
	ExitGeneralError = 1
	// ExitUsageError indicates invalid flags or arguments
	ExitUsageError = 2
)

// UsageError marks a failure caused by bad process arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}
	return ExitGeneralError
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// Options holds the root command flags.
type Options struct {
	ConfigPath string
	Cwd        string
	NoColor    bool
	Offline    bool
}

// NewRootCommand builds the rigsh command tree. Output goes to out and
// errOut; the interactive shell reads the terminal directly.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "rigsh",
		Short: "Interactive command shell with natural-language commands",
		Long: `rigsh is an interactive shell with built-in file, process and system
commands, tab completion, history export and an "nl" command that turns plain
English into a shell command.

Examples:
  rigsh                       Start in the current directory
  rigsh --cwd ~/projects      Start somewhere else
  rigsh --no-color            Plain output
  rigsh --offline             Keep nl requests on this machine
  rigsh config init           Write ~/.rigsh/config.toml`,
		Args:          cobra.NoArgs,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	root.SetVersionTemplate("rigsh {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.rigsh/config.toml)")
	root.Flags().StringVar(&opts.Cwd, "cwd", "", "starting directory (default: current directory)")
	root.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colors and syntax highlighting")
	root.Flags().BoolVar(&opts.Offline, "offline", false, "local-only mode: nl may only use an Ollama server on localhost")

	root.AddCommand(newConfigCommand(opts))
	return root
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s/%s)", Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// Execute runs the root command with args and returns the exit code.
func Execute(args []string) int {
	return execute(args, os.Stdout, os.Stderr)
}

func execute(args []string, out, errOut io.Writer) int {
	root := NewRootCommand(out, errOut)
	root.SetArgs(args)

	// Anything cobra rejects before a command starts is an argument problem
	started := false
	root.PersistentPreRun = func(*cobra.Command, []string) { started = true }

	cmd, err := root.ExecuteC()
	if err == nil {
		return ExitSuccess
	}
	if !started && !errors.As(err, new(*UsageError)) {
		err = &UsageError{Err: err}
	}

	fmt.Fprintln(errOut, styles.RenderError(err.Error()))
	if ExitCode(err) == ExitUsageError && cmd != nil {
		fmt.Fprintf(errOut, "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return ExitCode(err)
}
