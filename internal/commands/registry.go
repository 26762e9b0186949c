// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Kind enumerates the built-in commands. The registry maps each kind to
// exactly one name and one handler.
type Kind int

const (
	CmdLs Kind = iota
	CmdCd
	CmdPwd
	CmdMkdir
	CmdRm
	CmdMv
	CmdExit
	CmdHelp
	CmdCPU
	CmdMemory
	CmdPs
	CmdCat
	CmdHead
	CmdFind
	CmdExportHistory
	CmdClear
	CmdNL
	CmdWrite
	CmdCustom // commands registered outside the built-in set
)

// Handler executes a command with its raw argument string.
type Handler interface {
	Execute(ctx context.Context, env *Env, args string) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, env *Env, args string) error

// Execute calls f.
func (f HandlerFunc) Execute(ctx context.Context, env *Env, args string) error {
	return f(ctx, env, args)
}

// Command describes a registered command.
type Command struct {
	// Kind tags the command for dispatch-independent lookups
	Kind Kind

	// Name is the dispatch key, always lowercase
	Name string

	// Usage shows argument syntax (e.g., "rm [-r|-f] <path>")
	Usage string

	// Description is shown in help
	Description string

	// PathArgs enables filesystem completion for the command's arguments
	PathArgs bool

	// Handler executes the command
	Handler Handler
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry maps command names to commands. It is filled once at start-up and
// read-only afterwards; enumeration follows registration order.
type Registry struct {
	ordered []*Command
	byName  map[string]*Command
	byKind  map[Kind]*Command
}

// ErrDuplicateCommand is returned when a name is registered twice.
var ErrDuplicateCommand = errors.New("duplicate command name")

// NewEmptyRegistry creates a registry with no commands.
func NewEmptyRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Command),
		byKind: make(map[Kind]*Command),
	}
}

// NewRegistry creates a registry holding every built-in command.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.registerBuiltins()
	return r
}

// Register adds a command. Names are case-folded and must be unique.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Handler == nil {
		return errors.New("command and handler are required")
	}
	name := foldToken(cmd.Name)
	if name == "" {
		return errors.New("command name is required")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}

	cmd.Name = name
	r.ordered = append(r.ordered, cmd)
	r.byName[name] = cmd
	if cmd.Kind != CmdCustom {
		r.byKind[cmd.Kind] = cmd
	}
	return nil
}

// mustRegister panics on registration errors; used only for the built-ins.
func (r *Registry) mustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Get retrieves a command by name, or nil when absent.
func (r *Registry) Get(name string) *Command {
	cmd, _ := r.Lookup(name)
	return cmd
}

// Lookup retrieves a command by name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.byName[foldToken(name)]
	return cmd, ok
}

// ByKind retrieves a built-in command by its kind.
func (r *Registry) ByKind(kind Kind) *Command {
	return r.byKind[kind]
}

// Names returns every command name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.ordered))
	for i, cmd := range r.ordered {
		names[i] = cmd.Name
	}
	return names
}

// All returns every command in registration order.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, len(r.ordered))
	copy(cmds, r.ordered)
	return cmds
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Execute splits line, looks up its command token and runs the handler with
// the verbatim argument string. An unregistered token yields an
// UnknownCommand error.
func (r *Registry) Execute(ctx context.Context, env *Env, line string) error {
	name, args := SplitLine(line)
	cmd := r.Get(name)
	if cmd == nil {
		return unknownCommand(name)
	}
	return cmd.Handler.Execute(ctx, env, args)
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.mustRegister(&Command{
		Kind:        CmdLs,
		Name:        "ls",
		Usage:       "ls [pattern] [dir]",
		Description: "List directory contents",
		PathArgs:    true,
		Handler:     HandlerFunc(handleLs),
	})
	r.mustRegister(&Command{
		Kind:        CmdCd,
		Name:        "cd",
		Usage:       "cd [dir]",
		Description: "Change directory",
		PathArgs:    true,
		Handler:     HandlerFunc(handleCd),
	})
	r.mustRegister(&Command{
		Kind:        CmdPwd,
		Name:        "pwd",
		Usage:       "pwd",
		Description: "Print current working directory",
		Handler:     HandlerFunc(handlePwd),
	})
	r.mustRegister(&Command{
		Kind:        CmdMkdir,
		Name:        "mkdir",
		Usage:       "mkdir <dir>...",
		Description: "Create directories",
		PathArgs:    true,
		Handler:     HandlerFunc(handleMkdir),
	})
	r.mustRegister(&Command{
		Kind:        CmdRm,
		Name:        "rm",
		Usage:       "rm [-r|-f] <path>",
		Description: "Remove file or directory (-r for recursive)",
		PathArgs:    true,
		Handler:     HandlerFunc(handleRm),
	})
	r.mustRegister(&Command{
		Kind:        CmdMv,
		Name:        "mv",
		Usage:       "mv <src> <dst>",
		Description: "Move a file or directory",
		Handler:     HandlerFunc(handleMv),
	})
	r.mustRegister(&Command{
		Kind:        CmdExit,
		Name:        "exit",
		Usage:       "exit",
		Description: "Exit the terminal",
		Handler:     HandlerFunc(handleExit),
	})
	r.mustRegister(&Command{
		Kind:        CmdHelp,
		Name:        "help",
		Usage:       "help",
		Description: "Show this help message",
		Handler:     HandlerFunc(handleHelp),
	})
	r.mustRegister(&Command{
		Kind:        CmdCPU,
		Name:        "cpu",
		Usage:       "cpu",
		Description: "Show CPU usage",
		Handler:     HandlerFunc(handleCPU),
	})
	r.mustRegister(&Command{
		Kind:        CmdMemory,
		Name:        "memory",
		Usage:       "memory",
		Description: "Show memory usage",
		Handler:     HandlerFunc(handleMemory),
	})
	r.mustRegister(&Command{
		Kind:        CmdPs,
		Name:        "ps",
		Usage:       "ps",
		Description: "List running processes",
		Handler:     HandlerFunc(handlePs),
	})
	r.mustRegister(&Command{
		Kind:        CmdCat,
		Name:        "cat",
		Usage:       "cat <file>",
		Description: "Display file contents",
		PathArgs:    true,
		Handler:     HandlerFunc(handleCat),
	})
	r.mustRegister(&Command{
		Kind:        CmdHead,
		Name:        "head",
		Usage:       "head [-n N] <file>",
		Description: "Display the first lines of a file",
		PathArgs:    true,
		Handler:     HandlerFunc(handleHead),
	})
	r.mustRegister(&Command{
		Kind:        CmdFind,
		Name:        "find",
		Usage:       "find <pattern> [dir]",
		Description: "Search for files by pattern",
		Handler:     HandlerFunc(handleFind),
	})
	r.mustRegister(&Command{
		Kind:        CmdExportHistory,
		Name:        "export_history",
		Usage:       "export_history <file>",
		Description: "Export command history to file",
		Handler:     HandlerFunc(handleExportHistory),
	})
	r.mustRegister(&Command{
		Kind:        CmdClear,
		Name:        "clear",
		Usage:       "clear",
		Description: "Clear the screen",
		Handler:     HandlerFunc(handleClear),
	})
	r.mustRegister(&Command{
		Kind:        CmdNL,
		Name:        "nl",
		Usage:       "nl <free text>",
		Description: "Process natural language command",
		Handler:     HandlerFunc(handleNL),
	})
	r.mustRegister(&Command{
		Kind:        CmdWrite,
		Name:        "write",
		Usage:       "write <file> <content...>",
		Description: "Write content to a file",
		Handler:     HandlerFunc(handleWrite),
	})
}
