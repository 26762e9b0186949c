// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the built-in command set of the shell.
//
// It holds the command registry, line splitting, path resolution, tab
// completion and every built-in handler. Handlers never print errors
// themselves; they return a *CommandError and the dispatcher reports it.
//
// # Key Types
//
//   - Registry: ordered name -> Command mapping, filled once at start-up
//   - Handler: executes a command with its raw argument string
//   - Env: session state and collaborators handed to every handler
//   - Completer: two-mode tab completion (command names, then paths)
//   - CommandError: typed failure with a Kind and Category
//
// # Usage
//
//	reg := commands.NewRegistry()
//	name, args := commands.SplitLine("ls  *.go src")
//	if cmd, ok := reg.Lookup(name); ok {
//	    err := cmd.Handler.Execute(ctx, env, args)
//	}
//
// Completion:
//
//	c := commands.NewCompleter(reg, session.Dir)
//	c.Complete("h", 0) // "help ", true
//	c.Complete("h", 1) // "head ", true
//	c.Complete("h", 2) // "", false
package commands
