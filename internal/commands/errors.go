// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// ErrorKind classifies a command failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindIsADirectory
	KindNotADirectory
	KindBinaryFile
	KindInvalidArgument
	KindIOFailure
	KindUnknownCommand
	KindRecursion
	KindCollaborator
)

// String returns the kind name used in logs.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindIsADirectory:
		return "is_a_directory"
	case KindNotADirectory:
		return "not_a_directory"
	case KindBinaryFile:
		return "binary_file"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindIOFailure:
		return "io_failure"
	case KindUnknownCommand:
		return "unknown_command"
	case KindRecursion:
		return "recursion"
	case KindCollaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

// Category groups error kinds by who is at fault. Every category is recoverable.
type Category int

const (
	CategoryUserInput Category = iota
	CategoryResource
	CategoryCollaborator
)

// Category returns the category the kind belongs to.
func (k ErrorKind) Category() Category {
	switch k {
	case KindNotFound, KindPermissionDenied, KindIsADirectory, KindNotADirectory, KindBinaryFile, KindIOFailure:
		return CategoryResource
	case KindCollaborator:
		return CategoryCollaborator
	default:
		return CategoryUserInput
	}
}

// =============================================================================
// COMMAND ERROR
// =============================================================================

// CommandError is the error type returned by every built-in handler.
type CommandError struct {
	Command string    // Command that failed (e.g. "rm")
	Kind    ErrorKind // Classification
	Path    string    // Offending path, if any
	Reason  string    // Human-readable reason
	Err     error     // Underlying error, if any
}

func (e *CommandError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("'%s' %s", e.Path, e.Reason)
	}
	if e.Command != "" {
		msg = e.Command + ": " + msg
	}
	if e.Err != nil && (e.Kind == KindIOFailure || e.Kind == KindCollaborator) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a CommandError of the same kind.
// Sentinels below carry only a kind, so errors.Is(err, ErrNotFound) works.
func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	if !ok {
		return false
	}
	return t.Command == "" && t.Path == "" && t.Reason == "" && t.Kind == e.Kind
}

// Sentinel errors for errors.Is checks.
var (
	ErrNotFound         = &CommandError{Kind: KindNotFound}
	ErrPermissionDenied = &CommandError{Kind: KindPermissionDenied}
	ErrIsADirectory     = &CommandError{Kind: KindIsADirectory}
	ErrNotADirectory    = &CommandError{Kind: KindNotADirectory}
	ErrBinaryFile       = &CommandError{Kind: KindBinaryFile}
	ErrInvalidArgument  = &CommandError{Kind: KindInvalidArgument}
	ErrIOFailure        = &CommandError{Kind: KindIOFailure}
	ErrUnknownCommand   = &CommandError{Kind: KindUnknownCommand}
	ErrRecursion        = &CommandError{Kind: KindRecursion}
	ErrCollaborator     = &CommandError{Kind: KindCollaborator}
)

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return KindUnknown
}

// =============================================================================
// CONSTRUCTION HELPERS
// =============================================================================

// usageError reports a malformed or missing argument.
func usageError(command, usage string) error {
	return &CommandError{
		Command: command,
		Kind:    KindInvalidArgument,
		Reason:  "usage: " + usage,
	}
}

// invalidArgument reports an argument with a bad value.
func invalidArgument(command, reason string) error {
	return &CommandError{Command: command, Kind: KindInvalidArgument, Reason: reason}
}

// unknownCommand reports a token that is not in the registry.
func unknownCommand(name string) error {
	return &CommandError{
		Kind:   KindUnknownCommand,
		Reason: fmt.Sprintf("Unknown command '%s'", name),
	}
}

// collaboratorError wraps a failure of an external service.
func collaboratorError(command, reason string, err error) error {
	return &CommandError{Command: command, Kind: KindCollaborator, Reason: reason, Err: err}
}

// fsError classifies an OS error for the given user-facing path.
func fsError(command, path string, err error) error {
	if err == nil {
		return nil
	}
	e := &CommandError{Command: command, Path: path, Err: err}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		e.Kind = KindNotFound
		e.Reason = "not found"
	case errors.Is(err, fs.ErrPermission):
		e.Kind = KindPermissionDenied
		e.Reason = "permission denied"
	case errors.Is(err, syscall.EISDIR):
		e.Kind = KindIsADirectory
		e.Reason = "is a directory"
	case errors.Is(err, syscall.ENOTDIR):
		e.Kind = KindNotADirectory
		e.Reason = "is not a directory"
	default:
		e.Kind = KindIOFailure
		e.Reason = "I/O error"
	}
	return e
}

// IsUnknownCommand checks if an error is an unknown command error.
func IsUnknownCommand(err error) bool {
	return KindOf(err) == KindUnknownCommand
}
