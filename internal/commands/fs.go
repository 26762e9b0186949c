// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/jeranaias/rigsh/internal/ui/styles"
	"github.com/jeranaias/rigsh/internal/util"
)

// =============================================================================
// NAVIGATION
// =============================================================================

// handleLs lists a directory. A first token containing glob metacharacters
// filters entry names; the next token, if any, is the directory.
func handleLs(_ context.Context, env *Env, args string) error {
	first, rest := splitFirst(args)

	pattern := ""
	target := first
	if isGlob(first) {
		pattern = first
		target = strings.TrimSpace(rest)
		if _, err := path.Match(pattern, ""); err != nil {
			return invalidArgument("ls", fmt.Sprintf("bad pattern '%s'", pattern))
		}
	}

	dir := env.resolve(target)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fsError("ls", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if pattern != "" {
			if ok, _ := path.Match(pattern, name); !ok {
				continue
			}
		}

		full := filepath.Join(dir, name)
		info, err := os.Stat(full)
		if err != nil {
			// Dangling symlink; show it plain
			fmt.Fprintln(env.Out, name)
			continue
		}
		switch {
		case info.IsDir():
			fmt.Fprintln(env.Out, styles.RenderDirectory(name+"/"))
		case isExecutable(full, info):
			fmt.Fprintln(env.Out, styles.RenderExecutable(name))
		default:
			fmt.Fprintln(env.Out, name)
		}
	}
	return nil
}

// isGlob reports whether s contains glob metacharacters.
func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// handleCd changes the session directory. The session is only updated after
// the target is known to be an enterable directory.
func handleCd(_ context.Context, env *Env, args string) error {
	arg := strings.TrimSpace(args)

	target := env.Session.Home()
	if arg != "" {
		target = env.resolve(arg)
	} else {
		arg = target
	}

	info, err := os.Stat(target)
	if err != nil {
		return fsError("cd", arg, err)
	}
	if !info.IsDir() {
		return &CommandError{Command: "cd", Kind: KindNotADirectory, Path: arg, Reason: "is not a directory"}
	}
	if err := canEnter(target); err != nil {
		return fsError("cd", arg, err)
	}

	env.Session.SetDir(target)
	return nil
}

func handlePwd(_ context.Context, env *Env, _ string) error {
	fmt.Fprintln(env.Out, env.Session.Dir())
	return nil
}

// =============================================================================
// MUTATION
// =============================================================================

// handleMkdir creates every named directory, including parents. Existing
// directories are not an error.
func handleMkdir(_ context.Context, env *Env, args string) error {
	names := fields(args)
	if len(names) == 0 {
		return usageError("mkdir", "mkdir <dir>...")
	}
	for _, name := range names {
		if err := os.MkdirAll(env.resolve(name), 0o755); err != nil {
			return fsError("mkdir", name, err)
		}
	}
	return nil
}

// rmOptions holds the parsed rm flags. Only the literal tokens -r, -f, -rf
// and -fr are flags; anything else is a path.
type rmOptions struct {
	recursive bool
	force     bool
	paths     []string
}

func parseRmArgs(args string) rmOptions {
	var opts rmOptions
	for _, tok := range fields(args) {
		switch tok {
		case "-r":
			opts.recursive = true
		case "-f":
			opts.force = true
		case "-rf", "-fr":
			opts.recursive = true
			opts.force = true
		default:
			opts.paths = append(opts.paths, tok)
		}
	}
	return opts
}

// rmOperandError explains a wrong operand count, naming a dash-prefixed
// token that was read as a path rather than a flag.
func rmOperandError(paths []string) error {
	if len(paths) > 1 {
		for _, p := range paths {
			if len(p) > 1 && strings.HasPrefix(p, "-") {
				return invalidArgument("rm", fmt.Sprintf(
					"'%s' is not a recognized flag and was read as a path; use -r, -f, -rf or -fr", p))
			}
		}
	}
	return usageError("rm", "rm [-r|-f] <path>")
}

// handleRm removes a file or directory. Directories need -r unless empty;
// -f silences a missing target.
func handleRm(_ context.Context, env *Env, args string) error {
	opts := parseRmArgs(args)
	if len(opts.paths) != 1 {
		return rmOperandError(opts.paths)
	}
	arg := opts.paths[0]
	target := env.resolve(arg)

	info, err := os.Lstat(target)
	if err != nil {
		if opts.force && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fsError("rm", arg, err)
	}

	if info.IsDir() && opts.recursive {
		if err := os.RemoveAll(target); err != nil {
			return fsError("rm", arg, err)
		}
		return nil
	}

	if err := os.Remove(target); err != nil {
		if info.IsDir() && (errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST)) {
			return &CommandError{
				Command: "rm",
				Kind:    KindIsADirectory,
				Path:    arg,
				Reason:  "is a directory; use -r to remove directories",
				Err:     err,
			}
		}
		return fsError("rm", arg, err)
	}
	return nil
}

// handleMv moves src to dst. An existing directory destination receives src
// inside it.
func handleMv(_ context.Context, env *Env, args string) error {
	parts := fields(args)
	if len(parts) != 2 {
		return usageError("mv", "mv <src> <dst>")
	}
	srcArg, dstArg := parts[0], parts[1]
	src := env.resolve(srcArg)
	dst := env.resolve(dstArg)

	srcInfo, err := os.Lstat(src)
	if err != nil {
		return fsError("mv", srcArg, err)
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	if err := os.Rename(src, dst); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return fsError("mv", dstArg, err)
		}
		if err := copyTree(src, dst, srcInfo); err != nil {
			return fsError("mv", dstArg, err)
		}
		if err := os.RemoveAll(src); err != nil {
			return fsError("mv", srcArg, err)
		}
	}

	fmt.Fprintln(env.Out, styles.RenderSuccess(fmt.Sprintf("Moved '%s' to '%s'", srcArg, dstArg)))
	return nil
}

// copyTree copies src to dst for moves across filesystems.
func copyTree(src, dst string, info fs.FileInfo) error {
	if !info.IsDir() {
		return copyFile(src, dst, info.Mode().Perm())
	}
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, fi.Mode().Perm())
		}
		return copyFile(p, target, fi.Mode().Perm())
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// handleWrite writes the verbatim remainder after the file name to the file,
// replacing it atomically.
func handleWrite(_ context.Context, env *Env, args string) error {
	name, content := splitFirst(args)
	if name == "" || content == "" {
		return usageError("write", "write <file> <content...>")
	}

	if err := util.AtomicWriteFile(env.resolve(name), []byte(content), 0o644); err != nil {
		return fsError("write", name, err)
	}
	fmt.Fprintf(env.Out, "Content written to '%s'\n", name)
	return nil
}

// =============================================================================
// SEARCH
// =============================================================================

// handleFind walks dir (default: cwd) and prints files whose base name
// matches the pattern. Unreadable subdirectories are skipped.
func handleFind(_ context.Context, env *Env, args string) error {
	pattern, rest := splitFirst(args)
	if pattern == "" {
		return usageError("find", "find <pattern> [dir]")
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return invalidArgument("find", fmt.Sprintf("bad pattern '%s'", pattern))
	}

	dir := env.resolve(strings.TrimSpace(rest))
	info, err := os.Stat(dir)
	if err != nil {
		return fsError("find", dir, err)
	}
	if !info.IsDir() {
		return &CommandError{Command: "find", Kind: KindNotADirectory, Path: dir, Reason: "is not a directory"}
	}

	fmt.Fprintf(env.Out, "Searching for '%s' in '%s'...\n", pattern, dir)

	var found []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := path.Match(pattern, d.Name()); ok {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return fsError("find", dir, err)
	}

	if len(found) == 0 {
		fmt.Fprintf(env.Out, "No files found matching '%s' in '%s'.\n", pattern, dir)
		return nil
	}
	sort.Strings(found)
	for _, f := range found {
		fmt.Fprintln(env.Out, f)
	}
	return nil
}
