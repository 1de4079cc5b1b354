// Package runner executes one function from a shell script. Bash cannot
// call a function inside a file directly, so the runner writes a small
// wrapper that sources the script and then invokes the function.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/google/uuid"

	"github.com/moasq/lk/internal/scripts"
	"github.com/moasq/lk/internal/terminal"
)

// wrapperPrefix names the temporary wrapper files.
const wrapperPrefix = "~lk_"

const wrapperHeader = `#!/usr/bin/env bash
#
# Temporary lk file used to execute functions in scripts.
# If you see it here you can delete it and/or gitignore it.

`

// ExitError reports a function that finished with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("function exited with status %d", e.Code)
}

// Options controls where the wrapper lives and where the function's output
// goes. Zero values inherit the current process's directory and stdio.
type Options struct {
	// Dir holds the wrapper file; empty means the working directory.
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Quiet suppresses the banner naming the function being run.
	Quiet  bool
	Logger *slog.Logger
}

// Wrapper returns the wrapper script body that runs function from the
// script at path with params.
func Wrapper(path, function string, params []string) string {
	var b strings.Builder
	b.WriteString(wrapperHeader)
	b.WriteString("source ")
	b.WriteString(shellescape.Quote(path))
	b.WriteString(" && ")
	b.WriteString(shellescape.Quote(function))
	if len(params) > 0 {
		b.WriteString(" ")
		b.WriteString(shellescape.QuoteCommand(params))
	}
	b.WriteString("\n")
	return b.String()
}

// Run executes fn from script with params and waits for it. A non-zero exit
// is returned as *ExitError. The wrapper file is removed however Run ends.
func Run(ctx context.Context, script *scripts.Script, fn scripts.Function, params []string, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	wrapper, err := filepath.Abs(filepath.Join(dir, wrapperPrefix+uuid.NewString()))
	if err != nil {
		return fmt.Errorf("locate wrapper: %w", err)
	}
	if err := os.WriteFile(wrapper, []byte(Wrapper(script.Path, fn.Name, params)), 0o700); err != nil {
		return fmt.Errorf("write wrapper: %w", err)
	}
	defer func() {
		if err := os.Remove(wrapper); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("cannot remove wrapper", "path", wrapper, "err", err)
			fmt.Fprintf(stderr, "%slk: could not remove temporary file %s: %v%s\n", terminal.Red, wrapper, err, terminal.Reset)
		}
	}()

	if !opts.Quiet {
		fmt.Fprintf(stdout, "%slk: %s -> %s%s\n", terminal.OnBlue, script.Path, fn.Name, terminal.Reset)
	}
	logger.Info("running function", "script", script.Path, "function", fn.Name, "params", len(params))

	cmd := exec.CommandContext(ctx, wrapper)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err = cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		logger.Info("function failed", "function", fn.Name, "code", code)
		return &ExitError{Code: code}
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", fn.Name, err)
	}
	return nil
}
