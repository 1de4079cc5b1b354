package commands

import (
	"context"
	"io"

	"github.com/moasq/lk/internal/runner"
	"github.com/moasq/lk/internal/scripts"
)

// runList handles `lk`, `lk <script>` and `lk <script> <function> [params]`.
func runList(ctx context.Context, w io.Writer, a *app, execs scripts.Executables, args []string) error {
	if len(args) == 0 {
		scripts.PrintExecutables(w, execs)
		return nil
	}

	exe, err := execs.Get(args[0])
	if err != nil {
		scripts.PrintUnknownScript(w, args[0], execs)
		return err
	}
	script, err := scripts.Parse(exe)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		scripts.PrintScript(w, script)
		return nil
	}

	fn, err := script.Function(args[1])
	if err != nil {
		scripts.PrintUnknownFunction(w, script, args[1])
		return err
	}
	return runner.Run(ctx, script, fn, args[2:], runner.Options{Stdout: w, Logger: a.logger})
}
