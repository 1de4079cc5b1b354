package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/moasq/lk/internal/finder"
	"github.com/moasq/lk/internal/history"
	"github.com/moasq/lk/internal/runner"
	"github.com/moasq/lk/internal/scripts"
	"github.com/moasq/lk/internal/terminal"
)

var errNoFunctions = errors.New("no functions found")

// candidate is one runnable function, the payload of a finder item.
type candidate struct {
	script *scripts.Script
	fn     scripts.Function
}

// candidates turns every function of every script into a finder item
// labelled "<dir>/<file> - <function>".
func candidates(parsed []*scripts.Script) []finder.Item[candidate] {
	var items []finder.Item[candidate]
	for _, s := range parsed {
		for _, fn := range s.Functions {
			label := fmt.Sprintf("%s/%s - %s", s.Dir(), s.FileName(), fn.Name)
			items = append(items, finder.NewItem(label, candidate{script: s, fn: fn}))
		}
	}
	return items
}

func runFuzzy(ctx context.Context, w io.Writer, a *app, execs scripts.Executables, rows int) error {
	parsed, errs := scripts.ParseAll(execs)
	for _, err := range errs {
		a.logger.Warn("skipping unreadable script", "err", err)
	}
	if len(errs) > 0 {
		terminal.Warning(fmt.Sprintf("Skipped %d unreadable script(s); see %s", len(errs), a.paths.LogFile()))
	}
	items := candidates(parsed)
	if len(items) == 0 {
		return errNoFunctions
	}

	picked, ok, err := finder.Find(ctx, items, finder.Options{
		Rows:          rows,
		EscapeTimeout: a.cfg.EscapeTimeout,
		NoColor:       os.Getenv("NO_COLOR") != "",
		Logger:        a.logger,
	})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	recordHistory(a, picked)
	return runner.Run(ctx, picked.script, picked.fn, nil, runner.Options{Stdout: w, Logger: a.logger})
}

// recordHistory adds the equivalent list-mode command to the shell history
// so the user can re-run it directly. Failures only get logged.
func recordHistory(a *app, c candidate) {
	store, err := history.Locate(os.Getenv)
	if err != nil {
		a.logger.Warn("not writing shell history", "err", err)
		return
	}
	command := fmt.Sprintf("lk %s %s", c.script.FileName(), c.fn.Name)
	if err := store.Append(command); err != nil {
		a.logger.Warn("cannot write shell history", "path", store.Path(), "err", err)
		return
	}
	a.logger.Debug("recorded history", "shell", store.Shell(), "command", command)
}
