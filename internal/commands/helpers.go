package commands

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/moasq/lk/internal/config"
	"github.com/moasq/lk/internal/scripts"
	"github.com/moasq/lk/internal/terminal"
)

// app bundles what every mode needs: paths, settings and the log file.
type app struct {
	paths  *config.Paths
	cfg    *config.Config
	logger *slog.Logger
	logs   io.Closer
}

// loadApp reads lk.yaml (creating it on first run) and opens lk.log.
func loadApp() (*app, error) {
	paths := config.DefaultPaths()
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return nil, err
	}
	logger, logs := config.OpenLogger(paths.LogFile())
	return &app{paths: paths, cfg: cfg, logger: logger, logs: logs}, nil
}

func (a *app) Close() error {
	return a.logs.Close()
}

// ignoreList merges the configured ignore list with --ignore.
func (a *app) ignoreList() []string {
	return append(append([]string(nil), a.cfg.Ignore...), ignoreFlag...)
}

// discover finds executables under root, with a spinner on stderr while
// it walks.
func discover(root string, ignore []string, logger *slog.Logger) (scripts.Executables, error) {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		spinner := terminal.NewSpinner("Looking for scripts...")
		spinner.Start()
		defer spinner.Stop()
	}
	return scripts.Discover(root, ignore, logger)
}
