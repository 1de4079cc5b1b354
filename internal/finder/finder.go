// Package finder is an inline fuzzy finder for raw terminals. It draws a
// filtered, scrollable candidate list under the cursor, lets the user narrow
// it by typing and move through it with the arrow keys, and returns the
// chosen item's payload.
package finder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/moasq/lk/internal/terminal"
)

// ErrNotTerminal is returned when the input cannot be put in raw mode.
var ErrNotTerminal = errors.New("finder: input is not a terminal")

const (
	// pollInterval is the pause between empty reads of the keyboard.
	pollInterval = time.Millisecond
	// cursorQueryTimeout bounds the wait for the terminal's cursor report.
	cursorQueryTimeout = 200 * time.Millisecond
)

// Options configures a Find call.
type Options struct {
	// Rows is the number of candidate rows shown. Must be at least 1.
	Rows int
	// Matcher scores candidates; nil selects FuzzyMatcher.
	Matcher Matcher
	// EscapeTimeout separates a bare Escape from an arrow-key sequence;
	// zero selects DefaultEscapeTimeout.
	EscapeTimeout time.Duration
	// NoColor draws without colours.
	NoColor bool
	// Logger receives diagnostics; nil discards them.
	Logger *slog.Logger
	// In and Out default to os.Stdin and os.Stdout.
	In  *os.File
	Out *os.File
}

// Find runs an interactive search over items and blocks until the user
// confirms a match or cancels. ok is false on cancel. The terminal is
// returned to its original mode before Find returns, whatever the outcome.
func Find[T any](ctx context.Context, items []Item[T], opts Options) (payload T, ok bool, err error) {
	if opts.Rows < 1 {
		return payload, false, fmt.Errorf("%w (got %d)", ErrInvalidRows, opts.Rows)
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	search := NewSearch(items, opts.Matcher, logger)
	window, err := NewWindow[T](opts.Rows)
	if err != nil {
		return payload, false, err
	}

	input, err := openTTY(opts.In)
	if err != nil {
		return payload, false, err
	}
	defer func() {
		if cerr := input.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("restore terminal: %w", cerr))
		}
	}()

	startRow, cerr := input.cursorRow(opts.Out, cursorQueryTimeout)
	if cerr != nil {
		logger.Warn("cannot detect cursor position; drawing from the top", "err", cerr)
		startRow = 1
	}
	width, height, serr := term.GetSize(int(opts.Out.Fd()))
	if serr != nil {
		logger.Warn("cannot read terminal size", "err", serr)
		width, height = 0, 0
	}
	layout, overflow := newLayout(opts.Rows, startRow, height, width)
	logger.Debug("finder session", "start_row", startRow, "height", height, "anchor", layout.Anchor, "overflow", overflow)

	palette := terminal.DefaultPalette()
	if opts.NoColor {
		palette = terminal.NewPalette(termenv.Ascii)
	}

	l := &loop[T]{
		search:  search,
		window:  window,
		session: newSession(opts.Out, layout, overflow, palette),
		decoder: NewDecoder(opts.EscapeTimeout),
		keys:    input,
		now:     time.Now,
		wait:    func() { time.Sleep(pollInterval) },
		logger:  logger,
	}
	return l.run(ctx)
}
