//go:build !windows

package finder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/moasq/lk/internal/terminal"
)

// cursorReport matches the terminal's reply to a cursor position query.
var cursorReport = regexp.MustCompile(`\x1b\[(\d+);(\d+)R`)

// tty is a terminal input in raw, non-blocking mode.
type tty struct {
	fd      int
	state   *term.State
	buf     []byte
	pending []byte
}

// openTTY switches in to raw mode and non-blocking reads. Close undoes both.
func openTTY(in *os.File) (*tty, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTerminal, err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = term.Restore(fd, state)
		return nil, fmt.Errorf("set non-blocking input: %w", err)
	}
	return &tty{fd: fd, state: state, buf: make([]byte, 256)}, nil
}

// fill reads whatever input is available. It reports whether any arrived.
func (t *tty) fill() (bool, error) {
	n, err := unix.Read(t.fd, t.buf)
	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("read terminal: %w", err)
	case n == 0:
		return false, io.EOF
	}
	t.pending = append(t.pending, t.buf[:n]...)
	return true, nil
}

// ReadKey returns the next key if one is available, without blocking.
func (t *tty) ReadKey() (Key, bool, error) {
	if k, n := nextKey(t.pending); n > 0 {
		t.pending = t.pending[n:]
		return k, true, nil
	}
	if _, err := t.fill(); err != nil {
		return Key{}, false, err
	}
	if k, n := nextKey(t.pending); n > 0 {
		t.pending = t.pending[n:]
		return k, true, nil
	}
	return Key{}, false, nil
}

// cursorRow asks the terminal where the cursor is and returns its 1-based
// row. Keys typed while waiting for the reply are kept for ReadKey.
func (t *tty) cursorRow(out io.Writer, timeout time.Duration) (int, error) {
	if _, err := io.WriteString(out, terminal.QueryCursorPosition); err != nil {
		return 0, fmt.Errorf("query cursor position: %w", err)
	}
	deadline := time.Now().Add(timeout)
	for {
		if loc := cursorReport.FindSubmatchIndex(t.pending); loc != nil {
			row, err := strconv.Atoi(string(t.pending[loc[2]:loc[3]]))
			t.pending = append(t.pending[:loc[0]:loc[0]], t.pending[loc[1]:]...)
			return row, err
		}
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("no cursor position report after %s", timeout)
		}
		got, err := t.fill()
		if err != nil {
			return 0, err
		}
		if !got {
			time.Sleep(pollInterval)
		}
	}
}

// Close restores blocking reads and the terminal mode saved by openTTY.
func (t *tty) Close() error {
	return errors.Join(unix.SetNonblock(t.fd, false), term.Restore(t.fd, t.state))
}
