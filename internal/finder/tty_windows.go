//go:build windows

package finder

import (
	"io"
	"os"
	"time"
)

type tty struct{}

func openTTY(in *os.File) (*tty, error) {
	return nil, ErrNotTerminal
}

func (t *tty) ReadKey() (Key, bool, error) {
	return Key{}, false, ErrNotTerminal
}

func (t *tty) cursorRow(out io.Writer, timeout time.Duration) (int, error) {
	return 0, ErrNotTerminal
}

func (t *tty) Close() error {
	return nil
}
