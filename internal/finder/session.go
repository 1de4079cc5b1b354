package finder

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/moasq/lk/internal/terminal"
)

// Session owns the block of screen rows a finder run draws on. It reserves
// the rows on its first repaint and clears them when the run ends.
type Session struct {
	out      *bufio.Writer
	layout   Layout
	overflow int
	palette  terminal.Palette
	reserved bool
}

func newSession(out io.Writer, layout Layout, overflow int, palette terminal.Palette) *Session {
	return &Session{
		out:      bufio.NewWriter(out),
		layout:   layout,
		overflow: overflow,
		palette:  palette,
	}
}

// Layout returns the session's screen geometry.
func (s *Session) Layout() Layout {
	return s.layout
}

// Overflow is how many rows the screen was scrolled up so the list fits.
func (s *Session) Overflow() int {
	return s.overflow
}

// repaint redraws the whole area from the search and window state.
func repaint[T any](s *Session, search *Search[T], w *Window[T]) error {
	return s.paint(Render(search.Query(), w.Rows(), s.layout, s.palette))
}

func (s *Session) paint(frame []byte) error {
	if !s.reserved {
		// Push the shell's own line up out of the way; on the bottom of
		// the screen this scrolls by the overflow.
		if _, err := s.out.WriteString("\r" + strings.Repeat("\n", s.layout.Footprint()-1)); err != nil {
			return fmt.Errorf("reserve rows: %w", err)
		}
		s.reserved = true
	}
	if _, err := s.out.Write(frame); err != nil {
		return fmt.Errorf("repaint: %w", err)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("repaint: %w", err)
	}
	return nil
}

// Close clears the list, the prompt and one guard row below it, and leaves
// the cursor at the top of the cleared area.
func (s *Session) Close() error {
	if !s.reserved {
		return nil
	}
	var b strings.Builder
	for i := 0; i <= s.layout.Footprint(); i++ {
		b.WriteString(terminal.MoveTo(s.layout.Anchor+i, 1))
		b.WriteString(terminal.ClearLine())
	}
	b.WriteString(terminal.MoveTo(s.layout.Anchor, 1))
	b.WriteString(terminal.ShowCursor())
	if _, err := s.out.WriteString(b.String()); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	return s.out.Flush()
}
