package finder

import (
	"errors"
	"fmt"
)

// ErrInvalidRows is returned when a finder is asked for fewer than one
// visible row.
var ErrInvalidRows = errors.New("finder: rows must be at least 1")

// Direction is a selection movement.
type Direction int

const (
	Up Direction = iota
	Down
)

// Row is one visible line of the list. Item is nil for a blank row.
type Row[T any] struct {
	Item     *Item[T]
	Selected bool
}

// Window is a fixed-height view over the ranked matches. It tracks the
// selected match and the index of the first visible match.
type Window[T any] struct {
	capacity int
	matches  []*Item[T]
	cursor   int // index into matches, -1 when there are none
	offset   int
}

// NewWindow returns an empty window showing capacity rows.
func NewWindow[T any](capacity int) (*Window[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidRows, capacity)
	}
	return &Window[T]{capacity: capacity, cursor: -1}, nil
}

// Capacity returns the number of visible rows.
func (w *Window[T]) Capacity() int {
	return w.capacity
}

// Offset returns the index of the first visible match.
func (w *Window[T]) Offset() int {
	return w.offset
}

// Cursor returns the index of the selected match, or -1 when there are no
// matches.
func (w *Window[T]) Cursor() int {
	return w.cursor
}

// SetMatches replaces the matches the window shows. If the previously
// selected item is still present it stays selected; otherwise the
// selection and scroll position go back to the top.
func (w *Window[T]) SetMatches(matches []*Item[T]) {
	prev, hadPrev := w.Selected()
	w.matches = matches

	if len(matches) == 0 {
		w.cursor, w.offset = -1, 0
		return
	}

	if hadPrev {
		for i, it := range matches {
			if it.id == prev.id {
				w.cursor = i
				w.clampOffset()
				return
			}
		}
	}
	w.cursor, w.offset = 0, 0
}

// clampOffset keeps the window inside the matches and the cursor inside
// the window, moving the offset as little as possible.
func (w *Window[T]) clampOffset() {
	if last := max(0, len(w.matches)-w.capacity); w.offset > last {
		w.offset = last
	}
	if w.cursor < w.offset {
		w.offset = w.cursor
	}
	if w.cursor >= w.offset+w.capacity {
		w.offset = w.cursor - w.capacity + 1
	}
}

// Move steps the selection one match up or down. It stops at the first and
// last match and scrolls by a single row when the selection leaves the
// window.
func (w *Window[T]) Move(d Direction) {
	if len(w.matches) == 0 {
		return
	}
	switch d {
	case Up:
		if w.cursor > 0 {
			w.cursor--
		}
		if w.cursor < w.offset {
			w.offset--
		}
	case Down:
		if w.cursor < len(w.matches)-1 {
			w.cursor++
		}
		if w.cursor >= w.offset+w.capacity {
			w.offset++
		}
	}
}

// Selected returns the selected item, if any.
func (w *Window[T]) Selected() (*Item[T], bool) {
	if w.cursor < 0 || w.cursor >= len(w.matches) {
		return nil, false
	}
	return w.matches[w.cursor], true
}

// Rows returns exactly Capacity rows: the visible matches followed by
// blank padding.
func (w *Window[T]) Rows() []Row[T] {
	rows := make([]Row[T], w.capacity)
	for i := range rows {
		idx := w.offset + i
		if idx >= len(w.matches) {
			continue
		}
		rows[i] = Row[T]{Item: w.matches[idx], Selected: idx == w.cursor}
	}
	return rows
}
