package finder

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchList builds matches whose identities are their positions in names.
func matchList(names ...string) []*Item[string] {
	out := make([]*Item[string], len(names))
	for i, n := range names {
		out[i] = &Item[string]{Label: n, Payload: n, id: i}
	}
	return out
}

func newTestWindow(t *testing.T, capacity int) *Window[string] {
	t.Helper()
	w, err := NewWindow[string](capacity)
	require.NoError(t, err)
	return w
}

func selectedLabel(t *testing.T, w *Window[string]) string {
	t.Helper()
	it, ok := w.Selected()
	require.True(t, ok)
	return it.Label
}

func TestNewWindowRejectsZeroRows(t *testing.T) {
	_, err := NewWindow[string](0)
	assert.ErrorIs(t, err, ErrInvalidRows)
}

func TestWindowPadsWithBlankRows(t *testing.T) {
	w := newTestWindow(t, 4)
	w.SetMatches(matchList("a", "b"))

	rows := w.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, "a", rows[0].Item.Label)
	assert.True(t, rows[0].Selected)
	assert.Equal(t, "b", rows[1].Item.Label)
	assert.False(t, rows[1].Selected)
	assert.Nil(t, rows[2].Item)
	assert.Nil(t, rows[3].Item)
}

func TestWindowEmptyMatches(t *testing.T) {
	w := newTestWindow(t, 3)
	w.SetMatches(nil)

	_, ok := w.Selected()
	assert.False(t, ok)
	assert.Equal(t, -1, w.Cursor())

	w.Move(Down)
	w.Move(Up)
	assert.Equal(t, -1, w.Cursor())
	for _, row := range w.Rows() {
		assert.Nil(t, row.Item)
		assert.False(t, row.Selected)
	}
}

func TestWindowScrollsOneRowAtATime(t *testing.T) {
	w := newTestWindow(t, 2)
	w.SetMatches(matchList("a", "b", "c", "d"))

	w.Move(Down)
	assert.Equal(t, 0, w.Offset())
	w.Move(Down)
	assert.Equal(t, 1, w.Offset())
	assert.Equal(t, "c", selectedLabel(t, w))
	w.Move(Down)
	assert.Equal(t, 2, w.Offset())

	w.Move(Up)
	assert.Equal(t, 2, w.Offset())
	w.Move(Up)
	assert.Equal(t, 1, w.Offset())
	assert.Equal(t, "b", selectedLabel(t, w))
}

func TestWindowDoesNotWrap(t *testing.T) {
	w := newTestWindow(t, 2)
	w.SetMatches(matchList("a", "b", "c"))

	for range 5 {
		w.Move(Up)
	}
	assert.Equal(t, "a", selectedLabel(t, w))
	assert.Equal(t, 0, w.Offset())

	for range 10 {
		w.Move(Down)
	}
	assert.Equal(t, "c", selectedLabel(t, w))
	assert.Equal(t, 1, w.Offset())
}

func TestWindowKeepsSelectedItemAcrossQueryEdits(t *testing.T) {
	all := matchList("A", "B", "C", "D")
	w := newTestWindow(t, 3)
	w.SetMatches([]*Item[string]{all[0], all[1], all[2]})
	w.Move(Down)
	require.Equal(t, "B", selectedLabel(t, w))

	w.SetMatches([]*Item[string]{all[1], all[3]})

	assert.Equal(t, "B", selectedLabel(t, w))
	assert.Equal(t, 0, w.Cursor())
}

func TestWindowResetsWhenSelectedItemDisappears(t *testing.T) {
	all := matchList("A", "B", "C", "D", "E")
	w := newTestWindow(t, 2)
	w.SetMatches(all)
	for range 4 {
		w.Move(Down)
	}
	require.Equal(t, "E", selectedLabel(t, w))
	require.Equal(t, 3, w.Offset())

	w.SetMatches([]*Item[string]{all[1], all[2]})

	assert.Equal(t, "B", selectedLabel(t, w))
	assert.Equal(t, 0, w.Offset())
}

func TestWindowTrackedItemStaysVisible(t *testing.T) {
	all := matchList("A", "B", "C", "D", "E", "F")
	w := newTestWindow(t, 2)
	w.SetMatches(all)
	for range 5 {
		w.Move(Down)
	}
	require.Equal(t, "F", selectedLabel(t, w))

	w.SetMatches([]*Item[string]{all[0], all[5], all[2]})

	assert.Equal(t, "F", selectedLabel(t, w))
	assert.Equal(t, 1, w.Offset(), "offset clamps to the last full window")
	rows := w.Rows()
	assert.True(t, rows[0].Selected)
	assert.Equal(t, "C", rows[1].Item.Label)
}

func TestWindowInvariantsHoldUnderRandomMoves(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := range 50 {
		capacity := 1 + rng.IntN(5)
		n := rng.IntN(12)
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		w := newTestWindow(t, capacity)
		w.SetMatches(matchList(names...))

		for range 100 {
			if rng.IntN(2) == 0 {
				w.Move(Up)
			} else {
				w.Move(Down)
			}

			rows := w.Rows()
			require.Len(t, rows, capacity, "trial %d", trial)
			require.GreaterOrEqual(t, w.Offset(), 0)

			it, ok := w.Selected()
			if n == 0 {
				require.False(t, ok)
				continue
			}
			require.True(t, ok)
			found := false
			for _, row := range rows {
				if row.Selected {
					require.Same(t, it, row.Item)
					found = true
				}
			}
			require.True(t, found, "selected item must be visible (trial %d)", trial)
		}
	}
}
