package terminal

import (
	"fmt"

	"github.com/muesli/termenv"
)

// Control sequences used when drawing into a fixed screen area.

// MoveTo positions the cursor at a 1-based row and column.
func MoveTo(row, col int) string {
	return termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, row, col)
}

// ClearLine erases the whole line under the cursor.
func ClearLine() string {
	return termenv.CSI + termenv.EraseEntireLineSeq
}

// ShowCursor makes the cursor visible.
func ShowCursor() string {
	return termenv.CSI + termenv.ShowCursorSeq
}

// HideCursor makes the cursor invisible.
func HideCursor() string {
	return termenv.CSI + termenv.HideCursorSeq
}

// QueryCursorPosition asks the terminal to report the cursor position as
// ESC [ row ; col R on its input.
const QueryCursorPosition = termenv.CSI + "6n"

// Palette is the fixed set of styles the finder draws with.
type Palette struct {
	profile termenv.Profile

	// SelectedBG shades the selected row.
	SelectedBG termenv.Color
	// MatchBG marks characters that matched the query.
	MatchBG termenv.Color
	// MarkerFG colours the selection marker.
	MarkerFG termenv.Color
	// PromptFG colours the prompt glyph.
	PromptFG termenv.Color
	// GutterFG colours the spacer after the marker.
	GutterFG termenv.Color
}

// NewPalette builds the finder palette for a colour profile.
func NewPalette(profile termenv.Profile) Palette {
	return Palette{
		profile:    profile,
		SelectedBG: profile.Color("237"),
		MatchBG:    profile.Color("24"),
		MarkerFG:   profile.Color("114"),
		PromptFG:   profile.Color("75"),
		GutterFG:   profile.Color("240"),
	}
}

// DefaultPalette uses the 256-colour profile every mainstream terminal
// supports.
func DefaultPalette() Palette {
	return NewPalette(termenv.ANSI256)
}

// Paint styles s with an optional foreground and background. Nil colours
// are left at the terminal default.
func (p Palette) Paint(s string, fg, bg termenv.Color) string {
	if s == "" {
		return ""
	}
	st := p.profile.String(s)
	if fg != nil {
		st = st.Foreground(fg)
	}
	if bg != nil {
		st = st.Background(bg)
	}
	return st.String()
}
