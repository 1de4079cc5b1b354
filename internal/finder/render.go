package finder

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/moasq/lk/internal/terminal"
)

const (
	promptGlyph = "$"
	markerGlyph = ">"
	// gutterWidth is the marker cell plus the two-space spacer.
	gutterWidth = 3
)

// Layout is the fixed screen geometry of one finder session.
type Layout struct {
	// Rows is the number of list rows.
	Rows int
	// Anchor is the 1-based screen row of the first list row.
	Anchor int
	// Width is the terminal width in columns; 0 disables truncation.
	Width int
}

// PromptRow is the screen row of the query prompt. One blank row separates
// it from the list.
func (l Layout) PromptRow() int {
	return l.Anchor + l.Rows + 1
}

// Footprint is the number of screen rows the session draws on.
func (l Layout) Footprint() int {
	return l.Rows + 2
}

// newLayout places a session whose cursor starts on startRow of a terminal
// height rows tall, scrolling up by however many rows would otherwise fall
// off the bottom. It returns the layout and that overflow.
func newLayout(rows, startRow, height, width int) (Layout, int) {
	if startRow < 1 {
		startRow = 1
	}
	overflow := 0
	if height > 0 {
		overflow = max(0, startRow+rows+1-height)
	}
	return Layout{Rows: rows, Anchor: startRow - overflow, Width: width}, overflow
}

// Render draws one full frame: every list row, the separator and the
// prompt, leaving the cursor just after the query. The output depends only
// on its arguments.
func Render[T any](query string, rows []Row[T], layout Layout, p terminal.Palette) []byte {
	var b strings.Builder
	b.WriteString(terminal.HideCursor())

	for i, row := range rows {
		b.WriteString(terminal.MoveTo(layout.Anchor+i, 1))
		b.WriteString(terminal.ClearLine())
		if row.Item == nil {
			continue
		}
		var positions []int
		if score, ok := row.Item.Score(); ok {
			positions = score.Positions
		}
		b.WriteString(renderRow(row.Item.Label, positions, row.Selected, layout.Width, p))
	}

	b.WriteString(terminal.MoveTo(layout.Anchor+len(rows), 1))
	b.WriteString(terminal.ClearLine())

	b.WriteString(terminal.MoveTo(layout.PromptRow(), 1))
	b.WriteString(terminal.ClearLine())
	b.WriteString(p.Paint(promptGlyph, p.PromptFG, nil))
	b.WriteString(" ")
	b.WriteString(query)
	b.WriteString(terminal.ShowCursor())

	return []byte(b.String())
}

// renderRow draws one label with its matched characters highlighted. The
// selected row also gets a marker and a shaded background.
func renderRow(label string, positions []int, selected bool, width int, p terminal.Palette) string {
	var b strings.Builder

	var bg = p.SelectedBG
	if selected {
		b.WriteString(p.Paint(markerGlyph, p.MarkerFG, p.SelectedBG))
		b.WriteString(p.Paint("  ", p.GutterFG, nil))
	} else {
		bg = nil
		b.WriteString(p.Paint(" ", nil, p.SelectedBG))
		b.WriteString("  ")
	}

	label = truncate(label, width-gutterWidth, width > 0)

	// Emit runs of matched and unmatched characters.
	next := 0
	start := 0
	inMatch := false
	flush := func(end int) {
		if end <= start {
			return
		}
		if inMatch {
			b.WriteString(p.Paint(label[start:end], nil, p.MatchBG))
		} else {
			b.WriteString(p.Paint(label[start:end], nil, bg))
		}
		start = end
	}
	for i := 0; i < len(label); {
		_, size := utf8.DecodeRuneInString(label[i:])
		for next < len(positions) && positions[next] < i {
			next++
		}
		matched := next < len(positions) && positions[next] == i
		if matched != inMatch {
			flush(i)
			inMatch = matched
		}
		i += size
	}
	flush(len(label))

	return b.String()
}

// truncate cuts s to at most cols display columns.
func truncate(s string, cols int, limit bool) string {
	if !limit {
		return s
	}
	if cols <= 0 {
		return ""
	}
	used := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if used+w > cols {
			return s[:i]
		}
		used += w
	}
	return s
}
