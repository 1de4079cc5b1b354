package finder

import (
	"time"
	"unicode"
)

// DefaultEscapeTimeout is how long a lone Escape waits for the rest of an
// arrow-key sequence before it counts as a keypress of its own.
const DefaultEscapeTimeout = 25 * time.Millisecond

// EventKind is a logical input event produced by the Decoder.
type EventKind int

const (
	EventInsert EventKind = iota
	EventBackspace
	EventUp
	EventDown
	EventConfirm
	EventCancel
)

// Event is a decoded input event. Rune is set for EventInsert.
type Event struct {
	Kind EventKind
	Rune rune
}

type decoderState int

const (
	stateIdle decoderState = iota
	statePendingEscape
	statePendingBracket
)

// Decoder turns raw key tokens into events. Terminals send arrow keys as
// ESC '[' 'A'/'B' and a bare Escape as ESC alone, so a pending ESC is only
// resolved as Cancel once no follow-up byte has arrived within the timeout.
type Decoder struct {
	timeout time.Duration
	state   decoderState
	since   time.Time
}

// NewDecoder returns an idle decoder. A non-positive timeout selects
// DefaultEscapeTimeout.
func NewDecoder(timeout time.Duration) *Decoder {
	if timeout <= 0 {
		timeout = DefaultEscapeTimeout
	}
	return &Decoder{timeout: timeout}
}

// Pending reports whether an escape sequence is partially read.
func (d *Decoder) Pending() bool {
	return d.state != stateIdle
}

// Feed consumes one key read at now and returns the event it completes.
func (d *Decoder) Feed(k Key, now time.Time) (Event, bool) {
	if k.Kind == KeyCtrlC || k.Kind == KeyCtrlD {
		d.state = stateIdle
		return Event{Kind: EventCancel}, true
	}

	switch d.state {
	case statePendingEscape:
		if k.Kind == KeyRune && k.Rune == '[' {
			d.state = statePendingBracket
			return Event{}, false
		}
		// Abandoned sequence: the byte stands for itself.
		d.state = stateIdle
	case statePendingBracket:
		d.state = stateIdle
		if k.Kind == KeyRune {
			switch k.Rune {
			case 'A':
				return Event{Kind: EventUp}, true
			case 'B':
				return Event{Kind: EventDown}, true
			}
		}
		return Event{}, false
	}

	switch k.Kind {
	case KeyEscape:
		d.state = statePendingEscape
		d.since = now
	case KeyEnter:
		return Event{Kind: EventConfirm}, true
	case KeyBackspace:
		return Event{Kind: EventBackspace}, true
	case KeyRune:
		if unicode.IsPrint(k.Rune) {
			return Event{Kind: EventInsert, Rune: k.Rune}, true
		}
	}
	return Event{}, false
}

// Expire resolves a pending escape as Cancel once the timeout has passed
// without another key.
func (d *Decoder) Expire(now time.Time) (Event, bool) {
	if d.state == stateIdle || now.Sub(d.since) <= d.timeout {
		return Event{}, false
	}
	d.state = stateIdle
	return Event{Kind: EventCancel}, true
}
