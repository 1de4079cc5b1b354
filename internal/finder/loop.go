package finder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// keySource yields raw keys without blocking. ok is false when no key is
// waiting.
type keySource interface {
	ReadKey() (k Key, ok bool, err error)
}

type outcome int

const (
	running outcome = iota
	confirmed
	cancelled
)

// loop drives one finder run: keys in, model updates, repaints out.
type loop[T any] struct {
	search  *Search[T]
	window  *Window[T]
	session *Session
	decoder *Decoder
	keys    keySource
	now     func() time.Time
	wait    func()
	logger  *slog.Logger
}

func (l *loop[T]) run(ctx context.Context) (T, bool, error) {
	var zero T

	l.window.SetMatches(l.search.Matches())
	if err := repaint(l.session, l.search, l.window); err != nil {
		return zero, false, err
	}

	for {
		if err := ctx.Err(); err != nil {
			l.logger.Info("finder interrupted", "err", err)
			return zero, false, errors.Join(err, l.session.Close())
		}

		key, ok, err := l.keys.ReadKey()
		if err != nil {
			return zero, false, fmt.Errorf("read key: %w", err)
		}

		var ev Event
		var fired bool
		if ok {
			ev, fired = l.decoder.Feed(key, l.now())
		} else if ev, fired = l.decoder.Expire(l.now()); !fired {
			l.wait()
			continue
		}
		if !fired {
			continue
		}

		state, err := l.apply(ev)
		if err != nil {
			return zero, false, err
		}
		switch state {
		case confirmed:
			it, _ := l.window.Selected()
			l.logger.Info("finder confirmed", "label", it.Label, "query", l.search.Query())
			return it.Payload, true, l.session.Close()
		case cancelled:
			l.logger.Info("finder cancelled", "query", l.search.Query())
			return zero, false, l.session.Close()
		}
	}
}

// apply updates the model for one event and repaints while the run goes on.
func (l *loop[T]) apply(ev Event) (outcome, error) {
	switch ev.Kind {
	case EventInsert:
		l.search.Append(ev.Rune)
		l.window.SetMatches(l.search.Matches())
	case EventBackspace:
		if l.search.Backspace() {
			l.window.SetMatches(l.search.Matches())
		}
	case EventUp:
		l.window.Move(Up)
	case EventDown:
		l.window.Move(Down)
	case EventConfirm:
		if _, ok := l.window.Selected(); ok {
			return confirmed, nil
		}
		// Nothing can ever match an empty collection, so Enter leaves.
		if l.search.Len() == 0 {
			return cancelled, nil
		}
		return running, nil
	case EventCancel:
		return cancelled, nil
	}
	return running, repaint(l.session, l.search, l.window)
}
