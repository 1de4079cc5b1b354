package finder

import (
	"cmp"
	"log/slog"
	"slices"
	"unicode/utf8"
)

// Search holds the full item collection and the query, and derives the
// ranked set of matches from them.
type Search[T any] struct {
	match   Matcher
	logger  *slog.Logger
	query   string
	scored  bool
	items   []Item[T]
	matches []*Item[T]
}

// NewSearch copies items into a new search and scores them against the
// empty query. A nil matcher selects FuzzyMatcher.
func NewSearch[T any](items []Item[T], match Matcher, logger *slog.Logger) *Search[T] {
	if match == nil {
		match = FuzzyMatcher
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Search[T]{
		match:  match,
		logger: logger,
		items:  make([]Item[T], len(items)),
	}
	for i, it := range items {
		it.id = i
		it.score = nil
		s.items[i] = it
	}
	s.rescore()
	return s
}

// Query returns the current query.
func (s *Search[T]) Query() string {
	return s.query
}

// Len returns the size of the whole collection, matching or not.
func (s *Search[T]) Len() int {
	return len(s.items)
}

// Matches returns the matching items, best first. Ties keep input order.
// The slice is replaced, not modified, when the query changes.
func (s *Search[T]) Matches() []*Item[T] {
	return s.matches
}

// SetQuery rescores every item against q. It reports whether the query
// changed; an unchanged query does not call the matcher.
func (s *Search[T]) SetQuery(q string) bool {
	if s.scored && q == s.query {
		return false
	}
	s.query = q
	s.rescore()
	return true
}

// Append adds r to the end of the query.
func (s *Search[T]) Append(r rune) {
	s.SetQuery(s.query + string(r))
}

// Backspace removes the last character of the query. It is a no-op on an
// empty query and reports whether anything was removed.
func (s *Search[T]) Backspace() bool {
	if s.query == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(s.query)
	return s.SetQuery(s.query[:len(s.query)-size])
}

func (s *Search[T]) rescore() {
	matches := make([]*Item[T], 0, len(s.items))
	for i := range s.items {
		it := &s.items[i]
		if score, ok := s.match(s.query, it.Label); ok {
			it.score = &score
			matches = append(matches, it)
		} else {
			it.score = nil
		}
	}
	slices.SortStableFunc(matches, func(a, b *Item[T]) int {
		return cmp.Compare(b.score.Rank, a.score.Rank)
	})
	s.matches = matches
	s.scored = true

	s.logger.Debug("query rescored", "query", s.query, "items", len(s.items), "matches", len(matches))
}
