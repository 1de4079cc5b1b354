package finder

import "github.com/sahilm/fuzzy"

// Score is a matcher's verdict for one candidate. Higher ranks sort first.
type Score struct {
	Rank int
	// Positions are byte offsets into the candidate, strictly increasing.
	Positions []int
}

// Matcher scores candidate against query. ok is false when the candidate
// does not match. Implementations must be deterministic.
type Matcher func(query, candidate string) (score Score, ok bool)

// FuzzyMatcher is the default Matcher, backed by sahilm/fuzzy. An empty
// query matches everything with rank zero and nothing highlighted.
func FuzzyMatcher(query, candidate string) (Score, bool) {
	if query == "" {
		return Score{}, true
	}
	found := fuzzy.Find(query, []string{candidate})
	if len(found) == 0 {
		return Score{}, false
	}
	return Score{Rank: found[0].Score, Positions: found[0].MatchedIndexes}, true
}

// Item is a selectable candidate: the label shown on screen and the payload
// handed back to the caller when the item is chosen.
type Item[T any] struct {
	Label   string
	Payload T

	id    int
	score *Score
}

// NewItem pairs a label with its payload.
func NewItem[T any](label string, payload T) Item[T] {
	return Item[T]{Label: label, Payload: payload}
}

// Score returns the item's current score. ok is false when the item does
// not match the current query.
func (it *Item[T]) Score() (Score, bool) {
	if it.score == nil {
		return Score{}, false
	}
	return *it.score, true
}

// ID is the item's position in the collection the finder was started with.
// Selection tracking across query edits uses it as the item's identity.
func (it *Item[T]) ID() int {
	return it.id
}
