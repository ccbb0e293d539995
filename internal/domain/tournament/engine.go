// Package tournament runs an exhaustive pairwise comparison over a selection
// of items and derives a ranking from the recorded votes.
//
// An Engine is owned by a single session and is not safe for concurrent use.
package tournament

import (
	"math/rand"
	"sort"
	"time"

	"github.com/okian/rankr/internal/domain/selection"
)

// Engine owns the pair sequence, scores and vote history of one tournament.
type Engine struct {
	items []Item
	pairs []Pair // every pair, in shuffled presentation order

	// queue holds pending pairs; current is not part of it.
	queue   []Pair
	current Pair
	state   State

	history []Vote
	scores  map[Item]int

	rng *rand.Rand
}

// New validates the selection and prepares a shuffled pair sequence. The
// engine starts in StateReady; call Start to show the first pair.
func New(items []Item, opts ...Option) (*Engine, error) {
	if err := selection.Validate(items); err != nil {
		return nil, err
	}

	e := &Engine{
		items:  append([]Item(nil), items...),
		scores: make(map[Item]int, len(items)),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // presentation order only
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, it := range e.items {
		e.scores[it] = 0
	}

	e.pairs = Pairs(e.items)
	e.rng.Shuffle(len(e.pairs), func(i, j int) {
		e.pairs[i], e.pairs[j] = e.pairs[j], e.pairs[i]
	})
	e.queue = append([]Pair(nil), e.pairs...)
	e.state = StateReady
	return e, nil
}

// Pairs returns every unordered pair of items in generation order:
// (items[i], items[j]) for i < j, i ascending then j ascending.
func Pairs(items []Item) []Pair {
	n := len(items)
	if n < 2 {
		return nil
	}
	out := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, Pair{Left: items[i], Right: items[j]})
		}
	}
	return out
}

// Start moves a Ready engine to InProgress, or to Finished when there is
// nothing to compare. In any other state it is a no-op.
func (e *Engine) Start() State {
	if e.state == StateReady {
		e.advance()
	}
	return e.state
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// CurrentPair returns the pair awaiting a vote.
func (e *Engine) CurrentPair() (Pair, error) {
	if e.state != StateInProgress {
		return Pair{}, ErrNoCurrentPair
	}
	return e.current, nil
}

// Vote records choice for pair, which must be the current pair.
func (e *Engine) Vote(pair Pair, choice Choice) error {
	if e.state != StateInProgress {
		return ErrNotInProgress
	}
	if !choice.Valid() {
		return ErrInvalidChoice
	}
	if pair != e.current {
		return ErrPairMismatch
	}

	v := Vote{Pair: pair, Choice: choice}
	apply(e.scores, v, 1)
	e.history = append(e.history, v)
	e.advance()
	return nil
}

// VoteCurrent records choice for the current pair.
func (e *Engine) VoteCurrent(choice Choice) error {
	if e.state != StateInProgress {
		return ErrNotInProgress
	}
	return e.Vote(e.current, choice)
}

// Back undoes the most recent vote. The undone pair goes to the head of the
// pending sequence and becomes the current pair again, whatever the prior state.
func (e *Engine) Back() (Pair, error) {
	if len(e.history) == 0 {
		return Pair{}, ErrNothingToUndo
	}

	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	apply(e.scores, last, -1)

	if e.state == StateInProgress {
		e.queue = append([]Pair{e.current}, e.queue...)
	}
	e.current = last.Pair
	e.state = StateInProgress
	return last.Pair, nil
}

// IsFinished reports whether no pairs remain.
func (e *Engine) IsFinished() bool {
	return e.Remaining() == 0
}

// CanUndo reports whether Back would succeed.
func (e *Engine) CanUndo() bool { return len(e.history) > 0 }

// FinalRanking orders items by descending score. Items with equal scores keep
// their selection order.
func (e *Engine) FinalRanking() []Standing {
	return Rank(e.items, e.scores)
}

// Rank sorts items by descending score with a stable sort on score only.
func Rank(items []Item, scores map[Item]int) []Standing {
	out := make([]Standing, len(items))
	for i, it := range items {
		out[i] = Standing{Item: it, Score: scores[it]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Scores returns a copy of the live scores.
func (e *Engine) Scores() map[Item]int {
	out := make(map[Item]int, len(e.scores))
	for k, v := range e.scores {
		out[k] = v
	}
	return out
}

// History returns a copy of the recorded votes, oldest first.
func (e *Engine) History() []Vote {
	return append([]Vote(nil), e.history...)
}

// Items returns the selection in its original order.
func (e *Engine) Items() []Item {
	return append([]Item(nil), e.items...)
}

// Total is the number of pairs in the tournament.
func (e *Engine) Total() int { return len(e.pairs) }

// Decided is the number of votes in History.
func (e *Engine) Decided() int { return len(e.history) }

// Remaining counts the current pair plus pending ones.
func (e *Engine) Remaining() int {
	n := len(e.queue)
	if e.state == StateInProgress {
		n++
	}
	return n
}

// Snapshot is a read model of the engine for presentation layers.
type Snapshot struct {
	State   State
	Current *Pair
	Decided int
	Total   int
	CanUndo bool
	Scores  map[Item]int
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		State:   e.state,
		Decided: e.Decided(),
		Total:   e.Total(),
		CanUndo: e.CanUndo(),
		Scores:  e.Scores(),
	}
	if e.state == StateInProgress {
		p := e.current
		s.Current = &p
	}
	return s
}

func (e *Engine) advance() {
	if len(e.queue) == 0 {
		e.current = Pair{}
		e.state = StateFinished
		return
	}
	e.current = e.queue[0]
	e.queue = e.queue[1:]
	e.state = StateInProgress
}

// apply adds sign to the winner's score; ties are ignored.
func apply(scores map[Item]int, v Vote, sign int) {
	if w, ok := v.Winner(); ok {
		scores[w] += sign
	}
}
