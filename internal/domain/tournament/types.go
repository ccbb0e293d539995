package tournament

import (
	"fmt"
	"strings"

	"github.com/okian/rankr/internal/domain/types"
)

// Item is the display name of a thing being ranked.
type Item = string

// Standing is one row of the final ranking.
type Standing = types.Entry

// Pair is a two-item comparison. Left precedes Right in the selection order.
type Pair struct {
	Left  Item
	Right Item
}

// Contains reports whether item is one of the two sides.
func (p Pair) Contains(item Item) bool {
	return p.Left == item || p.Right == item
}

// View converts the pair into its wire shape.
func (p Pair) View() types.PairView {
	return types.PairView{Left: p.Left, Right: p.Right}
}

func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Left, p.Right)
}

// Choice is the outcome recorded for a pair.
type Choice int

// Choices. The zero value is deliberately invalid.
const (
	ChoiceLeft Choice = iota + 1
	ChoiceRight
	ChoiceTie
)

func (c Choice) String() string {
	switch c {
	case ChoiceLeft:
		return "left"
	case ChoiceRight:
		return "right"
	case ChoiceTie:
		return "tie"
	default:
		return fmt.Sprintf("choice(%d)", int(c))
	}
}

// Valid reports whether c is one of the defined choices.
func (c Choice) Valid() bool {
	return c >= ChoiceLeft && c <= ChoiceTie
}

// ParseChoice accepts left, right or tie (case-insensitive).
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return ChoiceLeft, nil
	case "right":
		return ChoiceRight, nil
	case "tie":
		return ChoiceTie, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
}

// Vote is one History entry.
type Vote struct {
	Pair   Pair
	Choice Choice
}

// Winner returns the winning item, or false for a tie.
func (v Vote) Winner() (Item, bool) {
	switch v.Choice {
	case ChoiceLeft:
		return v.Pair.Left, true
	case ChoiceRight:
		return v.Pair.Right, true
	default:
		return "", false
	}
}

// State is the engine lifecycle state.
type State int

// States.
const (
	StateReady State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
