package tournament

import (
	"errors"

	"github.com/okian/rankr/internal/domain/selection"
)

// Sentinel kinds for engine misuse. All of them are caller contract breaches
// and leave the engine unchanged.
var (
	ErrInvalidSelection = selection.ErrInvalidSelection
	ErrNoCurrentPair    = errors.New("no current pair")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNotInProgress    = errors.New("tournament not in progress")
	ErrNotFinished      = errors.New("tournament not finished")
	ErrPairMismatch     = errors.New("pair is not the current pair")
	ErrInvalidChoice    = errors.New("invalid choice")
)
