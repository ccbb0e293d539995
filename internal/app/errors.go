package service

import (
	"errors"

	"github.com/okian/rankr/internal/domain/tournament"
)

// Sentinel errors returned by Service. Engine, store and exporter errors pass
// through wrapped, so callers match them with errors.Is.
var (
	ErrNotStarted  = errors.New("service not started")
	ErrNotFinished = tournament.ErrNotFinished
)
