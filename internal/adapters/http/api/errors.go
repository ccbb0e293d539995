package api

import (
	"errors"
	"net/http"

	"github.com/okian/rankr/internal/adapters/export"
	"github.com/okian/rankr/internal/adapters/repository"
	"github.com/okian/rankr/internal/domain/selection"
	"github.com/okian/rankr/internal/domain/tournament"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrMissingSession = errors.New("missing session id")
)

// errorKinds maps upstream sentinels to a status and a stable error code.
// The first match wins.
var errorKinds = []struct { //nolint:gochecknoglobals // read-only table
	target error
	status int
	code   string
}{
	{repository.ErrSessionNotFound, http.StatusNotFound, "not_found"},
	{repository.ErrStoreFull, http.StatusServiceUnavailable, "store_full"},
	{selection.ErrInvalidSelection, http.StatusBadRequest, "invalid_selection"},
	{selection.ErrUnknownItem, http.StatusBadRequest, "invalid_selection"},
	{tournament.ErrInvalidChoice, http.StatusBadRequest, "invalid_choice"},
	{tournament.ErrPairMismatch, http.StatusConflict, "pair_mismatch"},
	{tournament.ErrNotInProgress, http.StatusConflict, "not_in_progress"},
	{tournament.ErrNoCurrentPair, http.StatusConflict, "no_current_pair"},
	{tournament.ErrNothingToUndo, http.StatusConflict, "nothing_to_undo"},
	{tournament.ErrNotFinished, http.StatusConflict, "not_finished"},
	{export.ErrExport, http.StatusInternalServerError, "export_failed"},
	{export.ErrNoStanding, http.StatusInternalServerError, "export_failed"},
	{ErrBadRequest, http.StatusBadRequest, "bad_request"},
}

func classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}
