// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/rankr/internal/domain/tournament"
	"github.com/okian/rankr/internal/domain/types"
)

// Session is the read shape of one tournament, as exposed to clients.
type Session struct {
	ID        string          `json:"id"`
	State     string          `json:"state"`
	Items     []string        `json:"items"`
	Current   *types.PairView `json:"current,omitempty"`
	Decided   int             `json:"decided"`
	Total     int             `json:"total"`
	CanUndo   bool            `json:"can_undo"`
	Scores    map[string]int  `json:"scores"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewSession projects an engine snapshot into the read model.
func NewSession(id string, items []string, snap tournament.Snapshot, created, updated time.Time) Session {
	s := Session{
		ID:        id,
		State:     snap.State.String(),
		Items:     items,
		Decided:   snap.Decided,
		Total:     snap.Total,
		CanUndo:   snap.CanUndo,
		Scores:    snap.Scores,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	if snap.Current != nil {
		v := snap.Current.View()
		s.Current = &v
	}
	return s
}

// Finished reports whether every pair has been decided.
func (s Session) Finished() bool {
	return s.State == tournament.StateFinished.String()
}
