// Package simulate plays random tournaments against a running rankr server
// and checks every final ranking against a local replay of the votes cast.
package simulate

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/rankr/internal/domain/selection"
	"github.com/okian/rankr/internal/domain/types"
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Sessions int           // Number of tournaments to play
	Workers  int           // Number of concurrent players
	MinItems int           // Smallest selection per tournament
	MaxItems int           // Largest selection per tournament
	UndoRate float64       // Probability of pressing back instead of voting
	Seed     int64         // Seed for selections and votes
	Timeout  time.Duration // HTTP request timeout
	Export   bool          // Export every verified ranking on the server
	Keep     bool          // Leave sessions on the server when done
}

// Defaults fills zero fields and validates the rest.
func (c *Config) Defaults() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Sessions <= 0 {
		c.Sessions = DefaultSessions
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.MinItems == 0 {
		c.MinItems = selection.MinItems
	}
	if c.MaxItems == 0 {
		c.MaxItems = selection.MaxItems
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	switch {
	case c.MinItems < selection.MinItems || c.MaxItems > selection.MaxItems:
		return fmt.Errorf("%w: items must stay within %d..%d", ErrInvalidConfig, selection.MinItems, selection.MaxItems)
	case c.MinItems > c.MaxItems:
		return fmt.Errorf("%w: min items %d above max items %d", ErrInvalidConfig, c.MinItems, c.MaxItems)
	case c.UndoRate < 0 || c.UndoRate > MaxUndoRate:
		return fmt.Errorf("%w: undo rate must be within 0..%.1f", ErrInvalidConfig, MaxUndoRate)
	}
	return nil
}

// Result describes one played tournament.
type Result struct {
	SessionID  string
	Items      []string
	Votes      int
	Undos      int
	Ranking    []types.Entry
	ExportPath string
}

// Stats holds run statistics.
type Stats struct {
	SessionsStarted  int
	SessionsVerified int
	SessionsFailed   int
	Votes            int
	Undos            int
	Exports          int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

func (s *Stats) add(r Result) {
	s.SessionsVerified++
	s.Votes += r.Votes
	s.Undos += r.Undos
	if r.ExportPath != "" {
		s.Exports++
	}
}
