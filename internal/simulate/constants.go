package simulate

import "time"

// Run defaults.
const (
	DefaultBaseURL  = "http://localhost:9080"
	DefaultSessions = 100
	DefaultWorkers  = 8
	DefaultTimeout  = 10 * time.Second

	// Above this a player could bounce between vote and back for a long time.
	MaxUndoRate = 0.5
)

const (
	// Responses are small JSON documents.
	maxResponseBytes = 1 << 20
	contentTypeJSON  = "application/json"
)
