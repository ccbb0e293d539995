package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStoreFull       = errors.New("session store full")
)
