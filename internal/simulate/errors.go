package simulate

import "errors"

// Simulation errors.
var (
	ErrInvalidConfig    = errors.New("invalid simulation config")
	ErrUnhealthy        = errors.New("service unhealthy")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrProtocol         = errors.New("protocol violation")
	ErrRankingMismatch  = errors.New("ranking mismatch")
	ErrSessionsFailed   = errors.New("sessions failed")
)
