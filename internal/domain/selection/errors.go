package selection

import "errors"

// Sentinel kinds for selection validation.
var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrUnknownItem      = errors.New("unknown item")
)
