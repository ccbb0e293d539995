package config

import "errors"

// Sentinel errors returned by Load, LoadFrom and Validate.
var (
	// ErrLoadConfig wraps file, parse and environment failures.
	ErrLoadConfig = errors.New("load config failed")
	// ErrInvalidConfig wraps field validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)
