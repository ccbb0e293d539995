package catalog

import "errors"

// Sentinel kinds for catalog construction.
var (
	ErrEmptyCatalog  = errors.New("catalog is empty")
	ErrDuplicateItem = errors.New("duplicate catalog item")
)
