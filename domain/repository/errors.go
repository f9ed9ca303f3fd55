package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches nothing the caller
// may see.
var ErrNotFound = errors.New("record not found")
