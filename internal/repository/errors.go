package repository

import "errors"

// ErrNotFound is returned when a queried row does not exist. Services map it
// to their own not-found errors.
var ErrNotFound = errors.New("not found")
