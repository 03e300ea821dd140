package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
// Repositories wrap it with context so services can match with errors.Is.
var ErrNotFound = errors.New("not found")
