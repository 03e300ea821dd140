package services

import "errors"

// Service errors form the four failure kinds the API surfaces:
// validation failures detected before any write, missing entities,
// callers acting on records they don't own, and transitions attempted
// against a request that already left its expected state.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrBadState   = errors.New("invalid state")
	ErrConflict   = errors.New("already exists")
)
