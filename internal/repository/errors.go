package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with existing state, such as
// a second active booking for the same asset slot or a duplicate email.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller acts on a resource owned by
// someone else.
var ErrForbidden = errors.New("forbidden")
