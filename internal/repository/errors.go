package repository

import "errors"

// ErrDuplicate is returned when an insert violates a unique constraint
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound is returned when an update targets a missing row
var ErrNotFound = errors.New("record not found")
