package models

import "errors"

// ErrInvalidConfiguration reports experiment parameters that cannot produce
// a valid run, such as max_edges >= agents or a non-positive slot count.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrEmptyInput reports an operation that needs at least one record.
var ErrEmptyInput = errors.New("empty input")
