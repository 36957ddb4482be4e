package services

import "errors"

// ErrInvalidFilter marks a list query whose filter keys or values cannot be
// mapped onto the user table. Surfaced as a bad request, never as a silent
// full-table scan.
var ErrInvalidFilter = errors.New("invalid filter")
