package repository

import "errors"

// ErrNotFound is returned when no cache entry exists for a record id. The
// caller treats it as a miss and fetches the configuration remotely.
var ErrNotFound = errors.New("repository: not found")
