package errors

import "errors"

// This package defines the sentinel errors shared by the widget packages.
// Services return (or wrap with %w) one of these so the API layer can map
// them to HTTP responses with `errors.Is()` without knowing where they came from.

var (
	// ErrNotFound signifies that a requested resource (a widget session, a
	// cached configuration entry) could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// validation, e.g. an empty message.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation could not be completed because
	// it conflicts with the current state of a resource. A send attempted while
	// another dispatch is outstanding wraps this error.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidState signifies a broken internal contract, such as setting a
	// pending indicator while one is already active.
	ErrInvalidState = errors.New("invalid state")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
