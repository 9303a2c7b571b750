package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// place or plan does not exist.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when a request fails
// validation (unknown pace, negative minutes, missing region).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
