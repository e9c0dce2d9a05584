package services

import "errors"

// Service errors surfaced to callers. Handlers map these to HTTP statuses;
// anything else is treated as an internal error and not exposed.
var (
	ErrInvalidInput        = errors.New("missing or malformed input")
	ErrInvalidActivityType = errors.New("unknown emission factor")
	ErrInsufficientPoints  = errors.New("not enough points")
	ErrOutOfStock          = errors.New("reward out of stock")
	ErrAlreadyJoined       = errors.New("challenge already joined")
	ErrNotJoined           = errors.New("challenge not joined")
	ErrNotFound            = errors.New("resource not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)
