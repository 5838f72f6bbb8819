package domain

import "errors"

// Validation errors
var (
	ErrInvalidURL  = errors.New("invalid URL")
	ErrInvalidRole = errors.New("invalid role")
)
