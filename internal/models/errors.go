package models

import "errors"

// Sentinel errors shared by the services and handlers. Services wrap these with
// context via fmt.Errorf and %w; handlers map them to status codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
