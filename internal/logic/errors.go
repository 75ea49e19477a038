package logic

import "errors"

// Sentinel errors the handlers map onto HTTP statuses.
var (
	ErrNotFound      = errors.New("record not found")        // 404
	ErrValidation    = errors.New("validation failed")       // 400
	ErrStateConflict = errors.New("state conflict")          // 409
	ErrDuplicate     = errors.New("resource already exists") // 409
)
