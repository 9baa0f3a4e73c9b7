package models

import "errors"

// Error taxonomy shared by the registry and the dashboard. Callers match
// with errors.Is; the wrapped cause stays inspectable.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStorage      = errors.New("storage error")
)
