package services

import "errors"

// Error kinds surfaced by the money core. Handlers match with errors.Is;
// anything else coming out of a db.Transaction closure means the unit of
// work failed to commit and nothing was applied.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAlreadyProcessed    = errors.New("already processed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCannotCancel        = errors.New("cannot cancel")
	ErrNotPaid             = errors.New("transaction must be paid first")
)
