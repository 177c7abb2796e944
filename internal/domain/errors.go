package domain

import "errors"

var (
	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmptyTitle          = errors.New("title must not be empty")
	ErrInvalidType         = errors.New("type must be income or expense")
	ErrInvalidAmount       = errors.New("amount must not be negative")

	// Quick-add errors
	ErrEmptyText     = errors.New("text must not be empty")
	ErrParseRejected = errors.New("could not derive a transaction from text")
)
