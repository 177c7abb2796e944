package usecase

import "time"

const (
	// ListCacheTTL is how long a cached day list stays valid.
	// Kept short; the authoritative copy is always Postgres.
	ListCacheTTL = 2 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// DayDateLayout is the wire format of the list query's date parameter.
	DayDateLayout = "2006-01-02"
)
