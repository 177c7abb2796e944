package usecase

import (
	"context"
	"time"

	"github.com/ish/pocketledger/internal/domain"
)

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByWindow(ctx context.Context, userID string, from, to time.Time) ([]*domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Parser turns one line of free text into a draft transaction.
type Parser interface {
	Parse(ctx context.Context, text, currency string) (*ParsedTransaction, error)
}

// ParsedTransaction is the parser output before persistence defaults apply.
type ParsedTransaction struct {
	Title      string
	Amount     string
	Type       domain.TransactionType
	Category   *string
	Note       *string
	OccurredAt *time.Time
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr increments a counter key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
