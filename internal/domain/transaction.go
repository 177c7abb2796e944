package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied whenever a currency is unset.
const DefaultCurrency = "USD"

// TransactionType determines the sign of a transaction in aggregate totals.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	ID         string
	UserID     string
	Title      string
	Amount     decimal.Decimal
	Currency   string
	Type       TransactionType
	Category   *string
	Note       *string
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the invariants that hold for every persisted transaction.
func (t *Transaction) Validate() error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	// Empty currency means the default applies later.
	if t.Currency != "" {
		if err := ValidateCurrency(t.Currency); err != nil {
			return err
		}
	}
	if err := ValidateOptional(t.Category, MaxCategoryLength, ErrCategoryTooLong); err != nil {
		return err
	}
	return ValidateOptional(t.Note, MaxNoteLength, ErrNoteTooLong)
}

// NormalizeOptional maps blank or whitespace-only strings to nil.
// Blank and absent are not distinguished past this boundary.
func NormalizeOptional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
