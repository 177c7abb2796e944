package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/domain"
	"github.com/ish/pocketledger/internal/usecase"
)

// UpdateTransactionRequest represents a full-field transaction update.
// Optional fields are nullable on the wire: blank strings have already been
// normalized to null by well-behaved clients, but the server normalizes again.
type UpdateTransactionRequest struct {
	Title      string      `json:"title"`
	Amount     json.Number `json:"amount"`
	Currency   string      `json:"currency"`
	Type       string      `json:"type"`
	Category   *string     `json:"category"`
	Note       *string     `json:"note"`
	OccurredAt *string     `json:"occurredAt"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput() (usecase.UpdateTransactionInput, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return usecase.UpdateTransactionInput{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	input := usecase.UpdateTransactionInput{
		Title:    r.Title,
		Amount:   amount,
		Currency: r.Currency,
		Type:     domain.TransactionType(r.Type),
		Category: r.Category,
		Note:     r.Note,
	}

	if r.OccurredAt != nil && *r.OccurredAt != "" {
		when, err := time.Parse(time.RFC3339, *r.OccurredAt)
		if err != nil {
			return usecase.UpdateTransactionInput{}, fmt.Errorf("invalid occurredAt %q: %w", *r.OccurredAt, err)
		}
		input.OccurredAt = &when
	}

	return input, nil
}

// QuickAddRequest represents a free-text quick-add submission.
type QuickAddRequest struct {
	Text     string `json:"text"`
	Currency string `json:"currency"`
}
