package dto

import (
	"time"

	"github.com/ish/pocketledger/internal/domain"
)

// TransactionResponse represents a transaction in API responses. Amount is a
// text-encoded decimal on the wire: clients must never see binary floats.
type TransactionResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Amount     string  `json:"amount"`
	Currency   string  `json:"currency"`
	Type       string  `json:"type"`
	Category   *string `json:"category"`
	Note       *string `json:"note"`
	OccurredAt *string `json:"occurredAt"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:        t.ID,
		Title:     t.Title,
		Amount:    t.Amount.StringFixed(2),
		Currency:  t.Currency,
		Type:      string(t.Type),
		Category:  t.Category,
		Note:      t.Note,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if !t.OccurredAt.IsZero() {
		s := t.OccurredAt.UTC().Format(time.RFC3339)
		resp.OccurredAt = &s
	}

	return resp
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse is the day-list envelope.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
