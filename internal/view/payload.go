package view

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// buildUpdateRequest turns a snapshot into the full-field update payload.
// Blank category/note become null, the amount is coerced to a number (zero
// when unparseable) and occurredAt becomes a canonical RFC3339 UTC timestamp
// or null.
func buildUpdateRequest(tx *dto.TransactionResponse) dto.UpdateTransactionRequest {
	req := dto.UpdateTransactionRequest{
		Title:    tx.Title,
		Currency: tx.Currency,
		Type:     tx.Type,
		Category: normalizeOptional(tx.Category),
		Note:     normalizeOptional(tx.Note),
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(tx.Amount))
	if err != nil {
		amount = decimal.Zero
	}
	req.Amount = json.Number(amount.String())

	if tx.OccurredAt != nil && strings.TrimSpace(*tx.OccurredAt) != "" {
		if when, err := time.Parse(time.RFC3339, *tx.OccurredAt); err == nil {
			canonical := when.UTC().Format(time.RFC3339)
			req.OccurredAt = &canonical
		}
	}

	return req
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
