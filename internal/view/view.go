// Package view holds the client-side view-models: the selected-date store,
// the day-list controller, the quick-add pipeline, the edit broadcast bus and
// the detail/field-edit models. The application shell owns and wires all of
// them; nothing here is a package-level singleton.
package view

import (
	"context"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// API is the server surface the view-models depend on. *client.Client
// satisfies it.
type API interface {
	ListByDay(ctx context.Context, date string, tzOffset int) ([]*dto.TransactionResponse, error)
	QuickAdd(ctx context.Context, text, currency string) (*dto.TransactionResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	Delete(ctx context.Context, id string) error
}

// SettingsReader exposes the locally stored user preferences.
type SettingsReader interface {
	Currency() string
}
