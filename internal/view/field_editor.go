package view

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// Field names one editable transaction attribute.
type Field string

// Editable fields.
const (
	FieldTitle    Field = "title"
	FieldAmount   Field = "amount"
	FieldType     Field = "type"
	FieldCategory Field = "category"
	FieldDate     Field = "date"
	FieldNote     Field = "note"
	FieldCurrency Field = "currency"
)

// FieldEditor edits exactly one field of a transaction. Saving sends the
// whole transaction with the one field replaced, publishes the result on the
// bus and navigates back. A failed save logs and stays on the screen.
type FieldEditor struct {
	api          API
	bus          *Bus
	logger       zerolog.Logger
	field        Field
	navigateBack func()

	mu       sync.Mutex
	original *dto.TransactionResponse
	saving   bool
}

// EditorOption configures a FieldEditor.
type EditorOption func(*FieldEditor)

// WithNavigateBack sets the callback invoked after a successful save.
func WithNavigateBack(fn func()) EditorOption {
	return func(e *FieldEditor) {
		e.navigateBack = fn
	}
}

// WithEditorLogger sets the editor's logger.
func WithEditorLogger(logger zerolog.Logger) EditorOption {
	return func(e *FieldEditor) {
		e.logger = logger
	}
}

// NewFieldEditor decodes the navigation payload and seeds missing attributes
// with defaults: currency USD, type expense, date now, everything else empty.
func NewFieldEditor(api API, bus *Bus, param string, field Field, opts ...EditorOption) (*FieldEditor, error) {
	tx, err := DecodeNavParam(param)
	if err != nil {
		return nil, err
	}

	if tx.Currency == "" {
		tx.Currency = "USD"
	}
	if tx.Type == "" {
		tx.Type = "expense"
	}
	if tx.OccurredAt == nil || *tx.OccurredAt == "" {
		now := time.Now().UTC().Format(time.RFC3339)
		tx.OccurredAt = &now
	}

	e := &FieldEditor{
		api:          api,
		bus:          bus,
		logger:       zerolog.Nop(),
		field:        field,
		navigateBack: func() {},
		original:     tx,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Value returns the edited field's current value as text.
func (e *FieldEditor) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.field {
	case FieldTitle:
		return e.original.Title
	case FieldAmount:
		return e.original.Amount
	case FieldType:
		return e.original.Type
	case FieldCategory:
		if e.original.Category != nil {
			return *e.original.Category
		}
	case FieldDate:
		if e.original.OccurredAt != nil {
			return *e.original.OccurredAt
		}
	case FieldNote:
		if e.original.Note != nil {
			return *e.original.Note
		}
	case FieldCurrency:
		return e.original.Currency
	}
	return ""
}

// Saving reports whether a save is in flight.
func (e *FieldEditor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Save applies value to the edited field and sends the full-field update.
// A save while another is in flight is a no-op.
func (e *FieldEditor) Save(ctx context.Context, value string) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return
	}
	e.saving = true

	draft := *e.original
	applyField(&draft, e.field, value)
	req := buildUpdateRequest(&draft)
	id := draft.ID
	e.mu.Unlock()

	updated, err := e.api.Update(ctx, id, req)

	e.mu.Lock()
	e.saving = false
	if err == nil {
		e.original = updated
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.Error().Err(err).Str("id", id).Str("field", string(e.field)).Msg("failed to save field")
		return
	}

	if e.bus != nil {
		e.bus.Publish(updated)
	}
	e.navigateBack()
}

func applyField(tx *dto.TransactionResponse, field Field, value string) {
	switch field {
	case FieldTitle:
		tx.Title = value
	case FieldAmount:
		amount, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			amount = decimal.Zero
		}
		tx.Amount = amount.String()
	case FieldType:
		tx.Type = value
	case FieldCategory:
		tx.Category = &value
	case FieldDate:
		tx.OccurredAt = canonicalDate(value)
	case FieldNote:
		tx.Note = &value
	case FieldCurrency:
		tx.Currency = value
	}
}

// canonicalDate accepts a bare day or a full timestamp and returns RFC3339
// UTC, or nil when the input is blank or unreadable.
func canonicalDate(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if when, err := time.Parse(time.RFC3339, value); err == nil {
		canonical := when.UTC().Format(time.RFC3339)
		return &canonical
	}
	if when, err := time.Parse("2006-01-02", value); err == nil {
		canonical := when.UTC().Format(time.RFC3339)
		return &canonical
	}

	return nil
}
