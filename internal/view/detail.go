package view

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// Detail is the read-only transaction screen. It decodes its snapshot from a
// navigation payload and keeps it fresh by listening to the edit bus.
type Detail struct {
	mu    sync.Mutex
	tx    *dto.TransactionResponse
	unsub func()
}

// NewDetail decodes the navigation payload and subscribes to bus updates for
// its transaction. A bad payload yields a not-found Detail that renders a
// placeholder and subscribes to nothing.
func NewDetail(param string, bus *Bus) *Detail {
	d := &Detail{}

	tx, err := DecodeNavParam(param)
	if err != nil {
		return d
	}
	d.tx = tx

	if bus != nil {
		d.unsub = bus.Subscribe(func(updated *dto.TransactionResponse) {
			d.mu.Lock()
			defer d.mu.Unlock()
			if d.tx != nil && updated.ID == d.tx.ID {
				snapshot := *updated
				d.tx = &snapshot
			}
		})
	}

	return d
}

// Close unsubscribes from the bus.
func (d *Detail) Close() {
	if d.unsub != nil {
		d.unsub()
	}
}

// NotFound reports whether the navigation payload was unreadable.
func (d *Detail) NotFound() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx == nil
}

// Transaction returns the current snapshot, or nil when not found.
func (d *Detail) Transaction() *dto.TransactionResponse {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return nil
	}
	snapshot := *d.tx
	return &snapshot
}

// AmountLabel renders the amount with two decimals, falling back to the raw
// string when it does not parse.
func (d *Detail) AmountLabel() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return ""
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(d.tx.Amount))
	if err != nil {
		return d.tx.Amount
	}
	return amount.StringFixed(2)
}

// CategoryLabel renders the category, or "Uncategorized" when absent.
func (d *Detail) CategoryLabel() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil || d.tx.Category == nil || strings.TrimSpace(*d.tx.Category) == "" {
		return "Uncategorized"
	}
	return *d.tx.Category
}

// OccurredAtLabel renders the local date of the transaction, or
// "Not specified" when absent.
func (d *Detail) OccurredAtLabel() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil || d.tx.OccurredAt == nil || *d.tx.OccurredAt == "" {
		return "Not specified"
	}

	when, err := time.Parse(time.RFC3339, *d.tx.OccurredAt)
	if err != nil {
		return "Not specified"
	}
	return when.Local().Format("Jan 2, 2006")
}

// CurrencySymbol renders "$" for USD and the code itself otherwise.
func (d *Detail) CurrencySymbol() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil || d.tx.Currency == "" || d.tx.Currency == "USD" {
		return "$"
	}
	return d.tx.Currency
}
