package view

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// LoadErrorBanner is shown when the day list cannot be fetched.
const LoadErrorBanner = "Couldn't load transactions. Please try again."

// DeleteErrorBanner is shown when a delete fails and the row is restored.
const DeleteErrorBanner = "Couldn't delete the transaction. Please try again."

// DeleteAnimationDuration is how long a row shrinks before the delete request
// goes out.
const DeleteAnimationDuration = 220 * time.Millisecond

// ListController owns the transactions shown for the selected day.
type ListController struct {
	api      API
	selected *SelectedDate
	animator Animator
	logger   zerolog.Logger

	restoreOnDeleteFailure bool

	mu          sync.Mutex
	generation  uint64
	items       []*dto.TransactionResponse
	errorBanner string
	inflight    map[string]bool
	rowProgress map[string]float64
}

// ListOption configures a ListController.
type ListOption func(*ListController)

// WithAnimator replaces the delete-row animator.
func WithAnimator(a Animator) ListOption {
	return func(c *ListController) {
		c.animator = a
	}
}

// WithRestoreOnDeleteFailure re-inserts a row and surfaces an error banner
// when its delete request fails, instead of silently dropping it.
func WithRestoreOnDeleteFailure() ListOption {
	return func(c *ListController) {
		c.restoreOnDeleteFailure = true
	}
}

// WithListLogger sets the controller's logger.
func WithListLogger(logger zerolog.Logger) ListOption {
	return func(c *ListController) {
		c.logger = logger
	}
}

// NewListController creates a ListController reading its day from selected.
func NewListController(api API, selected *SelectedDate, opts ...ListOption) *ListController {
	c := &ListController{
		api:      api,
		selected: selected,
		animator: TickerAnimator{},
		logger:   zerolog.Nop(),
		inflight: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Refresh fetches the selected day's transactions and replaces the list
// wholesale. A Refresh superseded by a newer one discards its result instead
// of applying a stale list.
func (c *ListController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	day := c.selected.Get()
	date := day.Format("2006-01-02")

	// JS getTimezoneOffset convention: UTC minus local, in minutes.
	_, offsetSeconds := day.Zone()
	tzOffset := -offsetSeconds / 60

	txs, err := c.api.ListByDay(ctx, date, tzOffset)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return nil
	}

	if err != nil {
		c.logger.Error().Err(err).Str("date", date).Msg("failed to load transactions")
		c.errorBanner = LoadErrorBanner
		return err
	}

	c.items = txs
	c.errorBanner = ""
	c.rowProgress = nil

	return nil
}

// Items returns the current list.
func (c *ListController) Items() []*dto.TransactionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*dto.TransactionResponse, len(c.items))
	copy(out, c.items)
	return out
}

// ErrorBanner returns the current banner text, or "" when there is none.
func (c *ListController) ErrorBanner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorBanner
}

// Totals holds the derived sums for the visible day.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// Totals sums the visible list by type. A row whose amount does not parse
// contributes zero.
func (c *ListController) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range c.items {
		amount, err := decimal.NewFromString(tx.Amount)
		if err != nil {
			continue
		}
		switch tx.Type {
		case "income":
			t.Income = t.Income.Add(amount)
		case "expense":
			t.Expense = t.Expense.Add(amount)
		}
	}

	t.Net = t.Income.Sub(t.Expense)
	return t
}

// RowProgress reports the delete animation progress for a row, 1 when idle.
func (c *ListController) RowProgress(id string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.rowProgress[id]; ok {
		return p
	}
	return 1
}

// Delete removes a row optimistically: the row animates out, leaves the list,
// and only then does the server request go out. A second Delete for the same
// id while one is in flight is a no-op.
func (c *ListController) Delete(ctx context.Context, id string) {
	c.mu.Lock()
	if c.inflight[id] {
		c.mu.Unlock()
		return
	}
	c.inflight[id] = true
	c.setRowProgressLocked(id, 1)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, id)
		delete(c.rowProgress, id)
		c.mu.Unlock()
	}()

	c.animator.Run(ctx, DeleteAnimationDuration, func(progress float64) {
		c.mu.Lock()
		c.setRowProgressLocked(id, progress)
		c.mu.Unlock()
	})

	c.mu.Lock()
	removed, index := c.removeLocked(id)
	c.mu.Unlock()

	if err := c.api.Delete(ctx, id); err != nil {
		c.logger.Error().Err(err).Str("id", id).Msg("failed to delete transaction")

		if c.restoreOnDeleteFailure && removed != nil {
			c.mu.Lock()
			c.insertLocked(removed, index)
			c.errorBanner = DeleteErrorBanner
			c.mu.Unlock()
		}
	}
}

func (c *ListController) setRowProgressLocked(id string, progress float64) {
	if c.rowProgress == nil {
		c.rowProgress = make(map[string]float64)
	}
	c.rowProgress[id] = progress
}

func (c *ListController) removeLocked(id string) (*dto.TransactionResponse, int) {
	for i, tx := range c.items {
		if tx.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return tx, i
		}
	}
	return nil, -1
}

func (c *ListController) insertLocked(tx *dto.TransactionResponse, index int) {
	if index < 0 || index > len(c.items) {
		index = len(c.items)
	}
	c.items = append(c.items[:index], append([]*dto.TransactionResponse{tx}, c.items[index:]...)...)
}
