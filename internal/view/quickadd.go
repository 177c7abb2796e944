package view

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// SubmitErrorBanner is shown when a quick-add submission fails.
const SubmitErrorBanner = "Couldn't process that entry. Please try again."

// QuickAdd is the free-text entry pipeline. At most one submission is in
// flight at a time.
type QuickAdd struct {
	api      API
	settings SettingsReader
	list     *ListController
	logger   zerolog.Logger

	mu          sync.Mutex
	submitting  bool
	text        string
	errorBanner string
}

// NewQuickAdd creates a QuickAdd that refreshes list after a successful
// submission. list may be nil.
func NewQuickAdd(api API, settings SettingsReader, list *ListController, logger zerolog.Logger) *QuickAdd {
	return &QuickAdd{
		api:      api,
		settings: settings,
		list:     list,
		logger:   logger,
	}
}

// Text returns the current input text.
func (q *QuickAdd) Text() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.text
}

// ErrorBanner returns the current banner text, or "" when there is none.
func (q *QuickAdd) ErrorBanner() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.errorBanner
}

// Submitting reports whether a submission is in flight.
func (q *QuickAdd) Submitting() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.submitting
}

// Submit sends text to the parsing endpoint. Blank text and double submission
// are no-ops. On success the input and the banner clear and the list
// refreshes; on failure the text stays so the user can retry.
func (q *QuickAdd) Submit(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	q.mu.Lock()
	if q.submitting {
		q.mu.Unlock()
		return
	}
	q.submitting = true
	q.text = text
	q.mu.Unlock()

	currency := q.settings.Currency()

	_, err := q.api.QuickAdd(ctx, text, currency)

	q.mu.Lock()
	q.submitting = false
	if err != nil {
		q.errorBanner = SubmitErrorBanner
	} else {
		q.text = ""
		q.errorBanner = ""
	}
	q.mu.Unlock()

	if err != nil {
		q.logger.Error().Err(err).Msg("quick-add submission failed")
		return
	}

	if q.list != nil {
		if err := q.list.Refresh(ctx); err != nil {
			q.logger.Error().Err(err).Msg("post-submit refresh failed")
		}
	}
}
