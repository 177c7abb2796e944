package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/domain"
	"github.com/ish/pocketledger/internal/infrastructure/metrics"
)

// TransactionUseCase handles transaction business logic.
type TransactionUseCase struct {
	txRepo  TransactionRepository
	cache   Cache
	metrics *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
// cache and metrics may be nil; without a cache, day lists are always read
// from the repository.
func NewTransactionUseCase(txRepo TransactionRepository, cache Cache, m *metrics.Metrics) *TransactionUseCase {
	return &TransactionUseCase{
		txRepo:  txRepo,
		cache:   cache,
		metrics: m,
	}
}

// ListByDayInput represents input for listing a user's transactions for one
// local calendar day.
type ListByDayInput struct {
	UserID string
	// Date is the local calendar day, formatted as YYYY-MM-DD.
	Date string
	// TZOffsetMinutes is the client's offset in the JS getTimezoneOffset
	// convention: UTC minus local time, in minutes.
	TZOffsetMinutes int
}

// ListByDay lists all transactions whose occurred-at falls inside the client's
// local calendar day.
func (uc *TransactionUseCase) ListByDay(ctx context.Context, input ListByDayInput) ([]*domain.Transaction, error) {
	day, err := time.ParseInLocation(DayDateLayout, input.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", input.Date, err)
	}

	// Local midnight in UTC terms: UTC = local + offset.
	from := day.Add(time.Duration(input.TZOffsetMinutes) * time.Minute)
	to := from.Add(24 * time.Hour)

	key := uc.listCacheKey(ctx, input)
	if key != "" {
		if raw, err := uc.cache.Get(ctx, key); err == nil && len(raw) > 0 {
			var cached []*domain.Transaction
			if err := json.Unmarshal(raw, &cached); err == nil {
				if uc.metrics != nil {
					uc.metrics.ListCacheHits.Inc()
				}
				return cached, nil
			}
		}
		if uc.metrics != nil {
			uc.metrics.ListCacheMisses.Inc()
		}
	}

	txs, err := uc.txRepo.ListByWindow(ctx, input.UserID, from, to)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if raw, err := json.Marshal(txs); err == nil {
			// Cache write failures are invisible; Postgres stays authoritative.
			_ = uc.cache.Set(ctx, key, raw, ListCacheTTL)
		}
	}

	return txs, nil
}

// Get retrieves a transaction by ID.
func (uc *TransactionUseCase) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

// UpdateTransactionInput represents a full-field update. Optional fields
// arrive already in wire shape: nil means absent.
type UpdateTransactionInput struct {
	Title      string
	Amount     decimal.Decimal
	Currency   string
	Type       domain.TransactionType
	Category   *string
	Note       *string
	OccurredAt *time.Time
}

// Update replaces every editable field of a transaction.
func (uc *TransactionUseCase) Update(ctx context.Context, id string, input UpdateTransactionInput) (*domain.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx.Title = input.Title
	tx.Amount = input.Amount
	tx.Currency = input.Currency
	if tx.Currency == "" {
		tx.Currency = domain.DefaultCurrency
	}
	tx.Type = input.Type
	tx.Category = domain.NormalizeOptional(input.Category)
	tx.Note = domain.NormalizeOptional(input.Note)
	if input.OccurredAt != nil {
		tx.OccurredAt = input.OccurredAt.UTC()
	}
	tx.UpdatedAt = time.Now().UTC()

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	bumpListVersion(ctx, uc.cache, tx.UserID)

	if uc.metrics != nil {
		uc.metrics.TransactionsUpdated.Inc()
	}

	return tx, nil
}

// Delete removes a transaction by ID.
func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.txRepo.Delete(ctx, id); err != nil {
		return err
	}

	bumpListVersion(ctx, uc.cache, tx.UserID)

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// listCacheKey builds a versioned cache key for a day list. It returns ""
// when no cache is configured or the version lookup fails, which disables
// caching for the call.
func (uc *TransactionUseCase) listCacheKey(ctx context.Context, input ListByDayInput) string {
	if uc.cache == nil {
		return ""
	}

	version := int64(0)
	if raw, err := uc.cache.Get(ctx, listVersionKey(input.UserID)); err == nil && len(raw) > 0 {
		if v, err := parseInt64(raw); err == nil {
			version = v
		}
	}

	return fmt.Sprintf("txlist:%s:%d:%s:%d", input.UserID, version, input.Date, input.TZOffsetMinutes)
}

// bumpListVersion invalidates every cached day list for a user by advancing
// the version embedded in their cache keys. Stale entries expire by TTL.
func bumpListVersion(ctx context.Context, cache Cache, userID string) {
	if cache == nil {
		return
	}
	_, _ = cache.Incr(ctx, listVersionKey(userID))
}

func listVersionKey(userID string) string {
	return "txlist:version:" + userID
}

func parseInt64(raw []byte) (int64, error) {
	var v int64
	_, err := fmt.Sscanf(string(raw), "%d", &v)
	return v, err
}
