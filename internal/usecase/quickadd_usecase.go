package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/domain"
	"github.com/ish/pocketledger/internal/infrastructure/metrics"
)

// QuickAddUseCase turns one line of free text into a persisted transaction.
type QuickAddUseCase struct {
	txRepo  TransactionRepository
	parser  Parser
	idGen   IDGenerator
	cache   Cache
	metrics *metrics.Metrics
}

// NewQuickAddUseCase creates a new QuickAddUseCase.
func NewQuickAddUseCase(txRepo TransactionRepository, parser Parser, idGen IDGenerator, cache Cache, m *metrics.Metrics) *QuickAddUseCase {
	return &QuickAddUseCase{
		txRepo:  txRepo,
		parser:  parser,
		idGen:   idGen,
		cache:   cache,
		metrics: m,
	}
}

// QuickAddInput represents a quick-add submission.
type QuickAddInput struct {
	UserID   string
	Text     string
	Currency string
}

// QuickAdd parses the text and persists the resulting transaction.
func (uc *QuickAddUseCase) QuickAdd(ctx context.Context, input QuickAddInput) (*domain.Transaction, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	currency := input.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	parsed, err := uc.parser.Parse(ctx, text, currency)
	if err != nil {
		uc.countQuickAdd("parse_error")
		return nil, fmt.Errorf("parse text: %w", err)
	}

	amount, err := decimal.NewFromString(parsed.Amount)
	if err != nil {
		uc.countQuickAdd("rejected")
		return nil, domain.ErrParseRejected
	}

	txType := parsed.Type
	if !txType.Valid() {
		txType = domain.TypeExpense
	}

	now := time.Now().UTC()
	occurred := now
	if parsed.OccurredAt != nil {
		occurred = parsed.OccurredAt.UTC()
	}

	tx := &domain.Transaction{
		ID:         uc.idGen.Generate(),
		UserID:     input.UserID,
		Title:      parsed.Title,
		Amount:     amount.Abs(),
		Currency:   currency,
		Type:       txType,
		Category:   domain.NormalizeOptional(parsed.Category),
		Note:       domain.NormalizeOptional(parsed.Note),
		OccurredAt: occurred,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	bumpListVersion(ctx, uc.cache, input.UserID)

	uc.countQuickAdd("created")
	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
		amountFloat, _ := tx.Amount.Float64()
		uc.metrics.TransactionAmount.Observe(amountFloat)
	}

	return tx, nil
}

func (uc *QuickAddUseCase) countQuickAdd(outcome string) {
	if uc.metrics != nil {
		uc.metrics.QuickAddRequests.WithLabelValues(outcome).Inc()
	}
}
