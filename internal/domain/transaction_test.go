package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/domain"
)

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr error
	}{
		{
			name: "valid expense",
			tx: domain.Transaction{
				Title:  "Coffee",
				Amount: decimal.RequireFromString("4.50"),
				Type:   domain.TypeExpense,
			},
			wantErr: nil,
		},
		{
			name: "valid income with zero amount",
			tx: domain.Transaction{
				Title:  "Refund",
				Amount: decimal.Zero,
				Type:   domain.TypeIncome,
			},
			wantErr: nil,
		},
		{
			name: "empty title",
			tx: domain.Transaction{
				Title:  "   ",
				Amount: decimal.NewFromInt(1),
				Type:   domain.TypeExpense,
			},
			wantErr: domain.ErrEmptyTitle,
		},
		{
			name: "unknown type",
			tx: domain.Transaction{
				Title:  "Coffee",
				Amount: decimal.NewFromInt(1),
				Type:   "transfer",
			},
			wantErr: domain.ErrInvalidType,
		},
		{
			name: "negative amount",
			tx: domain.Transaction{
				Title:  "Coffee",
				Amount: decimal.NewFromInt(-1),
				Type:   domain.TypeExpense,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "unknown currency",
			tx: domain.Transaction{
				Title:    "Coffee",
				Amount:   decimal.NewFromInt(1),
				Currency: "DOGE",
				Type:     domain.TypeExpense,
			},
			wantErr: domain.ErrInvalidCurrency,
		},
		{
			name: "title too long",
			tx: domain.Transaction{
				Title:  strings.Repeat("x", domain.MaxTitleLength+1),
				Amount: decimal.NewFromInt(1),
				Type:   domain.TypeExpense,
			},
			wantErr: domain.ErrTitleTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeOptional(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		in    *string
		want  *string
	}{
		{name: "nil stays nil", in: nil, want: nil},
		{name: "blank becomes nil", in: str(""), want: nil},
		{name: "whitespace becomes nil", in: str("  \t "), want: nil},
		{name: "value passes through", in: str("Groceries"), want: str("Groceries")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NormalizeOptional(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NormalizeOptional() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("NormalizeOptional() = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func TestTransactionTypeValid(t *testing.T) {
	if !domain.TypeIncome.Valid() || !domain.TypeExpense.Valid() {
		t.Error("expected income and expense to be valid")
	}
	if domain.TransactionType("").Valid() || domain.TransactionType("savings").Valid() {
		t.Error("expected unknown types to be invalid")
	}
}
