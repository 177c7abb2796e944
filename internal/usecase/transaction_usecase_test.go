package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ish/pocketledger/internal/domain"
	"github.com/ish/pocketledger/internal/usecase"
	"github.com/ish/pocketledger/internal/usecase/mocks"
)

func str(s string) *string { return &s }

func TestTransactionUseCase_ListByDay_Window(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		tzOffset int
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "UTC client",
			date:     "2024-03-15",
			tzOffset: 0,
			wantFrom: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "UTC+2 client reports offset -120",
			date:     "2024-03-15",
			tzOffset: -120,
			wantFrom: time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC),
		},
		{
			name:     "UTC-5 client reports offset 300",
			date:     "2024-03-15",
			tzOffset: 300,
			wantFrom: time.Date(2024, 3, 15, 5, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 3, 16, 5, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockTransactionRepository()
			var gotFrom, gotTo time.Time
			repo.ListByWindowFunc = func(ctx context.Context, userID string, from, to time.Time) ([]*domain.Transaction, error) {
				gotFrom, gotTo = from, to
				return nil, nil
			}

			uc := usecase.NewTransactionUseCase(repo, nil, nil)
			_, err := uc.ListByDay(context.Background(), usecase.ListByDayInput{
				UserID:          "user-1",
				Date:            tt.date,
				TZOffsetMinutes: tt.tzOffset,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !gotFrom.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", gotFrom, tt.wantFrom)
			}
			if !gotTo.Equal(tt.wantTo) {
				t.Errorf("to = %v, want %v", gotTo, tt.wantTo)
			}
		})
	}
}

func TestTransactionUseCase_ListByDay_InvalidDate(t *testing.T) {
	uc := usecase.NewTransactionUseCase(mocks.NewMockTransactionRepository(), nil, nil)

	_, err := uc.ListByDay(context.Background(), usecase.ListByDayInput{
		UserID: "user-1",
		Date:   "15/03/2024",
	})
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestTransactionUseCase_ListByDay_CacheRoundTrip(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	calls := 0
	repo.ListByWindowFunc = func(ctx context.Context, userID string, from, to time.Time) ([]*domain.Transaction, error) {
		calls++
		return []*domain.Transaction{
			{ID: "tx-1", UserID: userID, Title: "Coffee", Amount: decimal.RequireFromString("4.50"), Currency: "USD", Type: domain.TypeExpense},
		}, nil
	}

	cache := mocks.NewMockCache()
	uc := usecase.NewTransactionUseCase(repo, cache, nil)
	input := usecase.ListByDayInput{UserID: "user-1", Date: "2024-03-15", TZOffsetMinutes: -120}

	first, err := uc.ListByDay(context.Background(), input)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := uc.ListByDay(context.Background(), input)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if calls != 1 {
		t.Errorf("repository hit %d times, want 1 (second call served from cache)", calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != "tx-1" {
		t.Fatalf("unexpected results: first=%v second=%v", first, second)
	}
	if !second[0].Amount.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("cached amount = %s, want 4.50", second[0].Amount)
	}
}

func TestTransactionUseCase_Update(t *testing.T) {
	existing := func() *domain.Transaction {
		return &domain.Transaction{
			ID:         "tx-1",
			UserID:     "user-1",
			Title:      "Lunch",
			Amount:     decimal.RequireFromString("12.00"),
			Currency:   "USD",
			Type:       domain.TypeExpense,
			OccurredAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		}
	}

	tests := []struct {
		name        string
		id          string
		input       usecase.UpdateTransactionInput
		setup       func(*mocks.MockTransactionRepository)
		expectError error
		check       func(*testing.T, *domain.Transaction)
	}{
		{
			name: "blank optionals normalized to nil",
			id:   "tx-1",
			input: usecase.UpdateTransactionInput{
				Title:    "Lunch",
				Amount:   decimal.RequireFromString("12.00"),
				Currency: "USD",
				Type:     domain.TypeExpense,
				Category: str("   "),
				Note:     str(""),
			},
			check: func(t *testing.T, tx *domain.Transaction) {
				if tx.Category != nil || tx.Note != nil {
					t.Errorf("expected nil category and note, got %v %v", tx.Category, tx.Note)
				}
			},
		},
		{
			name: "empty currency falls back to USD",
			id:   "tx-1",
			input: usecase.UpdateTransactionInput{
				Title:  "Lunch",
				Amount: decimal.NewFromInt(12),
				Type:   domain.TypeIncome,
			},
			check: func(t *testing.T, tx *domain.Transaction) {
				if tx.Currency != "USD" {
					t.Errorf("currency = %q, want USD", tx.Currency)
				}
				if tx.Type != domain.TypeIncome {
					t.Errorf("type = %q, want income", tx.Type)
				}
			},
		},
		{
			name: "invalid type rejected",
			id:   "tx-1",
			input: usecase.UpdateTransactionInput{
				Title:  "Lunch",
				Amount: decimal.NewFromInt(12),
				Type:   "loan",
			},
			expectError: domain.ErrInvalidType,
		},
		{
			name: "unknown id",
			id:   "missing",
			input: usecase.UpdateTransactionInput{
				Title:  "Lunch",
				Amount: decimal.NewFromInt(12),
				Type:   domain.TypeExpense,
			},
			expectError: domain.ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockTransactionRepository()
			if tt.setup != nil {
				tt.setup(repo)
			}
			_ = repo.Create(context.Background(), existing())

			uc := usecase.NewTransactionUseCase(repo, nil, nil)
			got, err := uc.Update(context.Background(), tt.id, tt.input)

			if tt.expectError != nil {
				if err != tt.expectError {
					t.Fatalf("error = %v, want %v", err, tt.expectError)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestTransactionUseCase_Delete(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	_ = repo.Create(context.Background(), &domain.Transaction{
		ID: "tx-1", UserID: "user-1", Title: "Coffee",
		Amount: decimal.NewFromInt(4), Type: domain.TypeExpense,
	})

	cache := mocks.NewMockCache()
	uc := usecase.NewTransactionUseCase(repo, cache, nil)

	if err := uc.Delete(context.Background(), "tx-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "tx-1"); err != domain.ErrTransactionNotFound {
		t.Errorf("expected row removed, got %v", err)
	}

	if err := uc.Delete(context.Background(), "tx-1"); err != domain.ErrTransactionNotFound {
		t.Errorf("second delete = %v, want ErrTransactionNotFound", err)
	}
}

func TestTransactionUseCase_MutationInvalidatesCache(t *testing.T) {
	repo := mocks.NewMockTransactionRepository()
	calls := 0
	repo.ListByWindowFunc = func(ctx context.Context, userID string, from, to time.Time) ([]*domain.Transaction, error) {
		calls++
		return nil, nil
	}
	_ = repo.Create(context.Background(), &domain.Transaction{
		ID: "tx-1", UserID: "user-1", Title: "Coffee",
		Amount: decimal.NewFromInt(4), Type: domain.TypeExpense,
	})

	cache := mocks.NewMockCache()
	uc := usecase.NewTransactionUseCase(repo, cache, nil)
	input := usecase.ListByDayInput{UserID: "user-1", Date: "2024-03-15"}

	if _, err := uc.ListByDay(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	if err := uc.Delete(context.Background(), "tx-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.ListByDay(context.Background(), input); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("repository hit %d times, want 2 (delete must invalidate cached day list)", calls)
	}
}
