package view

import (
	"context"
	"errors"
	"sync"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// fakeAPI scripts server behavior for view-model tests.
type fakeAPI struct {
	mu sync.Mutex

	listFn     func(ctx context.Context, date string, tzOffset int) ([]*dto.TransactionResponse, error)
	quickAddFn func(ctx context.Context, text, currency string) (*dto.TransactionResponse, error)
	updateFn   func(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	deleteFn   func(ctx context.Context, id string) error

	listCalls     int
	quickAddCalls int
	updateCalls   int
	deleteCalls   int
}

func (f *fakeAPI) ListByDay(ctx context.Context, date string, tzOffset int) ([]*dto.TransactionResponse, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()

	if fn == nil {
		return nil, errors.New("not scripted")
	}
	return fn(ctx, date, tzOffset)
}

func (f *fakeAPI) QuickAdd(ctx context.Context, text, currency string) (*dto.TransactionResponse, error) {
	f.mu.Lock()
	f.quickAddCalls++
	fn := f.quickAddFn
	f.mu.Unlock()

	if fn == nil {
		return nil, errors.New("not scripted")
	}
	return fn(ctx, text, currency)
}

func (f *fakeAPI) Update(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	f.mu.Lock()
	f.updateCalls++
	fn := f.updateFn
	f.mu.Unlock()

	if fn == nil {
		return nil, errors.New("not scripted")
	}
	return fn(ctx, id, req)
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	f.deleteCalls++
	fn := f.deleteFn
	f.mu.Unlock()

	if fn == nil {
		return errors.New("not scripted")
	}
	return fn(ctx, id)
}

func (f *fakeAPI) calls() (list, quickAdd, update, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.quickAddCalls, f.updateCalls, f.deleteCalls
}

type fixedSettings struct {
	currency string
}

func (s fixedSettings) Currency() string {
	if s.currency == "" {
		return "USD"
	}
	return s.currency
}

func tx(id, title, amount, txType string) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:       id,
		Title:    title,
		Amount:   amount,
		Currency: "USD",
		Type:     txType,
	}
}
