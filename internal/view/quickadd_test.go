package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

func TestQuickAdd_BlankTextNoOp(t *testing.T) {
	api := &fakeAPI{}
	q := NewQuickAdd(api, fixedSettings{}, nil, zerolog.Nop())

	q.Submit(context.Background(), "")
	q.Submit(context.Background(), "   \t ")

	_, quickAdd, _, _ := api.calls()
	require.Zero(t, quickAdd)
}

func TestQuickAdd_SuccessClearsAndRefreshes(t *testing.T) {
	api := &fakeAPI{
		quickAddFn: func(ctx context.Context, text, currency string) (*dto.TransactionResponse, error) {
			require.Equal(t, "coffee 4.50", text)
			require.Equal(t, "EUR", currency)
			return tx("tx-1", "Coffee", "4.50", "expense"), nil
		},
		listFn: func(ctx context.Context, date string, tzOffset int) ([]*dto.TransactionResponse, error) {
			return []*dto.TransactionResponse{tx("tx-1", "Coffee", "4.50", "expense")}, nil
		},
	}
	list, _ := newTestController(api)
	q := NewQuickAdd(api, fixedSettings{currency: "EUR"}, list, zerolog.Nop())

	q.Submit(context.Background(), "coffee 4.50")

	require.Empty(t, q.Text())
	require.Empty(t, q.ErrorBanner())
	require.False(t, q.Submitting())

	listCalls, _, _, _ := api.calls()
	require.Equal(t, 1, listCalls)
	require.Len(t, list.Items(), 1)
}

func TestQuickAdd_FailureKeepsTextAndSetsBanner(t *testing.T) {
	api := &fakeAPI{
		quickAddFn: func(ctx context.Context, text, currency string) (*dto.TransactionResponse, error) {
			return nil, errors.New("model unavailable")
		},
	}
	q := NewQuickAdd(api, fixedSettings{}, nil, zerolog.Nop())

	q.Submit(context.Background(), "coffee 4.50")

	require.Equal(t, "coffee 4.50", q.Text())
	require.Equal(t, SubmitErrorBanner, q.ErrorBanner())

	listCalls, _, _, _ := api.calls()
	require.Zero(t, listCalls)
}

func TestQuickAdd_SingleSubmissionInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		quickAddFn: func(ctx context.Context, text, currency string) (*dto.TransactionResponse, error) {
			close(started)
			<-release
			return tx("tx-1", "Coffee", "4.50", "expense"), nil
		},
	}
	q := NewQuickAdd(api, fixedSettings{}, nil, zerolog.Nop())

	go q.Submit(context.Background(), "coffee 4.50")
	<-started

	require.True(t, q.Submitting())
	q.Submit(context.Background(), "second entry")
	close(release)

	require.Eventually(t, func() bool { return !q.Submitting() }, time.Second, time.Millisecond)

	_, quickAdd, _, _ := api.calls()
	require.Equal(t, 1, quickAdd)
}
