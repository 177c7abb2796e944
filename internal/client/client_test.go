package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

func TestClient_ListByDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/transactions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2024-03-15" {
			t.Fatalf("expected date query, got %q", got)
		}
		if got := r.URL.Query().Get("tzOffset"); got != "-120" {
			t.Fatalf("expected tzOffset query, got %q", got)
		}

		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "tok-1" {
			t.Fatalf("expected session cookie, got %v (%v)", cookie, err)
		}

		json.NewEncoder(w).Encode(dto.ListTransactionsResponse{
			Transactions: []*dto.TransactionResponse{
				{ID: "tx-1", Title: "Coffee", Amount: "4.50"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithSession("session", "tok-1"))

	txs, err := c.ListByDay(context.Background(), "2024-03-15", -120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != "tx-1" {
		t.Fatalf("unexpected transactions: %+v", txs)
	}
}

func TestClient_QuickAdd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ai" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req dto.QuickAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Text != "coffee 4.50" || req.Currency != "EUR" {
			t.Fatalf("unexpected request body: %+v", req)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto.TransactionResponse{ID: "tx-1", Title: "Coffee", Amount: "4.50"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	tx, err := c.QuickAdd(context.Background(), "coffee 4.50", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID != "tx-1" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestClient_Update(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/transactions/tx-1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req dto.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Title != "Dinner" || req.Amount.String() != "42" {
			t.Fatalf("unexpected request body: %+v", req)
		}
		if req.Category != nil {
			t.Fatalf("expected null category, got %v", *req.Category)
		}

		json.NewEncoder(w).Encode(dto.TransactionResponse{ID: "tx-1", Title: "Dinner", Amount: "42.00"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	tx, err := c.Update(context.Background(), "tx-1", dto.UpdateTransactionRequest{
		Title:  "Dinner",
		Amount: json.Number("42"),
		Type:   "expense",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Title != "Dinner" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/transactions/tx-1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)

	if err := c.Delete(context.Background(), "tx-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "failed to delete transaction", Message: "transaction not found"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	err := c.Delete(context.Background(), "tx-404")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Reason != "failed to delete transaction" {
		t.Fatalf("unexpected reason: %s", apiErr.Reason)
	}
}
