package view

import (
	"encoding/json"
	"errors"
	"net/url"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// ErrNotFound reports a missing or unreadable navigation payload. Screens
// render a "Transaction not found" state and make no network calls.
var ErrNotFound = errors.New("transaction not found")

// EncodeNavParam serializes a transaction into a single URL-safe navigation
// parameter.
func EncodeNavParam(tx *dto.TransactionResponse) string {
	raw, err := json.Marshal(tx)
	if err != nil {
		return ""
	}
	return url.QueryEscape(string(raw))
}

// DecodeNavParam is the inverse of EncodeNavParam. Any missing or malformed
// input yields ErrNotFound rather than a parse error: a bad deep link is a
// dead end, not a crash.
func DecodeNavParam(param string) (*dto.TransactionResponse, error) {
	if param == "" {
		return nil, ErrNotFound
	}

	raw, err := url.QueryUnescape(param)
	if err != nil {
		return nil, ErrNotFound
	}

	var tx dto.TransactionResponse
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		return nil, ErrNotFound
	}
	if tx.ID == "" {
		return nil, ErrNotFound
	}

	return &tx, nil
}
