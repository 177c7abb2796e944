// Package client provides an HTTP client for the pocketledger API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// Client talks to a pocketledger server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cookieName string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithSession attaches a session cookie to every request.
func WithSession(cookieName, token string) Option {
	return func(c *Client) {
		c.cookieName = cookieName
		c.token = token
	}
}

// New creates a new Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cookieName: "session",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Reason)
}

// ListByDay fetches the transactions for one local calendar day.
// date is formatted YYYY-MM-DD; tzOffset is UTC minus local time in minutes.
func (c *Client) ListByDay(ctx context.Context, date string, tzOffset int) ([]*dto.TransactionResponse, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("tzOffset", strconv.Itoa(tzOffset))

	var resp dto.ListTransactionsResponse
	if err := c.do(ctx, http.MethodGet, "/transactions?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	return resp.Transactions, nil
}

// QuickAdd submits one line of free text for parsing.
func (c *Client) QuickAdd(ctx context.Context, text, currency string) (*dto.TransactionResponse, error) {
	req := dto.QuickAddRequest{Text: text, Currency: currency}

	var resp dto.TransactionResponse
	if err := c.do(ctx, http.MethodPost, "/ai", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Update replaces every editable field of a transaction.
func (c *Client) Update(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	var resp dto.TransactionResponse
	if err := c.do(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Delete removes a transaction.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Reason: resp.Status}

		var errResp dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			apiErr.Reason = errResp.Error
			apiErr.Message = errResp.Message
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
