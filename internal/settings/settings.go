// Package settings stores local user preferences in a viper-backed file.
// Reads never fail: a missing or unreadable file simply means every value is
// absent and defaults apply.
package settings

import (
	"github.com/spf13/viper"
)

// Storage keys.
const (
	KeyCurrency     = "settings:currency"
	KeySessionToken = "settings:session_token"
	KeyServerURL    = "settings:server_url"
)

// DefaultServerURL is used when no server is configured.
const DefaultServerURL = "http://localhost:8080"

// Store reads and writes preferences.
type Store struct {
	v *viper.Viper
}

// New creates a Store backed by the file at path (created on first write).
// A read failure is treated as an empty store.
func New(path string) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Absent or corrupt settings are equivalent to no settings.
	_ = v.ReadInConfig()

	return &Store{v: v}
}

// Currency returns the preferred currency, defaulting to USD.
func (s *Store) Currency() string {
	if c := s.v.GetString(KeyCurrency); c != "" {
		return c
	}
	return "USD"
}

// SetCurrency persists the preferred currency.
func (s *Store) SetCurrency(currency string) error {
	s.v.Set(KeyCurrency, currency)
	return s.v.WriteConfig()
}

// SessionToken returns the stored session token, or "" when absent.
func (s *Store) SessionToken() string {
	return s.v.GetString(KeySessionToken)
}

// SetSessionToken persists the session token.
func (s *Store) SetSessionToken(token string) error {
	s.v.Set(KeySessionToken, token)
	return s.v.WriteConfig()
}

// ServerURL returns the configured server, defaulting to a local one.
func (s *Store) ServerURL() string {
	if u := s.v.GetString(KeyServerURL); u != "" {
		return u
	}
	return DefaultServerURL
}

// SetServerURL persists the server URL.
func (s *Store) SetServerURL(url string) error {
	s.v.Set(KeyServerURL, url)
	return s.v.WriteConfig()
}
