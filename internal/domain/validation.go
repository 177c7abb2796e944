package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrTitleTooLong    = errors.New("title exceeds maximum length")
	ErrNoteTooLong     = errors.New("note exceeds maximum length")
	ErrCategoryTooLong = errors.New("category exceeds maximum length")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// Validation constants
const (
	MaxTitleLength    = 255
	MaxCategoryLength = 64
	MaxNoteLength     = 2048
	MaxAmount         = "1000000000000" // 1 trillion
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
	"THB": true, "PLN": true, "DKK": true, "CZK": true,
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, currency)
	}
	return nil
}

// ValidateTitle validates a transaction title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateAmount validates a transaction amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: %s", ErrAmountTooLarge, amount)
	}
	return nil
}

// ValidateOptional validates an optional attribute against a length limit.
func ValidateOptional(value *string, maxLength int, tooLong error) error {
	if value == nil {
		return nil
	}
	if len(*value) > maxLength {
		return fmt.Errorf("%w: %d > %d", tooLong, len(*value), maxLength)
	}
	return nil
}
