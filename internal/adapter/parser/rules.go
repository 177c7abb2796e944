package parser

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/ish/pocketledger/internal/domain"
	"github.com/ish/pocketledger/internal/usecase"
)

// RulesParser extracts a transaction draft from free text with regex
// heuristics. It serves as the offline fallback behind GeminiParser.
type RulesParser struct{}

// NewRulesParser creates a new RulesParser.
func NewRulesParser() *RulesParser { return &RulesParser{} }

var (
	amountRe = regexp.MustCompile(`(?:[$€£฿]\s*)?([0-9]+(?:[.,][0-9]{1,2})?)`)
	dateRes  = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`), // YYYY-MM-DD
		regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4})\b`), // DD/MM/YYYY
	}
	incomeWords = []string{"salary", "paycheck", "refund", "received", "income", "payout", "reimbursed", "bonus"}

	categoryWords = map[string][]string{
		"Food & Drink":  {"coffee", "lunch", "dinner", "breakfast", "restaurant", "cafe", "pizza", "beer"},
		"Groceries":     {"groceries", "grocery", "supermarket", "market"},
		"Transport":     {"uber", "taxi", "bus", "train", "metro", "fuel", "gas", "parking"},
		"Entertainment": {"movie", "cinema", "concert", "netflix", "spotify", "game"},
		"Shopping":      {"amazon", "clothes", "shoes", "shopping"},
		"Bills":         {"rent", "electricity", "water bill", "internet", "phone bill", "insurance"},
		"Health":        {"pharmacy", "doctor", "dentist", "gym"},
	}
)

// Parse derives title, amount, type, category and date from the text.
func (p *RulesParser) Parse(_ context.Context, text, _ string) (*usecase.ParsedTransaction, error) {
	text = normalize(text)

	parsed := &usecase.ParsedTransaction{
		Title:  guessTitle(text),
		Amount: guessAmount(text),
		Type:   guessType(text),
	}

	if cat := guessCategory(text); cat != "" {
		parsed.Category = &cat
	}
	if when, ok := guessDate(text); ok {
		parsed.OccurredAt = &when
	}

	return parsed, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

func guessTitle(text string) string {
	// Drop the amount token and any leftover currency symbol, keep the rest.
	title := amountRe.ReplaceAllString(text, "")
	for _, re := range dateRes {
		title = re.ReplaceAllString(title, "")
	}
	title = strings.Trim(normalize(title), " -,.")
	if title == "" {
		return "Unknown"
	}
	return truncate(strings.ToUpper(title[:1])+title[1:], 64)
}

func guessAmount(text string) string {
	if m := amountRe.FindStringSubmatch(text); len(m) >= 2 {
		return strings.ReplaceAll(m[1], ",", ".")
	}
	return "0"
}

func guessType(text string) domain.TransactionType {
	lower := strings.ToLower(text)
	for _, w := range incomeWords {
		if strings.Contains(lower, w) {
			return domain.TypeIncome
		}
	}
	return domain.TypeExpense
}

func guessCategory(text string) string {
	lower := strings.ToLower(text)
	for cat, words := range categoryWords {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return cat
			}
		}
	}
	return ""
}

func guessDate(text string) (time.Time, bool) {
	for i, re := range dateRes {
		m := re.FindStringSubmatch(text)
		if len(m) != 4 {
			continue
		}
		var layoutParts string
		if i == 0 {
			layoutParts = m[1] + "-" + m[2] + "-" + m[3]
		} else {
			layoutParts = m[3] + "-" + m[2] + "-" + m[1]
		}
		when, err := time.ParseInLocation("2006-01-02", layoutParts, time.UTC)
		if err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
