package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/ish/pocketledger/internal/domain"
	"github.com/ish/pocketledger/internal/usecase"
)

// DefaultModelName is the Gemini model used for quick-add parsing.
const DefaultModelName = "gemini-2.5-flash"

// GeminiParser turns one line of free text into a transaction draft using
// Gemini. On any model failure it falls back to the rules parser so quick-add
// keeps working without an API key or network access to the model.
type GeminiParser struct {
	apiKey   string
	model    string
	fallback usecase.Parser
	logger   zerolog.Logger
}

// NewGeminiParser creates a new GeminiParser.
func NewGeminiParser(apiKey, model string, fallback usecase.Parser, logger zerolog.Logger) *GeminiParser {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiParser{
		apiKey:   apiKey,
		model:    model,
		fallback: fallback,
		logger:   logger,
	}
}

// modelDraft is the JSON shape the prompt asks the model to emit.
type modelDraft struct {
	Title      string  `json:"title"`
	Amount     string  `json:"amount"`
	Type       string  `json:"type"`
	Category   *string `json:"category"`
	Note       *string `json:"note"`
	OccurredAt *string `json:"occurredAt"`
}

// Parse sends the text to Gemini and maps the strict-JSON reply to a draft.
func (p *GeminiParser) Parse(ctx context.Context, text, currency string) (*usecase.ParsedTransaction, error) {
	if p.apiKey == "" {
		return p.fallback.Parse(ctx, text, currency)
	}

	draft, err := p.parseWithModel(ctx, text, currency)
	if err != nil {
		p.logger.Warn().Err(err).Msg("gemini parse failed, using rules fallback")
		return p.fallback.Parse(ctx, text, currency)
	}

	return draft, nil
}

func (p *GeminiParser) parseWithModel(ctx context.Context, text, currency string) (*usecase.ParsedTransaction, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      p.apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(text, currency)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var draft modelDraft
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &draft); err != nil {
		return nil, fmt.Errorf("unmarshal model JSON: %w\nraw response: %s", err, rawText)
	}

	return draftToParsed(draft)
}

func buildPrompt(text, currency string) string {
	var b strings.Builder
	b.WriteString("You are a personal-finance entry parser.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Parse the single free-text line below into one transaction.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no extra text).\n")
	b.WriteString("- Output a single JSON object.\n\n")
	b.WriteString("The object must have these fields:\n")
	b.WriteString("- \"title\": string, short human-readable label\n")
	b.WriteString("- \"amount\": string, decimal number, always a positive magnitude\n")
	b.WriteString("- \"type\": \"income\" or \"expense\"\n")
	b.WriteString("- \"category\": string or null\n")
	b.WriteString("- \"note\": string or null\n")
	b.WriteString("- \"occurredAt\": string ISO timestamp or null when not mentioned\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Money received (salary, refund, payment to the user) is \"income\"; everything else is \"expense\".\n")
	b.WriteString(fmt.Sprintf("- The user's currency is %s; ignore currency symbols in the text.\n", currency))
	b.WriteString("- If no amount is present, use \"0\".\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n\n")
	b.WriteString("Text:\n")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}

func draftToParsed(draft modelDraft) (*usecase.ParsedTransaction, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, fmt.Errorf("model returned no title")
	}

	parsed := &usecase.ParsedTransaction{
		Title:    strings.TrimSpace(draft.Title),
		Amount:   strings.TrimSpace(draft.Amount),
		Type:     domain.TransactionType(draft.Type),
		Category: draft.Category,
		Note:     draft.Note,
	}

	if draft.OccurredAt != nil && *draft.OccurredAt != "" {
		when, err := time.Parse(time.RFC3339, *draft.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("model returned bad timestamp %q: %w", *draft.OccurredAt, err)
		}
		parsed.OccurredAt = &when
	}

	return parsed, nil
}

// cleanModelJSON strips Markdown fences when the model ignores instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
