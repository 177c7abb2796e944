package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
	"github.com/ish/pocketledger/internal/adapter/http/middleware"
	"github.com/ish/pocketledger/internal/domain"
	"github.com/ish/pocketledger/internal/usecase"
)

// QuickAddService defines the behavior needed by QuickAddHandler.
type QuickAddService interface {
	QuickAdd(ctx context.Context, input usecase.QuickAddInput) (*domain.Transaction, error)
}

// QuickAddHandler handles the free-text AI parsing endpoint.
type QuickAddHandler struct {
	quickAddUC QuickAddService
}

// NewQuickAddHandler creates a new QuickAddHandler.
func NewQuickAddHandler(quickAddUC QuickAddService) *QuickAddHandler {
	return &QuickAddHandler{quickAddUC: quickAddUC}
}

// Create parses the submitted text and creates the resulting transaction.
func (h *QuickAddHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.QuickAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.quickAddUC.QuickAdd(r.Context(), usecase.QuickAddInput{
		UserID:   middleware.UserID(r.Context()),
		Text:     req.Text,
		Currency: req.Currency,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to process entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}
