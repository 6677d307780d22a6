package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dividenddash/backend/internal/api/response"
	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/service"
)

// FundHandler handles HTTP requests for the fund catalog.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// GetFunds handles GET requests to retrieve the fund catalog.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) GetFunds(w http.ResponseWriter, _ *http.Request) {
	funds, err := h.fundService.GetFunds()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve funds", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// GetFund handles GET requests to retrieve a single fund by symbol.
//
// Endpoint: GET /api/fund/{symbol}
// Response: 200 OK with Fund
// Error: 404 Not Found if the symbol is not in the catalog
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	fund, err := h.fundService.GetFund(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrFundNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFundNotFound.Error(), symbol)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve fund", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}
