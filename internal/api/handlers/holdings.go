package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dividenddash/backend/internal/api/request"
	"github.com/dividenddash/backend/internal/api/response"
	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/service"
	"github.com/dividenddash/backend/internal/validation"
)

// HoldingsHandler handles HTTP requests for positions and purchases.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the holdingsService.
type HoldingsHandler struct {
	holdingsService *service.HoldingsService
}

// NewHoldingsHandler creates a new HoldingsHandler with the provided service dependency.
func NewHoldingsHandler(holdingsService *service.HoldingsService) *HoldingsHandler {
	return &HoldingsHandler{
		holdingsService: holdingsService,
	}
}

// GetPositions handles GET requests to retrieve all positions.
//
// Endpoint: GET /api/holding
// Response: 200 OK with array of Position
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingsHandler) GetPositions(w http.ResponseWriter, _ *http.Request) {
	positions, err := h.holdingsService.Positions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve positions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// AddPurchase handles POST requests to record a purchase.
// Repeat purchases of a symbol merge into its position using the
// weighted-average cost method.
//
// Endpoint: POST /api/holding
// Request Body: AddHoldingRequest (symbol, shares, pricePerShare, date, and optionally name, sector)
// Response: 201 Created with the merged Position
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if recording fails
func (h *HoldingsHandler) AddPurchase(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	position, err := h.holdingsService.AddPurchase(r.Context(), req)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record purchase", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// RemovePosition handles DELETE requests to remove a single position.
// The symbol's transaction history is kept.
//
// Endpoint: DELETE /api/holding/{symbol}
// Response: 204 No Content
// Error: 404 Not Found if the position does not exist
func (h *HoldingsHandler) RemovePosition(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	if err := h.holdingsService.RemovePosition(symbol); err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), symbol)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to remove position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ClearPositions handles DELETE requests to remove all positions.
// With ?includeTransactions=true the purchase history is removed as well.
//
// Endpoint: DELETE /api/holding
// Response: 204 No Content
// Error: 500 Internal Server Error if removal fails
func (h *HoldingsHandler) ClearPositions(w http.ResponseWriter, r *http.Request) {
	clearFn := h.holdingsService.ClearPositions
	if r.URL.Query().Get("includeTransactions") == "true" {
		clearFn = h.holdingsService.ClearAll
	}

	if err := clearFn(); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to clear positions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// GetTransactions handles GET requests to retrieve the purchase history,
// newest first.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingsHandler) GetTransactions(w http.ResponseWriter, _ *http.Request) {
	transactions, err := h.holdingsService.Transactions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}
