package handlers

import (
	"net/http"

	"github.com/dividenddash/backend/internal/api/response"
	"github.com/dividenddash/backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the portfolio valuation.
type PortfolioHandler struct {
	valuationService *service.ValuationService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(valuationService *service.ValuationService) *PortfolioHandler {
	return &PortfolioHandler{
		valuationService: valuationService,
	}
}

// Summary handles GET requests to retrieve the valued portfolio: every
// position enriched with current prices and income projections, plus totals.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if valuation fails
func (h *PortfolioHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.valuationService.Summary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to value portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
