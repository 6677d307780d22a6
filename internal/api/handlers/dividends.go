package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dividenddash/backend/internal/api/response"
	"github.com/dividenddash/backend/internal/service"
)

// DividendHandler handles HTTP requests for dividend projections.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the dividendService.
type DividendHandler struct {
	dividendService *service.DividendService
}

// NewDividendHandler creates a new DividendHandler with the provided service dependency.
func NewDividendHandler(dividendService *service.DividendService) *DividendHandler {
	return &DividendHandler{
		dividendService: dividendService,
	}
}

// Upcoming handles GET requests to retrieve projected dividend events,
// sorted by ex-date ascending.
//
// Endpoint: GET /api/dividend/upcoming?days=90&period=week|month|quarter
// Response: 200 OK with array of DividendEvent
// Error: 400 Bad Request if days is not a number
// Error: 500 Internal Server Error if projection fails
func (h *DividendHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid days parameter", raw)
			return
		}
		days = parsed
	}
	period := r.URL.Query().Get("period")

	events, err := h.dividendService.Upcoming(days, period)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to project dividends", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, events)
}

// Summary handles GET requests to retrieve headline dividend statistics
// over the default projection horizon.
//
// Endpoint: GET /api/dividend/summary
// Response: 200 OK with DividendSummary
// Error: 500 Internal Server Error if projection fails
func (h *DividendHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.dividendService.Summary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to summarize dividends", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Calendar handles GET requests to retrieve dividend events for one month,
// keyed by day of month. Year and month default to the current month.
//
// Endpoint: GET /api/dividend/calendar?year=2024&month=6
// Response: 200 OK with map of day to CalendarDay
// Error: 400 Bad Request if year or month is invalid
// Error: 500 Internal Server Error if projection fails
func (h *DividendHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid year parameter", raw)
			return
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			response.RespondError(w, http.StatusBadRequest, "invalid month parameter", raw)
			return
		}
		month = parsed
	}

	days, err := h.dividendService.Calendar(year, month)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build dividend calendar", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, days)
}
