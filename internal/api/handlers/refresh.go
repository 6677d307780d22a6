package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dividenddash/backend/internal/api/request"
	"github.com/dividenddash/backend/internal/api/response"
	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/service"
)

// RefreshHandler handles HTTP requests for market data refreshes and the
// provider API key.
type RefreshHandler struct {
	refreshService *service.RefreshService
}

// NewRefreshHandler creates a new RefreshHandler with the provided service dependency.
func NewRefreshHandler(refreshService *service.RefreshService) *RefreshHandler {
	return &RefreshHandler{
		refreshService: refreshService,
	}
}

// Status handles GET requests to report the refresh gate state.
//
// Endpoint: GET /api/refresh/status
// Response: 200 OK with RefreshStatus
// Error: 500 Internal Server Error if the gate state cannot be read
func (h *RefreshHandler) Status(w http.ResponseWriter, _ *http.Request) {
	status, err := h.refreshService.Status()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read refresh status", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}

// Refresh handles POST requests to run a gated catalog refresh.
//
// Endpoint: POST /api/refresh
// Response: 200 OK with RefreshResult (per-symbol outcomes)
// Error: 409 Conflict with a Retry-After header while the cooldown is active
// Error: 412 Precondition Failed if no API key is configured
// Error: 502 Bad Gateway if every symbol failed upstream
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.refreshService.Refresh(r.Context())
	if err != nil {
		var cooldown *apperrors.CooldownError
		switch {
		case errors.As(err, &cooldown):
			w.Header().Set("Retry-After", strconv.FormatInt(int64(cooldown.Remaining/time.Second)+1, 10))
			response.RespondError(w, http.StatusConflict, "refresh is cooling down", err.Error())
		case errors.Is(err, apperrors.ErrAPIKeyNotConfigured):
			response.RespondError(w, http.StatusPreconditionFailed, apperrors.ErrAPIKeyNotConfigured.Error(), "")
		case errors.Is(err, apperrors.ErrUpstreamFetch):
			response.RespondError(w, http.StatusBadGateway, "market data provider unavailable", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "refresh failed", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// SetAPIKey handles PUT requests to store the market data provider API key.
// The key is encrypted before it is persisted.
//
// Endpoint: PUT /api/settings/apikey
// Request Body: SetAPIKeyRequest (apiKey)
// Response: 204 No Content
// Error: 400 Bad Request if the body is invalid or the key is empty
func (h *RefreshHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetAPIKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.refreshService.SetAPIKey(req.APIKey); err != nil {
		if errors.Is(err, apperrors.ErrAPIKeyNotConfigured) {
			response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store api key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
