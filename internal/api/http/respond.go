package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"siteledger-backend/internal/engine"
	"siteledger-backend/internal/logger"
	"siteledger-backend/internal/repository"
	"siteledger-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("encoding response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses. Validation failures
// are 400, missing records 404, and state conflicts (terminal orders,
// outstanding items, lost concurrent updates) 409.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrVersionConflict),
		errors.Is(err, engine.ErrOrderAlreadySettled),
		errors.Is(err, engine.ErrOutstandingItemsRemain),
		errors.Is(err, engine.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrNoSuchLine),
		errors.Is(err, engine.ErrInvalidQuantity),
		errors.Is(err, engine.ErrInvalidDate),
		errors.Is(err, engine.ErrInvalidCondition),
		errors.Is(err, engine.ErrMissingDamageReason),
		errors.Is(err, engine.ErrNonPositiveAdvanceAmount),
		errors.Is(err, service.ErrNoLines),
		errors.Is(err, service.ErrInvalidDiscount):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
