package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tickethub/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP status codes. Storage failures
// are logged but never leaked to the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrTicketNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrDuplicateItem),
		errors.Is(err, models.ErrDuplicateEntry),
		errors.Is(err, models.ErrDuplicateCode),
		errors.Is(err, models.ErrInsufficientInventory):
		respondJSON(w, http.StatusConflict, errorResponse{Error: rootError(err).Error()})

	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidInput):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrAuthFailure):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: models.ErrAuthFailure.Error()})

	case errors.Is(err, models.ErrUnauthorized):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: models.ErrUnauthorized.Error()})

	case errors.Is(err, models.ErrCodeGenerationExhausted):
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: models.ErrCodeGenerationExhausted.Error()})

	default:
		log.Printf("internal error: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// rootError unwraps to the sentinel so wrapped storage context stays out of
// client responses
func rootError(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.ErrInvalidInput
	}
	return nil
}
