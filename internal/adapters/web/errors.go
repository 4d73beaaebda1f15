package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"erp-dashboard/internal/app"
	"erp-dashboard/internal/core"
)

type errorResponse struct {
	Error     string           `json:"error"`
	Code      string           `json:"code"`
	RequestID string           `json:"request_id,omitempty"`
	Fields    core.FieldErrors `json:"fields,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	writeErrorResponse(w, status, errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps an application error to its HTTP response.
// Validation failures are 422 with the field map so the client keeps the
// form open.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := core.AsValidationError(err); ok {
		writeErrorResponse(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     "validation failed",
			Code:      "VALIDATION_FAILED",
			RequestID: requestIDFromContext(r.Context()),
			Fields:    fields,
		})
		return
	}
	switch {
	case errors.Is(err, core.ErrRecordNotFound):
		writeError(w, r, "record not found", "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, app.ErrUnknownCollection):
		writeError(w, r, "unknown collection", "UNKNOWN_COLLECTION", http.StatusNotFound)
	case errors.Is(err, core.ErrInvalidCredentials):
		writeError(w, r, "invalid email or password", "UNAUTHORIZED", http.StatusUnauthorized)
	case errors.Is(err, app.ErrSessionNotFound):
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
	default:
		h.logger.WithError(err).WithField("request_id", requestIDFromContext(r.Context())).Error("request failed")
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
