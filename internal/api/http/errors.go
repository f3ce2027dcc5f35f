package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
)

const problemContentType = "application/problem+json"

// problemDetails is the RFC 7807 body returned for every failed request.
type problemDetails struct {
	Status   int    `json:"status"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// statusFor maps an error kind to its HTTP status and title.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Resource not found."
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest, "Bad request."
	default:
		return http.StatusInternalServerError, "An unexpected error occurred."
	}
}

// writeError renders err as problem+json. Infrastructure errors are logged
// and their text is not sent to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, title := statusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Unhandled error", "path", r.URL.Path, "requestID", RequestIDFromContext(r.Context()), "error", err)
		detail = ""
	}
	writeProblem(w, r, status, title, detail)
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problemDetails{
		Status:   status,
		Title:    title,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
