// Package httpx writes JSON responses and the site's error envelope.
package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Error is the JSON error returned by API endpoints. Only Message is
// serialised; the request id travels in the X-Request-ID header.
type Error struct {
	Message   string
	Status    int
	RequestID string
}

// NewError constructs an Error. A zero status becomes 500.
func NewError(message string, status int) Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Error{Message: sanitize(message, 512), Status: status}
}

func (e Error) Error() string { return e.Message }

// Common errors with fixed public messages.
var (
	ErrInternal        = NewError("Internal Server Error", http.StatusInternalServerError)
	ErrNotFound        = NewError("Not Found", http.StatusNotFound)
	ErrTooManyRequests = NewError("Too Many Requests", http.StatusTooManyRequests)
	ErrBadRequest      = NewError("Bad Request", http.StatusBadRequest)
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteError writes err as {"error": message}.
func WriteError(ctx context.Context, w http.ResponseWriter, err Error) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	requestID := err.RequestID
	if requestID == "" {
		requestID = sanitize(middleware.GetReqID(ctx), 80)
	}
	if requestID != "" {
		w.Header().Set("X-Request-ID", requestID)
	}
	WriteJSON(w, status, errorBody{Error: err.Message})
}

// WriteJSON encodes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WantsJSON reports whether the client prefers a JSON response.
func WantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func sanitize(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
