package contact

import (
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpx"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
)

// DefaultBodyLimit caps the request body.
const DefaultBodyLimit = 64 << 10

const missingFieldsMessage = "Missing required fields"

type successBody struct {
	Success bool `json:"success"`
}

// Handler serves POST /api/contact.
type Handler struct {
	svc       *Service
	limiter   RateLimiter
	bodyLimit int64
}

// NewHandler wires svc behind limiter. A nil limiter allows everything.
func NewHandler(svc *Service, limiter RateLimiter, bodyLimit int64) *Handler {
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}
	return &Handler{svc: svc, limiter: limiter, bodyLimit: bodyLimit}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	if h.limiter != nil && !h.limiter.Allow(clientKey(r)) {
		logger.Warn("contact submission rate limited")
		httpx.WriteError(ctx, w, httpx.ErrTooManyRequests)
		return
	}

	sub, err := Decode(r.Body, h.bodyLimit)
	if err != nil {
		logger.Warn("contact submission rejected", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.ErrInternal)
		return
	}

	receipt, err := h.svc.Submit(ctx, sub)
	switch {
	case errors.Is(err, ErrMissingFields):
		logger.Info("contact submission incomplete", zap.Strings("missing", sub.Missing()))
		httpx.WriteError(ctx, w, httpx.NewError(missingFieldsMessage, http.StatusBadRequest))
		return
	case err != nil:
		logger.Error("contact submission failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.ErrInternal)
		return
	}

	logger.Info("contact submission accepted", zap.String("submission_id", receipt.ID))
	httpx.WriteJSON(w, http.StatusOK, successBody{Success: true})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
