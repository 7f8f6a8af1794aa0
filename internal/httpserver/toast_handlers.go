package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpx"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/toast"
)

const sseKeepAlive = 25 * time.Second

type toastsResponse struct {
	Toasts []toast.Toast `json:"toasts"`
}

func (a *app) toastList(w http.ResponseWriter, r *http.Request) {
	out := toastsResponse{Toasts: []toast.Toast{}}
	if q := a.clientQueue(r); q != nil {
		out.Toasts = append(out.Toasts, q.Toasts()...)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// toastDelete dismisses a toast. Unknown ids are ignored.
func (a *app) toastDelete(w http.ResponseWriter, r *http.Request) {
	if q := a.clientQueue(r); q != nil {
		q.Remove(chi.URLParam(r, "id"))
	}
	w.WriteHeader(http.StatusNoContent)
}

// toastStream pushes the full queue as a server-sent event after every change.
func (a *app) toastStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flusher, ok := w.(http.Flusher)
	q := a.clientQueue(r)
	if !ok || q == nil {
		httpx.WriteError(ctx, w, httpx.NewError("streaming unsupported", http.StatusInternalServerError))
		return
	}

	updates := make(chan []toast.Toast, 8)
	unsubscribe := q.Subscribe(func(ts []toast.Toast) {
		select {
		case updates <- ts:
		default:
			// drop; the next change carries the full queue again
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeToastEvent(w, q.Toasts()); err != nil {
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(sseKeepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ts := <-updates:
			if err := writeToastEvent(w, ts); err != nil {
				observability.FromContext(ctx).Debug("toast stream closed", zap.Error(err))
				return
			}
			flusher.Flush()
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeToastEvent(w http.ResponseWriter, ts []toast.Toast) error {
	if ts == nil {
		ts = []toast.Toast{}
	}
	raw, err := json.Marshal(toastsResponse{Toasts: ts})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: toasts\ndata: %s\n\n", raw)
	return err
}
