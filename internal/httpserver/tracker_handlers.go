package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	mw "github.com/Hilal-Ahmad786/PaperWebsite/internal/middleware"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/nav"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/tracker"
)

// TrackData backs the order tracking page.
type TrackData struct {
	Query    string
	Order    *tracker.Order
	Progress float64
	NotFound bool
	DemoID   string
	Action   string
}

// trackOrder looks up ?id. Stage inconsistencies are logged and the order is
// still shown as stored.
func (a *app) trackOrder(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	logger := observability.FromContext(r.Context())
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	data := TrackData{Query: id, DemoID: tracker.DemoOrderID, Action: nav.Href(lang, "/track-order")}

	if id != "" {
		order, err := a.cfg.Orders.Find(r.Context(), id)
		switch {
		case errors.Is(err, tracker.ErrOrderNotFound):
			data.NotFound = true
		case err != nil:
			logger.Error("order lookup failed", zap.String("order_id", id), zap.Error(err))
			data.NotFound = true
		default:
			if err := tracker.Validate(order); err != nil {
				logger.Warn("order stages inconsistent", zap.String("order_id", order.ID), zap.Error(err))
			}
			data.Order = &order
			data.Progress = order.Progress()
		}
	}

	status := http.StatusOK
	if data.NotFound {
		status = http.StatusNotFound
	}
	v := a.newView(r, "track.title", "track.description", data)
	a.renderer.Render(w, r, status, "track-order", v)
}
