package middleware

import (
	"net/http"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpx"
)

func writeError(w http.ResponseWriter, r *http.Request, err httpx.Error) {
	if httpx.WantsJSON(r) {
		httpx.WriteError(r.Context(), w, err)
		return
	}
	http.Error(w, err.Message, err.Status)
}
