package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpx"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "csrf_token"

// CSRFHeaderName is accepted in place of the form field.
const CSRFHeaderName = "X-CSRF-Token"

// CSRF rejects unsafe requests whose token does not match the client cookie.
// Paths under an exempt prefix pass through unchecked.
func CSRF(exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) || hasPrefix(r.URL.Path, exempt) {
				next.ServeHTTP(w, r)
				return
			}
			want := ClientFrom(r.Context()).CSRFToken
			got := r.Header.Get(CSRFHeaderName)
			if got == "" {
				got = r.PostFormValue(CSRFFieldName)
			}
			if want == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
				observability.FromContext(r.Context()).Warn("csrf token mismatch")
				writeError(w, r, httpx.NewError("invalid CSRF token", http.StatusForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CSRFToken returns the token to embed in forms.
func CSRFToken(r *http.Request) string {
	return ClientFrom(r.Context()).CSRFToken
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
