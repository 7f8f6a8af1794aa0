package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
)

// LocaleParam is the chi URL parameter holding the locale prefix.
const LocaleParam = "locale"

// Locale validates the {locale} path prefix against bundle. Unsupported
// locales are handed to notFound.
func Locale(bundle *i18n.Bundle, notFound http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := strings.ToLower(chi.URLParam(r, LocaleParam))
			if !bundle.IsSupported(lang) {
				r = r.WithContext(WithLocale(r.Context(), bundle.Resolve(r.Header.Get("Accept-Language"))))
				notFound.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}

// VaryLocale sets Vary for Accept-Language on dynamic responses.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// RedirectToLocale sends the bare root to the best matching locale.
func RedirectToLocale(bundle *i18n.Bundle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := bundle.Resolve(r.Header.Get("Accept-Language"))
		http.Redirect(w, r, "/"+lang+"/", http.StatusFound)
	}
}

// Lang returns the request locale, or fallback when none was resolved.
func Lang(r *http.Request, fallback string) string {
	if l, ok := LocaleFrom(r.Context()); ok {
		return l
	}
	return fallback
}

// SwapLocale rewrites the locale prefix of path to lang.
func SwapLocale(path, lang string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return "/" + lang + trimmed[i:]
	}
	return "/" + lang + "/"
}
