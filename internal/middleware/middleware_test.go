package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"l/en.json": {Data: []byte(`{}`)},
		"l/tr.json": {Data: []byte(`{}`)},
		"l/ar.json": {Data: []byte(`{}`)},
	}
	b, err := i18n.Load(fsys, "l", "en", []string{"en", "tr", "ar"})
	require.NoError(t, err)
	return b
}

func testCodec(t *testing.T) *ClientCodec {
	t.Helper()
	c, err := NewClientCodec([]byte("0123456789abcdef0123456789abcdef"), nil, false)
	require.NoError(t, err)
	return c
}

func TestLocaleRejectsUnknownPrefix(t *testing.T) {
	b := testBundle(t)
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(Lang(r, "en")))
	})
	r := chi.NewRouter()
	r.Route("/{locale}", func(r chi.Router) {
		r.Use(Locale(b, notFound))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(Lang(r, "en")))
		})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tr/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "tr", rec.Body.String())
	require.Equal(t, "tr", rec.Header().Get("Content-Language"))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/xx/", nil)
	req.Header.Set("Accept-Language", "ar")
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "ar", rec.Body.String())
}

func TestRedirectToLocale(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.5")
	RedirectToLocale(testBundle(t)).ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/tr/", rec.Header().Get("Location"))
}

func TestSwapLocale(t *testing.T) {
	require.Equal(t, "/ar/products/duplex-board", SwapLocale("/en/products/duplex-board", "ar"))
	require.Equal(t, "/tr/", SwapLocale("/en/", "tr"))
	require.Equal(t, "/tr/", SwapLocale("/en", "tr"))
}

func TestClientIssuesAndReusesCookie(t *testing.T) {
	codec := testCodec(t)
	var seen *ClientState
	h := Client(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen.ID)
	require.NotEmpty(t, seen.CSRFToken)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	first := seen.ID

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, first, seen.ID)
	require.Empty(t, rec.Result().Cookies())
}

func TestClientReplacesTamperedCookie(t *testing.T) {
	codec := testCodec(t)
	var seen *ClientState
	h := Client(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotEmpty(t, seen.ID)
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestCSRF(t *testing.T) {
	state := &ClientState{ID: "c1", CSRFToken: "tok"}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := CSRF("/api/")(ok)
	serve := func(req *http.Request) int {
		req = req.WithContext(WithClient(req.Context(), state))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, serve(httptest.NewRequest(http.MethodGet, "/en/quote", nil)))

	form := url.Values{CSRFFieldName: {"tok"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/en/quote", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusNoContent, serve(req))

	req = httptest.NewRequest(http.MethodPost, "/en/quote", strings.NewReader("csrf_token=nope"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusForbidden, serve(req))

	req = httptest.NewRequest(http.MethodDelete, "/en/x", nil)
	req.Header.Set(CSRFHeaderName, "tok")
	require.Equal(t, http.StatusNoContent, serve(req))

	require.Equal(t, http.StatusNoContent, serve(httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{}`))))
}

func TestAssetsWithCache(t *testing.T) {
	fsys := fstest.MapFS{"css/site.css": {Data: []byte("body{}")}}
	h := http.StripPrefix("/assets", AssetsWithCache(fsys))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotModified, rec.Code)
}
