package testutil

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/chat"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/contact"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/content"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpserver"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/toast"
	"github.com/Hilal-Ahmad786/PaperWebsite/site"
)

// CookieHashKey signs cookies on test servers so tests can forge them.
var CookieHashKey = []byte("0123456789abcdef0123456789abcdef")

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithContactLimiter throttles the contact endpoints.
func WithContactLimiter(l contact.RateLimiter) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.ContactLimiter = l
	}
}

// WithContactNotifier replaces the logging notifier.
func WithContactNotifier(t testing.TB, n contact.Notifier) ServerOption {
	return func(cfg *httpserver.Config) {
		svc, err := contact.NewService(n)
		if err != nil {
			t.Fatalf("contact service: %v", err)
		}
		cfg.Contact = svc
	}
}

// WithToastRegistry shares a registry with the test.
func WithToastRegistry(r *toast.Registry) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Toasts = r
	}
}

// DefaultConfig returns a server config over the embedded site.
func DefaultConfig(t testing.TB) httpserver.Config {
	t.Helper()

	bundle, err := i18n.Load(site.Locales(), ".", "en", []string{"en", "tr", "ar"})
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	return httpserver.Config{
		Address:       ":0",
		Catalog:       catalog.Default(),
		Bundle:        bundle,
		Content:       content.NewStore(site.Content(), "en"),
		Templates:     site.Templates(),
		Public:        site.Public(),
		SiteURL:       "https://papermarket.test",
		CookieHashKey: CookieHashKey,
		Chat: chat.NewServer(chat.CannedAgent{Text: func(lang string) string {
			return bundle.T(lang, "chat.reply")
		}}, chat.WithTypingDelay(10*time.Millisecond)),
	}
}

// NewHandler builds the site handler for in-process requests.
func NewHandler(t testing.TB, opts ...ServerOption) http.Handler {
	t.Helper()

	cfg := DefaultConfig(t)
	for _, opt := range opts {
		opt(&cfg)
	}
	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv.Handler()
}

// NewServer constructs an httptest server running the site HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(NewHandler(t, opts...))
	t.Cleanup(ts.Close)
	return ts
}

// NewClient returns a client with a cookie jar that does not follow
// redirects, so Post/Redirect/Get responses can be asserted.
func NewClient(t testing.TB) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar:     jar,
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// ReadBody drains and closes resp.Body.
func ReadBody(t testing.TB, resp *http.Response) []byte {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return body
}
