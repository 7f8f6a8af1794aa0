// Package httpserver wires the site's routes, middleware and page handlers.
package httpserver

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/chat"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/contact"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/content"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/finder"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	mw "github.com/Hilal-Ahmad786/PaperWebsite/internal/middleware"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/quote"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/toast"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/tracker"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultSiteName       = "Paper Market World"
)

// Config is everything New needs. Catalog, Bundle, Content, Templates and
// Public are required; the rest have defaults.
type Config struct {
	Address string
	Logger  *zap.Logger
	Dev     bool

	Catalog   *catalog.Catalog
	Bundle    *i18n.Bundle
	Content   *content.Store
	Templates fs.FS
	Public    fs.FS

	SiteURL    string
	SiteName   string
	SalesEmail string

	CookieHashKey  []byte
	CookieBlockKey []byte
	CookieSecure   bool

	Toasts        *toast.Registry
	ToastDuration time.Duration

	Contact        *contact.Service
	ContactLimiter contact.RateLimiter
	Pricing        quote.PricingEngine
	Recommender    finder.Recommender
	Orders         tracker.Repository
	Chat           *chat.Server

	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// Server is the HTTP front of the site.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	renderer   *Renderer
	logger     *zap.Logger
}

type app struct {
	cfg      Config
	logger   *zap.Logger
	bundle   *i18n.Bundle
	catalog  *catalog.Catalog
	content  *content.Store
	renderer *Renderer
	jar      *wizard.CookieJar
	codec    *mw.ClientCodec
	toasts   *toast.Registry
	contact  *contact.Handler
}

// New validates cfg and builds the router.
func New(cfg Config) (*Server, error) {
	if cfg.Catalog == nil || cfg.Bundle == nil || cfg.Content == nil {
		return nil, errors.New("httpserver: catalog, bundle and content are required")
	}
	if cfg.Templates == nil || cfg.Public == nil {
		return nil, errors.New("httpserver: templates and public filesystems are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.SiteName == "" {
		cfg.SiteName = defaultSiteName
	}
	if cfg.SalesEmail == "" {
		cfg.SalesEmail = "sales@papermarketworld.com"
	}
	if cfg.Toasts == nil {
		cfg.Toasts = toast.NewRegistry()
	}
	if cfg.ToastDuration <= 0 {
		cfg.ToastDuration = toast.DefaultDuration
	}
	if cfg.Pricing == nil {
		cfg.Pricing = quote.NewMockPricingEngine(quote.DefaultBaseRate)
	}
	if cfg.Recommender == nil {
		cfg.Recommender = finder.NewStaticRecommender(cfg.Catalog)
	}
	if cfg.Orders == nil {
		cfg.Orders = tracker.NewStaticRepository()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Contact == nil {
		svc, err := contact.NewService(contact.NewLogNotifier(cfg.Logger))
		if err != nil {
			return nil, err
		}
		cfg.Contact = svc
	}
	if cfg.Chat == nil {
		bundle := cfg.Bundle
		cfg.Chat = chat.NewServer(chat.CannedAgent{Text: func(lang string) string {
			return bundle.T(lang, "chat.reply")
		}}, chat.WithLogger(cfg.Logger))
	}

	renderer, err := NewRenderer(cfg.Templates, cfg.Dev)
	if err != nil {
		return nil, err
	}
	jar, err := wizard.NewCookieJar(wizard.CookieJarConfig{
		HashKey:  cfg.CookieHashKey,
		BlockKey: cfg.CookieBlockKey,
		Secure:   cfg.CookieSecure,
	})
	if err != nil {
		return nil, err
	}
	codec, err := mw.NewClientCodec(cfg.CookieHashKey, cfg.CookieBlockKey, cfg.CookieSecure)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   cfg.Logger,
		bundle:   cfg.Bundle,
		catalog:  cfg.Catalog,
		content:  cfg.Content,
		renderer: renderer,
		jar:      jar,
		codec:    codec,
		toasts:   cfg.Toasts,
		contact:  contact.NewHandler(cfg.Contact, cfg.ContactLimiter, 0),
	}
	handler := a.routes()

	hs := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          zap.NewStdLog(cfg.Logger),
	}
	// hijacked chat sockets are invisible to Shutdown
	hs.RegisterOnShutdown(cfg.Chat.Close)

	return &Server{
		httpServer: hs,
		handler:    handler,
		renderer:   renderer,
		logger:     cfg.Logger,
	}, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.handler }

// Renderer returns the template renderer so callers can attach a watcher.
func (s *Server) Renderer() *Renderer { return s.renderer }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx is done and closes open chat
// sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLogger(a.logger))
	r.Use(observability.RequestLogger())
	r.Use(observability.Recovery(a.logger))
	r.Use(mw.Client(a.codec))
	r.Use(mw.CSRF("/api/", "/ws/"))
	r.Use(mw.VaryLocale)

	r.NotFound(a.notFound)

	// long-lived connections stay outside compression and the request timeout
	r.Get("/ws/chat", a.cfg.Chat.ServeHTTP)
	r.Get("/api/toasts/stream", a.toastStream)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))
		r.Use(chimw.Timeout(a.cfg.RequestTimeout))

		r.Get("/healthz", healthz)
		r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(a.cfg.Public)))
		r.Get("/", mw.RedirectToLocale(a.bundle))

		r.Route("/api", func(r chi.Router) {
			r.Method(http.MethodPost, "/contact", a.contact)
			r.Post("/finder/matches", a.finderMatchesAPI)
			r.Post("/quote", a.quoteAPI)
			r.Get("/toasts", a.toastList)
			r.Delete("/toasts/{id}", a.toastDelete)
		})

		r.Route("/{"+mw.LocaleParam+"}", func(r chi.Router) {
			r.Use(mw.Locale(a.bundle, http.HandlerFunc(a.notFound)))
			r.Get("/", a.home)
			r.Get("/about", a.contentPage("about", "about"))
			r.Get("/services", a.services)
			r.Get("/sustainability", a.contentPage("sustainability", "sustainability"))
			r.Get("/insights", a.insights)
			r.Get("/legal/privacy", a.contentPage("privacy", "legal/privacy"))
			r.Get("/products", a.products)
			r.Get("/products/{slug}", a.productDetail)
			r.Get("/stock-offers", a.stockOffers)
			r.Get("/stock-offers.csv", a.stockOffersCSV)
			r.Get("/regions", a.regions)
			r.Get("/contact", a.contactPage)
			r.Post("/contact", a.contactSubmit)
			r.Get("/track-order", a.trackOrder)
			r.Get("/finder", a.finderPage)
			r.Post("/finder", a.finderSubmit)
			r.Get("/quote", a.quotePage)
			r.Post("/quote", a.quoteSubmit)
		})
	})
	return r
}

// clientQueue returns the toast queue of the requesting browser.
func (a *app) clientQueue(r *http.Request) *toast.Queue {
	id := mw.ClientFrom(r.Context()).ID
	if id == "" {
		return nil
	}
	return a.toasts.Queue(id)
}

// notify enqueues a toast for the requesting browser.
func (a *app) notify(r *http.Request, sev toast.Severity, key string) {
	if q := a.clientQueue(r); q != nil {
		q.Enqueue(sev, a.bundle.T(mw.Lang(r, a.bundle.Fallback()), key), a.cfg.ToastDuration)
	}
}

// seeOther completes a Post/Redirect/Get.
func seeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
