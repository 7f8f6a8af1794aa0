package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/chat"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/config"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/contact"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/content"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpserver"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/quote"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/toast"
	"github.com/Hilal-Ahmad786/PaperWebsite/site"
)

const toastPruneInterval = time.Minute

type serveOptions struct {
	envFile  string
	port     string
	dev      bool
	logLevel string
}

func newServeCommand() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the website",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := map[string]string{}
			if cmd.Flags().Changed("port") {
				overrides["PM_SERVER_PORT"] = opts.port
			}
			if cmd.Flags().Changed("dev") {
				overrides["PM_DEV"] = fmt.Sprint(opts.dev)
			}
			if cmd.Flags().Changed("log-level") {
				overrides["PM_LOG_LEVEL"] = opts.logLevel
			}
			cfg, err := config.Load(config.WithEnvFile(opts.envFile), config.WithEnvMap(overrides))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to read, empty to skip")
	cmd.Flags().StringVar(&opts.port, "port", "", "listen port, overrides PM_SERVER_PORT")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "reparse templates and watch the site directories")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	return cmd
}

func runServer(ctx context.Context, cfg config.Config) error {
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cat := catalog.Default()
	if err := catalog.ValidateCopy(cat, cfg.I18n.Locales); err != nil {
		return err
	}
	bundle, err := i18n.Load(siteFS(cfg.Site.LocalesDir, site.Locales), ".", cfg.I18n.Default, cfg.I18n.Locales)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	pages := content.NewStore(siteFS(cfg.Site.ContentDir, site.Content), cfg.I18n.Default)

	contactSvc, err := contact.NewService(contact.NewLogNotifier(logger), contact.WithTimeout(cfg.Contact.Timeout))
	if err != nil {
		return err
	}
	// a nil limiter disables throttling when the rate is zero
	var limiter contact.RateLimiter
	if l := contact.NewFixedWindowLimiter(cfg.Contact.RatePerMinute, time.Minute, nil); l != nil {
		limiter = l
	}

	chatSrv := chat.NewServer(chat.CannedAgent{Text: func(lang string) string {
		return bundle.T(lang, "chat.reply")
	}}, chat.WithTypingDelay(cfg.Chat.TypingDelay), chat.WithLogger(logger.Named("chat")))

	toasts := toast.NewRegistry()
	go toasts.Run(ctx, toastPruneInterval, cfg.Toast.IdleTTL)

	srv, err := httpserver.New(httpserver.Config{
		Address:        ":" + cfg.Server.Port,
		Logger:         logger,
		Dev:            cfg.Dev,
		Catalog:        cat,
		Bundle:         bundle,
		Content:        pages,
		Templates:      siteFS(cfg.Site.TemplatesDir, site.Templates),
		Public:         siteFS(cfg.Site.PublicDir, site.Public),
		SiteURL:        cfg.Site.URL,
		CookieHashKey:  cfg.Cookies.HashKey,
		CookieBlockKey: cfg.Cookies.BlockKey,
		CookieSecure:   cfg.Cookies.Secure,
		Toasts:         toasts,
		ToastDuration:  cfg.Toast.Duration,
		Contact:        contactSvc,
		ContactLimiter: limiter,
		Pricing:        quote.NewMockPricingEngine(cfg.Quote.BaseRate),
		Chat:           chatSrv,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	if err != nil {
		return err
	}

	if cfg.Dev {
		watchSite(ctx, cfg, srv, pages, logger)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("papermarket started",
		zap.String("env", cfg.Env),
		zap.String("addr", srv.Addr()),
		zap.Strings("locales", cfg.I18n.Locales),
		zap.Bool("dev", cfg.Dev),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("papermarket stopped")
	return nil
}

// watchSite reloads templates and drops cached markdown when files under the
// configured site directories change. Embedded trees are not watched.
func watchSite(ctx context.Context, cfg config.Config, srv *httpserver.Server, pages *content.Store, logger *zap.Logger) {
	for _, dir := range []string{cfg.Site.TemplatesDir, cfg.Site.ContentDir} {
		if dir == "" {
			continue
		}
		go func(dir string) {
			if err := httpserver.WatchTemplates(ctx, srv.Renderer(), dir, logger, pages.Reset); err != nil {
				logger.Warn("site watcher stopped", zap.String("dir", dir), zap.Error(err))
			}
		}(dir)
	}
}

// siteFS returns dir on disk when set, otherwise the embedded tree.
func siteFS(dir string, embedded func() fs.FS) fs.FS {
	if dir == "" {
		return embedded()
	}
	return os.DirFS(dir)
}
