// Package config loads runtime configuration from the environment and an
// optional .env file.
package config

import (
	"bufio"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultEnvFile          = ".env"
	defaultPort             = "8080"
	defaultReadTimeout      = 15 * time.Second
	defaultWriteTimeout     = 30 * time.Second
	defaultIdleTimeout      = 120 * time.Second
	defaultRequestTimeout   = 30 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultEnvironment      = "local"
	defaultLogLevel         = "info"
	defaultSiteURL          = "http://localhost:8080"
	defaultLocale           = "en"
	defaultContactPerMinute = 5
	defaultContactTimeout   = 10 * time.Second
	defaultQuoteBaseRate    = 850
	defaultChatTypingDelay  = 2 * time.Second
	defaultToastDuration    = 5 * time.Second
	defaultToastIdleTTL     = 30 * time.Minute
)

var defaultLocales = []string{"en", "tr", "ar"}

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env      string
	LogLevel string
	Dev      bool
	Server   ServerConfig
	Site     SiteConfig
	I18n     I18nConfig
	Cookies  CookieConfig
	Contact  ContactConfig
	Quote    QuoteConfig
	Chat     ChatConfig
	Toast    ToastConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// SiteConfig locates site assets. Empty directories mean the embedded copy.
type SiteConfig struct {
	URL          string
	TemplatesDir string
	PublicDir    string
	LocalesDir   string
	ContentDir   string
}

// I18nConfig lists the served locales.
type I18nConfig struct {
	Locales []string
	Default string
}

// CookieConfig holds keys for signed cookies.
type CookieConfig struct {
	HashKey  []byte
	BlockKey []byte
	Secure   bool
}

// ContactConfig throttles and bounds the contact endpoint.
type ContactConfig struct {
	RatePerMinute int
	Timeout       time.Duration
}

// QuoteConfig parameterises the mock pricing engine.
type QuoteConfig struct {
	BaseRate float64
}

// ChatConfig controls the simulated agent.
type ChatConfig struct {
	TypingDelay time.Duration
}

// ToastConfig controls notification lifetimes.
type ToastConfig struct {
	Duration time.Duration
	IdleTTL  time.Duration
}

// Production reports whether the environment is prod.
func (c Config) Production() bool { return c.Env == "prod" }

// ValidationError lists fields that are missing or invalid.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns the offending field names.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile reads dotenv values from path. An empty path disables the file.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap supplies explicit values that win over everything else.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration with precedence explicit map > OS env > dotenv.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	env := strings.ToLower(stringWithDefault(lookup, "PM_ENV", defaultEnvironment))
	cfg := Config{
		Env:      env,
		LogLevel: stringWithDefault(lookup, "PM_LOG_LEVEL", defaultLogLevel),
		Dev:      boolWithDefault(lookup, "PM_DEV", false),
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "PM_SERVER_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:     durationWithDefault(lookup, "PM_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "PM_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "PM_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout:  durationWithDefault(lookup, "PM_SERVER_REQUEST_TIMEOUT", defaultRequestTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "PM_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Site: SiteConfig{
			URL:          strings.TrimRight(stringWithDefault(lookup, "PM_SITE_URL", defaultSiteURL), "/"),
			TemplatesDir: stringWithDefault(lookup, "PM_TEMPLATES_DIR", ""),
			PublicDir:    stringWithDefault(lookup, "PM_PUBLIC_DIR", ""),
			LocalesDir:   stringWithDefault(lookup, "PM_LOCALES_DIR", ""),
			ContentDir:   stringWithDefault(lookup, "PM_CONTENT_DIR", ""),
		},
		I18n: I18nConfig{
			Locales: csvWithDefault(lookup, "PM_LOCALES"),
			Default: strings.ToLower(stringWithDefault(lookup, "PM_DEFAULT_LOCALE", defaultLocale)),
		},
		Cookies: CookieConfig{
			HashKey:  deriveKey(stringWithDefault(lookup, "PM_COOKIE_HASH_KEY", "")),
			BlockKey: deriveKey(stringWithDefault(lookup, "PM_COOKIE_BLOCK_KEY", "")),
			Secure:   boolWithDefault(lookup, "PM_COOKIE_SECURE", env == "prod"),
		},
		Contact: ContactConfig{
			RatePerMinute: intWithDefault(lookup, "PM_CONTACT_RATE_PER_MIN", defaultContactPerMinute),
			Timeout:       durationWithDefault(lookup, "PM_CONTACT_TIMEOUT", defaultContactTimeout),
		},
		Quote: QuoteConfig{
			BaseRate: floatWithDefault(lookup, "PM_QUOTE_BASE_RATE", defaultQuoteBaseRate),
		},
		Chat: ChatConfig{
			TypingDelay: durationWithDefault(lookup, "PM_CHAT_TYPING_DELAY", defaultChatTypingDelay),
		},
		Toast: ToastConfig{
			Duration: durationWithDefault(lookup, "PM_TOAST_DURATION", defaultToastDuration),
			IdleTTL:  durationWithDefault(lookup, "PM_TOAST_IDLE_TTL", defaultToastIdleTTL),
		},
	}

	if len(cfg.I18n.Locales) == 0 {
		cfg.I18n.Locales = slices.Clone(defaultLocales)
	}
	for i, l := range cfg.I18n.Locales {
		cfg.I18n.Locales[i] = strings.ToLower(l)
	}

	// Outside prod a missing hash key gets a process-ephemeral one; cookies
	// then do not survive restarts.
	if len(cfg.Cookies.HashKey) == 0 && !cfg.Production() {
		cfg.Cookies.HashKey = securecookie.GenerateRandomKey(32)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Server.RequestTimeout <= 0 {
		missing = append(missing, "Server.RequestTimeout")
	}
	if !slices.Contains(cfg.I18n.Locales, cfg.I18n.Default) {
		missing = append(missing, "I18n.Default")
	}
	if len(cfg.Cookies.HashKey) == 0 {
		missing = append(missing, "Cookies.HashKey")
	}
	if cfg.Contact.Timeout <= 0 {
		missing = append(missing, "Contact.Timeout")
	}
	if cfg.Quote.BaseRate <= 0 {
		missing = append(missing, "Quote.BaseRate")
	}
	if cfg.Chat.TypingDelay < 0 {
		missing = append(missing, "Chat.TypingDelay")
	}
	if cfg.Toast.Duration < 0 {
		missing = append(missing, "Toast.Duration")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

// deriveKey stretches a configured secret to a 32-byte key.
func deriveKey(secret string) []byte {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func floatWithDefault(lookup func(string) (string, bool), key string, fallback float64) float64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
