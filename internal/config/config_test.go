package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Env != "local" || cfg.Production() {
		t.Errorf("unexpected env %s", cfg.Env)
	}
	if len(cfg.I18n.Locales) != 3 || cfg.I18n.Default != "en" {
		t.Errorf("unexpected i18n config %+v", cfg.I18n)
	}
	if len(cfg.Cookies.HashKey) != 32 {
		t.Errorf("expected ephemeral hash key, got %d bytes", len(cfg.Cookies.HashKey))
	}
	if cfg.Cookies.BlockKey != nil || cfg.Cookies.Secure {
		t.Errorf("unexpected cookie config %+v", cfg.Cookies)
	}
	if cfg.Quote.BaseRate != 850 {
		t.Errorf("unexpected base rate %v", cfg.Quote.BaseRate)
	}
	if cfg.Chat.TypingDelay != 2*time.Second {
		t.Errorf("unexpected typing delay %s", cfg.Chat.TypingDelay)
	}
	if cfg.Toast.Duration != 5*time.Second {
		t.Errorf("unexpected toast duration %s", cfg.Toast.Duration)
	}
	if cfg.Contact.RatePerMinute != 5 || cfg.Contact.Timeout != 10*time.Second {
		t.Errorf("unexpected contact config %+v", cfg.Contact)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                    "3000",
		"PM_ENV":                  "PROD",
		"PM_LOCALES":              "EN, tr",
		"PM_DEFAULT_LOCALE":       "tr",
		"PM_COOKIE_HASH_KEY":      "hash-secret",
		"PM_COOKIE_BLOCK_KEY":     "block-secret",
		"PM_QUOTE_BASE_RATE":      "900.5",
		"PM_CHAT_TYPING_DELAY":    "50ms",
		"PM_CONTACT_RATE_PER_MIN": "0",
		"PM_DEV":                  "yes",
		"PM_SITE_URL":             "https://papermarket.example/",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("PORT fallback ignored: %s", cfg.Server.Port)
	}
	if !cfg.Production() || !cfg.Cookies.Secure || !cfg.Dev {
		t.Errorf("unexpected flags %+v", cfg)
	}
	if cfg.I18n.Locales[0] != "en" || cfg.I18n.Default != "tr" {
		t.Errorf("unexpected i18n %+v", cfg.I18n)
	}
	if len(cfg.Cookies.HashKey) != 32 || len(cfg.Cookies.BlockKey) != 32 {
		t.Errorf("keys not derived")
	}
	if cfg.Quote.BaseRate != 900.5 || cfg.Chat.TypingDelay != 50*time.Millisecond || cfg.Contact.RatePerMinute != 0 {
		t.Errorf("overrides ignored %+v", cfg)
	}
	if cfg.Site.URL != "https://papermarket.example" {
		t.Errorf("site url %s", cfg.Site.URL)
	}

	env["PM_SERVER_PORT"] = "9090"
	cfg, err = Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil || cfg.Server.Port != "9090" {
		t.Fatalf("PM_SERVER_PORT should win: %v %s", err, cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"PM_ENV":            "prod",
		"PM_DEFAULT_LOCALE": "fr",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := verr.Fields()
	if len(fields) != 2 || fields[0] != "I18n.Default" || fields[1] != "Cookies.HashKey" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestLoadDotEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nexport PM_SERVER_PORT=7000\nPM_LOG_LEVEL='debug'\nPM_CHAT_TYPING_DELAY=1s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv(), WithEnvMap(map[string]string{"PM_CHAT_TYPING_DELAY": "3s"}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "7000" || cfg.LogLevel != "debug" {
		t.Errorf("dotenv values ignored: %s %s", cfg.Server.Port, cfg.LogLevel)
	}
	if cfg.Chat.TypingDelay != 3*time.Second {
		t.Errorf("explicit map should win, got %s", cfg.Chat.TypingDelay)
	}
}
