package i18n

import (
	"testing"
	"testing/fstest"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"nav.home":"Home","nav.contact":"Contact","greeting":"Hello %s"}`)},
		"locales/tr.json": {Data: []byte(`{"nav.home":"Ana Sayfa"}`)},
		"locales/ar.json": {Data: []byte(`{"nav.home":"الرئيسية"}`)},
	}
	b, err := Load(fsys, "locales", "en", []string{"en", "tr", "ar"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := testBundle(t)
	cases := map[string]string{
		"tr;q=0.8, ar;q=0.9": "ar",
		"tr-TR,tr;q=0.9":     "tr",
		"de-DE, fr;q=0.5":    "en",
		"":                   "en",
		"*":                  "en",
		"ar-EG":              "ar",
	}
	for header, want := range cases {
		if got := b.Resolve(header); got != want {
			t.Fatalf("Resolve(%q) = %s, want %s", header, got, want)
		}
	}
}

func TestTranslateFallsBack(t *testing.T) {
	b := testBundle(t)
	if got := b.T("tr", "nav.home"); got != "Ana Sayfa" {
		t.Fatalf("got %q", got)
	}
	if got := b.T("tr", "nav.contact"); got != "Contact" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := b.T("ar", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key, got %q", got)
	}
	if got := b.Tf("en", "greeting", "Ayşe"); got != "Hello Ayşe" {
		t.Fatalf("got %q", got)
	}
	if b.Has("tr", "nav.contact") {
		t.Fatal("Has must not fall back")
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	if _, err := Load(fstest.MapFS{}, "locales", "en", []string{"en"}); err == nil {
		t.Fatal("expected error when fallback missing")
	}
}

func TestSupportedSkipsMissingLocales(t *testing.T) {
	fsys := fstest.MapFS{"l/en.json": {Data: []byte(`{}`)}}
	b, err := Load(fsys, "l", "en", []string{"tr", "en"})
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Supported(); len(got) != 1 || got[0] != "en" {
		t.Fatalf("supported = %v", got)
	}
	if b.IsSupported("tr") {
		t.Fatal("tr should not be supported")
	}
}

func TestDir(t *testing.T) {
	if Dir("ar") != "rtl" || Dir("en") != "ltr" || Dir("tr") != "ltr" || Dir("??") != "ltr" {
		t.Fatal("unexpected direction")
	}
}
