// Package seo builds page metadata and schema.org JSON-LD payloads.
package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	Locale      string
}

// Alternate is an hreflang link.
type Alternate struct {
	Lang string
	Href string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Alternates  []Alternate
	OG          OpenGraph
	JSONLD      []any
}

// Alternates returns one absolute link per locale for the locale-relative
// path rel, plus an x-default pointing at fallback.
func Alternates(siteURL, rel string, locales []string, fallback string) []Alternate {
	base := strings.TrimRight(siteURL, "/")
	out := make([]Alternate, 0, len(locales)+1)
	for _, l := range locales {
		out = append(out, Alternate{Lang: l, Href: base + "/" + l + rel})
	}
	if fallback != "" {
		out = append(out, Alternate{Lang: "x-default", Href: base + "/" + fallback + rel})
	}
	return out
}

// Absolute joins siteURL and p.
func Absolute(siteURL, p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return strings.TrimRight(siteURL, "/") + "/" + strings.TrimLeft(p, "/")
}
