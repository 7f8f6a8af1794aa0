// Package nav builds the locale-prefixed main navigation and breadcrumbs.
package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/products", without the locale prefix
	LabelKey string // i18n key, e.g. "nav.products"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/products", LabelKey: "nav.products"},
	{Path: "/stock-offers", LabelKey: "nav.stockOffers"},
	{Path: "/services", LabelKey: "nav.services"},
	{Path: "/regions", LabelKey: "nav.regions"},
	{Path: "/sustainability", LabelKey: "nav.sustainability"},
	{Path: "/insights", LabelKey: "nav.insights"},
	{Path: "/about", LabelKey: "nav.about"},
	{Path: "/contact", LabelKey: "nav.contact"},
}

// sections holds label keys for pages reachable outside Main.
var sections = map[string]string{
	"finder":      "nav.finder",
	"quote":       "nav.quote",
	"track-order": "nav.trackOrder",
	"legal":       "nav.legal",
}

// Href prefixes p with the locale.
func Href(lang, p string) string {
	if p == "" || p == "/" {
		return "/" + lang + "/"
	}
	return "/" + lang + p
}

// Build renders navigation items with active state given the current path,
// which includes the locale prefix.
func Build(lang, currentPath string) []RenderedItem {
	rel := stripLocale(lang, currentPath)
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     Href(lang, it.Path),
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, rel),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path. The first
// crumb is always Home; known sections use label keys and deeper segments a
// prettified slug.
func Breadcrumbs(lang, currentPath string) []Crumb {
	rel := stripLocale(lang, currentPath)
	crumbs := []Crumb{{Href: Href(lang, "/"), LabelKey: "nav.home", Active: rel == "/"}}
	if rel == "/" {
		return crumbs
	}
	parts := strings.Split(strings.TrimPrefix(path.Clean(rel), "/"), "/")
	href := ""
	for i, seg := range parts {
		href += "/" + seg
		c := Crumb{Href: Href(lang, href), Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if i == 0 {
			c.LabelKey = sectionKey(seg)
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

func sectionKey(seg string) string {
	for _, it := range Main {
		if it.Path == "/"+seg {
			return it.LabelKey
		}
	}
	return sections[seg]
}

func stripLocale(lang, p string) string {
	if p == "" {
		return "/"
	}
	rest := strings.TrimPrefix(p, "/"+lang)
	if rest == "" {
		return "/"
	}
	if !strings.HasPrefix(rest, "/") {
		return p
	}
	if len(rest) > 1 {
		rest = strings.TrimSuffix(rest, "/")
	}
	return rest
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
