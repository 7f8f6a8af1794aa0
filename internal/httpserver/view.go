package httpserver

import (
	"net/http"
	"time"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	mw "github.com/Hilal-Ahmad786/PaperWebsite/internal/middleware"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/nav"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/seo"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/toast"
)

// LocaleLink is an entry of the language switcher.
type LocaleLink struct {
	Lang   string
	Label  string
	Href   string
	Active bool
}

// View is the data every page template receives.
type View struct {
	Lang     string
	Dir      string
	SiteName string
	Path     string
	Meta     seo.Meta
	Nav      []nav.RenderedItem
	Crumbs   []nav.Crumb
	Locales  []LocaleLink
	Ticker   []catalog.MarketIndex
	Toasts   []toast.Toast
	CSRF     string
	Copy     catalog.Copy
	Year     int
	Data     any

	bundle *i18n.Bundle
}

// T translates key in the view's locale.
func (v *View) T(key string, args ...any) string {
	if len(args) > 0 {
		return v.bundle.Tf(v.Lang, key, args...)
	}
	return v.bundle.T(v.Lang, key)
}

// Href prefixes p with the view's locale.
func (v *View) Href(p string) string { return nav.Href(v.Lang, p) }

// CrumbLabel resolves a breadcrumb label.
func (v *View) CrumbLabel(c nav.Crumb) string {
	if c.LabelKey != "" {
		return v.T(c.LabelKey)
	}
	return c.Label
}

// newView builds the shared view for r. titleKey and descKey are i18n keys.
func (s *app) newView(r *http.Request, titleKey, descKey string, data any) *View {
	lang := mw.Lang(r, s.bundle.Fallback())
	v := &View{
		Lang:     lang,
		Dir:      i18n.Dir(lang),
		SiteName: s.cfg.SiteName,
		Path:     r.URL.Path,
		Nav:      nav.Build(lang, r.URL.Path),
		Crumbs:   nav.Breadcrumbs(lang, r.URL.Path),
		Ticker:   s.catalog.MarketIndices(),
		CSRF:     mw.CSRFToken(r),
		Copy:     catalog.CopyFor(lang),
		Year:     time.Now().Year(),
		Data:     data,
		bundle:   s.bundle,
	}
	rel := relPath(lang, r.URL.Path)
	for _, l := range s.bundle.Supported() {
		v.Locales = append(v.Locales, LocaleLink{
			Lang:   l,
			Label:  s.bundle.T(l, "locale.name"),
			Href:   mw.SwapLocale(r.URL.Path, l),
			Active: l == lang,
		})
	}
	title := v.T(titleKey)
	v.Meta = seo.Meta{
		Title:       title + " | " + s.cfg.SiteName,
		Description: v.T(descKey),
		Canonical:   seo.Absolute(s.cfg.SiteURL, r.URL.Path),
		Alternates:  seo.Alternates(s.cfg.SiteURL, rel, s.bundle.Supported(), s.bundle.Fallback()),
		OG: seo.OpenGraph{
			Title:       title,
			Description: v.T(descKey),
			Image:       seo.Absolute(s.cfg.SiteURL, "/assets/img/og.svg"),
			Type:        "website",
			Locale:      lang,
		},
	}
	v.Meta.JSONLD = append(v.Meta.JSONLD, seo.Organization(s.cfg.SiteName, s.cfg.SiteURL, seo.Absolute(s.cfg.SiteURL, "/assets/img/logo.svg"), s.cfg.SalesEmail))
	if len(v.Crumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(v.Crumbs))
		for _, c := range v.Crumbs {
			items = append(items, seo.BreadcrumbItem{Name: v.CrumbLabel(c), Item: seo.Absolute(s.cfg.SiteURL, c.Href)})
		}
		v.Meta.JSONLD = append(v.Meta.JSONLD, seo.BreadcrumbList(items))
	}
	if q := s.clientQueue(r); q != nil {
		v.Toasts = q.Toasts()
	}
	return v
}

// relPath strips the locale prefix, keeping a leading slash.
func relPath(lang, p string) string {
	rest := p[min(len(p), len(lang)+1):]
	if rest == "" {
		return "/"
	}
	return rest
}

// retitle replaces the page title and description with already translated text.
func (v *View) retitle(title, desc string) {
	v.Meta.Title = title + " | " + v.SiteName
	v.Meta.OG.Title = title
	if desc != "" {
		v.Meta.Description = desc
		v.Meta.OG.Description = desc
	}
}
