package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/content"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpx"
	mw "github.com/Hilal-Ahmad786/PaperWebsite/internal/middleware"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/nav"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/seo"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/ui"
)

const (
	testimonialsPerSlide = 1
	featuredOffers       = 3
)

// ProductCard is a product as listed on overview pages.
type ProductCard struct {
	Product  catalog.Product
	Copy     catalog.ProductCopy
	Category string
	Href     string
	Tags     []string
}

// Testimonial is a customer quote on the home page.
type Testimonial struct {
	Quote   string
	Author  string
	Company string
}

// HomeData backs the home page.
type HomeData struct {
	Products     []ProductCard
	Offers       []OfferRow
	Regions      []RegionCard
	Testimonials ui.Carousel[Testimonial]
	PrevHref     string
	NextHref     string
	DotHrefs     []string
}

// RegionCard is a sales region with localized text.
type RegionCard struct {
	Region    catalog.Region
	Copy      catalog.RegionCopy
	Customers []string
	Products  []ProductCard
	Active    bool
}

// ProductsData backs the product overview.
type ProductsData struct {
	Categories []CategoryLink
	Products   []ProductCard
}

// CategoryLink is a product category filter chip.
type CategoryLink struct {
	Label  string
	Href   string
	Active bool
}

// SpecLine is one localized specification row.
type SpecLine struct {
	Label string
	Value string
}

// ProductData backs the product detail page.
type ProductData struct {
	Card         ProductCard
	Specs        []SpecLine
	Applications []string
	Industries   []string
	Origins      []string
	Offers       []OfferRow
	Gallery      ui.Gallery[string]
	Image        string
	PrevHref     string
	NextHref     string
	ZoomInHref   string
	ZoomOutHref  string
	QuoteHref    string
	ContactHref  string
}

// ContentData backs markdown-driven pages.
type ContentData struct {
	Page    content.Page
	OpenFAQ int
	FAQHref []string
}

// InsightsData backs the market insights page.
type InsightsData struct {
	ContentData
	Indices []catalog.MarketIndex
}

// ServicesData backs the services page.
type ServicesData struct {
	ContentData
	Services []string
}

var serviceKeys = []string{"sourcing", "logistics", "quality", "finance"}

func (a *app) home(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	cp := catalog.CopyFor(lang)

	idx, _ := strconv.Atoi(r.URL.Query().Get("t"))
	carousel := ui.NewCarousel(a.testimonials(lang), testimonialsPerSlide, idx)
	data := HomeData{
		Products:     a.productCards(lang, cp, a.catalog.Products()),
		Regions:      a.regionCards(lang, cp, ""),
		Testimonials: carousel,
		PrevHref:     withQuery(r.URL, "t", strconv.Itoa(carousel.Prev())),
		NextHref:     withQuery(r.URL, "t", strconv.Itoa(carousel.Next())),
	}
	for _, d := range carousel.Dots() {
		data.DotHrefs = append(data.DotHrefs, withQuery(r.URL, "t", strconv.Itoa(d)))
	}
	offers := a.catalog.Offers()
	for _, o := range offers[:min(featuredOffers, len(offers))] {
		data.Offers = append(data.Offers, newOfferRow(lang, cp, o))
	}

	v := a.newView(r, "home.title", "home.description", data)
	a.renderer.Render(w, r, http.StatusOK, "home", v)
}

// testimonials reads home.testimonials.N.* keys until the first gap.
func (a *app) testimonials(lang string) []Testimonial {
	var out []Testimonial
	for i := 1; ; i++ {
		prefix := "home.testimonials." + strconv.Itoa(i) + "."
		if !a.bundle.Has(a.bundle.Fallback(), prefix+"quote") {
			return out
		}
		out = append(out, Testimonial{
			Quote:   a.bundle.T(lang, prefix+"quote"),
			Author:  a.bundle.T(lang, prefix+"author"),
			Company: a.bundle.T(lang, prefix+"company"),
		})
	}
}

func (a *app) productCards(lang string, cp catalog.Copy, ps []catalog.Product) []ProductCard {
	out := make([]ProductCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProductCard{
			Product:  p,
			Copy:     productCopy(cp, p.Slug),
			Category: cp.Categories[p.Category],
			Href:     nav.Href(lang, "/products/"+p.Slug),
			Tags:     cp.TagList(p.Applications),
		})
	}
	return out
}

func productCopy(cp catalog.Copy, slug string) catalog.ProductCopy {
	pc := cp.Products[slug]
	if pc.Name == "" {
		pc.Name = cp.ProductName(slug)
	}
	return pc
}

func (a *app) regionCards(lang string, cp catalog.Copy, active string) []RegionCard {
	regions := a.catalog.Regions()
	out := make([]RegionCard, 0, len(regions))
	for _, rg := range regions {
		var products []catalog.Product
		for _, slug := range rg.Products {
			if p, err := a.catalog.Product(slug); err == nil {
				products = append(products, p)
			}
		}
		out = append(out, RegionCard{
			Region:    rg,
			Copy:      cp.Regions[rg.Slug],
			Customers: cp.TagList(rg.Customers),
			Products:  a.productCards(lang, cp, products),
			Active:    rg.Slug == active,
		})
	}
	return out
}

func (a *app) products(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	cp := catalog.CopyFor(lang)
	selected := catalog.Category(r.URL.Query().Get("category"))

	list := a.catalog.Products()
	if selected != "" {
		list = a.catalog.ProductsByCategory(selected)
	}
	data := ProductsData{
		Products: a.productCards(lang, cp, list),
		Categories: []CategoryLink{{
			Label:  a.bundle.T(lang, "products.all"),
			Href:   nav.Href(lang, "/products"),
			Active: selected == "",
		}},
	}
	for _, c := range []catalog.Category{catalog.CategoryBoard, catalog.CategoryContainerboard} {
		data.Categories = append(data.Categories, CategoryLink{
			Label:  cp.Categories[c],
			Href:   nav.Href(lang, "/products") + "?category=" + url.QueryEscape(string(c)),
			Active: selected == c,
		})
	}
	v := a.newView(r, "products.title", "products.description", data)
	a.renderer.Render(w, r, http.StatusOK, "products", v)
}

func (a *app) productDetail(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	slug := chi.URLParam(r, "slug")
	p, err := a.catalog.Product(slug)
	if errors.Is(err, catalog.ErrNotFound) {
		a.notFound(w, r)
		return
	}
	cp := catalog.CopyFor(lang)
	card := a.productCards(lang, cp, []catalog.Product{p})[0]

	q := r.URL.Query()
	idx, _ := strconv.Atoi(q.Get("img"))
	gallery := ui.NewGallery(productImages(p), idx)
	if z, err := strconv.ParseFloat(q.Get("zoom"), 64); err == nil {
		gallery.Zoom = max(1, min(z, 3))
	}
	image, _ := gallery.Current()

	data := ProductData{
		Card:         card,
		Applications: cp.TagList(p.Applications),
		Industries:   cp.TagList(p.Industries),
		Origins:      p.Origins,
		Gallery:      gallery,
		Image:        image,
		PrevHref:     withQuery(r.URL, "img", strconv.Itoa(gallery.Prev())),
		NextHref:     withQuery(r.URL, "img", strconv.Itoa(gallery.Next())),
		ZoomInHref:   withQuery(r.URL, "zoom", strconv.FormatFloat(gallery.ZoomIn(), 'f', 1, 64)),
		ZoomOutHref:  withQuery(r.URL, "zoom", strconv.FormatFloat(gallery.ZoomOut(), 'f', 1, 64)),
		QuoteHref:    nav.Href(lang, "/quote") + "?product=" + url.QueryEscape(p.Slug),
		ContactHref:  nav.Href(lang, "/contact") + "?product=" + url.QueryEscape(p.Slug),
	}
	props := make([][2]string, 0, len(p.Specs))
	for _, row := range p.Specs {
		data.Specs = append(data.Specs, SpecLine{Label: cp.Spec(row.Label), Value: row.Value})
		props = append(props, [2]string{cp.Spec(row.Label), row.Value})
	}
	for _, o := range a.catalog.OffersByProduct(p.Slug) {
		data.Offers = append(data.Offers, newOfferRow(lang, cp, o))
	}

	v := a.newView(r, "products.title", "products.description", data)
	v.retitle(card.Copy.Name, card.Copy.Description)
	if n := len(v.Crumbs); n > 0 {
		v.Crumbs[n-1].Label = card.Copy.Name
	}
	v.Meta.OG.Type = "product"
	v.Meta.OG.Image = seo.Absolute(a.cfg.SiteURL, p.Image)
	v.Meta.JSONLD = append(v.Meta.JSONLD, seo.Product(
		card.Copy.Name, card.Copy.Description,
		seo.Absolute(a.cfg.SiteURL, r.URL.Path),
		seo.Absolute(a.cfg.SiteURL, p.Image),
		card.Category, props,
	))
	a.renderer.Render(w, r, http.StatusOK, "product", v)
}

// productImages lists the gallery images: the product shot first, then the
// shared mill photos.
func productImages(p catalog.Product) []string {
	return []string{
		p.Image,
		"/assets/img/gallery/reels.svg",
		"/assets/img/gallery/mill.svg",
		"/assets/img/gallery/loading.svg",
	}
}

func (a *app) regions(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	data := a.regionCards(lang, catalog.CopyFor(lang), r.URL.Query().Get("region"))
	v := a.newView(r, "regions.title", "regions.description", data)
	a.renderer.Render(w, r, http.StatusOK, "regions", v)
}

// contentPage serves a markdown page. A missing page in every locale is a 404.
func (a *app) contentPage(page, slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, ok := a.loadContent(w, r, slug)
		if !ok {
			return
		}
		v := a.newView(r, page+".title", page+".description", data)
		v.retitle(data.Page.Title, data.Page.Summary)
		a.renderer.Render(w, r, http.StatusOK, "content", v)
	}
}

func (a *app) loadContent(w http.ResponseWriter, r *http.Request, slug string) (ContentData, bool) {
	lang := mw.Lang(r, a.bundle.Fallback())
	page, err := a.content.Page(slug, lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			a.notFound(w, r)
			return ContentData{}, false
		}
		observability.FromContext(r.Context()).Error("content page failed", zap.String("slug", slug), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return ContentData{}, false
	}
	open, err := strconv.Atoi(r.URL.Query().Get("faq"))
	if err != nil || open < 0 || open >= len(page.FAQ) {
		open = -1
	}
	data := ContentData{Page: page, OpenFAQ: open}
	for i := range page.FAQ {
		target := i
		if i == open {
			target = -1
		}
		data.FAQHref = append(data.FAQHref, withQuery(r.URL, "faq", strconv.Itoa(target))+"#faq-"+strconv.Itoa(i))
	}
	return data, true
}

func (a *app) services(w http.ResponseWriter, r *http.Request) {
	cd, ok := a.loadContent(w, r, "services")
	if !ok {
		return
	}
	data := ServicesData{ContentData: cd, Services: serviceKeys}
	v := a.newView(r, "services.title", "services.description", data)
	v.retitle(cd.Page.Title, cd.Page.Summary)
	a.renderer.Render(w, r, http.StatusOK, "services", v)
}

func (a *app) insights(w http.ResponseWriter, r *http.Request) {
	cd, ok := a.loadContent(w, r, "insights")
	if !ok {
		return
	}
	data := InsightsData{ContentData: cd, Indices: a.catalog.MarketIndices()}
	v := a.newView(r, "insights.title", "insights.description", data)
	v.retitle(cd.Page.Title, cd.Page.Summary)
	a.renderer.Render(w, r, http.StatusOK, "insights", v)
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) || strings.HasPrefix(r.URL.Path, "/api/") {
		httpx.WriteError(r.Context(), w, httpx.ErrNotFound)
		return
	}
	v := a.newView(r, "notFound.title", "notFound.description", nil)
	a.renderer.Render(w, r, http.StatusNotFound, "not-found", v)
}

// withQuery returns u's path and query with key set to value.
func withQuery(u *url.URL, key, value string) string {
	q := u.Query()
	if value == "" || value == "-1" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	if len(q) == 0 {
		return u.Path
	}
	return u.Path + "?" + q.Encode()
}
