package httpserver

import (
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	mw "github.com/Hilal-Ahmad786/PaperWebsite/internal/middleware"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/nav"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/ui"
)

// OfferRow is a stock offer with localized labels and action links.
type OfferRow struct {
	Offer       catalog.StockOffer
	ProductName string
	TypeLabel   string
	DetailHref  string
	ContactHref string
	QuoteHref   string
}

func newOfferRow(lang string, cp catalog.Copy, o catalog.StockOffer) OfferRow {
	contact := url.Values{}
	contact.Set("offerId", o.ID)
	contact.Set("product", o.ProductSlug)
	contact.Set("quantity", strconv.Itoa(o.QuantityTons))
	quote := url.Values{}
	quote.Set("product", o.ProductSlug)
	quote.Set("quantity", strconv.Itoa(o.QuantityTons))
	return OfferRow{
		Offer:       o,
		ProductName: cp.ProductName(o.ProductSlug),
		TypeLabel:   cp.OfferType(o.Type),
		DetailHref:  nav.Href(lang, "/stock-offers") + "?offer=" + url.QueryEscape(o.ID),
		ContactHref: nav.Href(lang, "/contact") + "?" + contact.Encode(),
		QuoteHref:   nav.Href(lang, "/quote") + "?" + quote.Encode(),
	}
}

// offerColumns are the stock table columns, in display order.
var offerColumns = []ui.Column{
	{Key: "id", LabelKey: "offers.col.id", Sortable: true},
	{Key: "grade", LabelKey: "offers.col.grade", Sortable: true},
	{Key: "product", LabelKey: "offers.col.product", Sortable: true},
	{Key: "gsm", LabelKey: "offers.col.gsm"},
	{Key: "origin", LabelKey: "offers.col.origin", Sortable: true},
	{Key: "quantity", LabelKey: "offers.col.quantity", Sortable: true},
	{Key: "port", LabelKey: "offers.col.port", Sortable: true},
	{Key: "availability", LabelKey: "offers.col.availability"},
	{Key: "type", LabelKey: "offers.col.type", Sortable: true},
	{Key: "updated", LabelKey: "offers.col.updated", Sortable: true},
}

func offerTable() ui.Table[OfferRow] {
	return ui.Table[OfferRow]{
		Columns: offerColumns,
		Value: func(row OfferRow, key string) string {
			o := row.Offer
			switch key {
			case "id":
				return o.ID
			case "grade":
				return o.GradeName
			case "product":
				return row.ProductName
			case "gsm":
				return o.GSMRange
			case "origin":
				return o.Origin
			case "quantity":
				return strconv.Itoa(o.QuantityTons)
			case "port":
				return o.Port
			case "availability":
				return o.Availability
			case "type":
				return row.TypeLabel
			case "updated":
				return o.UpdatedAt.Format("2006-01-02")
			}
			return ""
		},
	}
}

// SelectOption is one entry of a filter dropdown.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// HeaderLink is a sortable column header.
type HeaderLink struct {
	Label    string
	Href     string
	Sortable bool
	Active   bool
	Desc     bool
}

// OffersData backs the stock offers page.
type OffersData struct {
	Products  []SelectOption
	Origins   []SelectOption
	Types     []SelectOption
	Filtered  bool
	Query     string
	Headers   []HeaderLink
	Table     ui.TableView[OfferRow]
	PrevHref  string
	NextHref  string
	ClearHref string
	CSVHref   string
	Selected  *OfferRow
	CloseHref string
}

// offerFilter reads product, origin and type from the query.
func offerFilter(q url.Values) catalog.OfferFilter {
	f := catalog.OfferFilter{
		Product: q.Get("product"),
		Origin:  q.Get("origin"),
		Type:    catalog.OfferType(q.Get("type")),
	}
	if !f.Type.Valid() {
		f.Type = ""
	}
	return f
}

func (a *app) offerRows(lang string, cp catalog.Copy, f catalog.OfferFilter) []OfferRow {
	offers := a.catalog.FilterOffers(f)
	rows := make([]OfferRow, 0, len(offers))
	for _, o := range offers {
		rows = append(rows, newOfferRow(lang, cp, o))
	}
	return rows
}

func (a *app) stockOffers(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	cp := catalog.CopyFor(lang)
	q := r.URL.Query()
	f := offerFilter(q)

	table := offerTable()
	state := ui.ParseTableState(q)
	view := table.Apply(a.offerRows(lang, cp, f), state)

	base := filterValues(f)
	data := OffersData{
		Filtered:  !f.IsZero() || state.Query != "",
		Query:     state.Query,
		Table:     view,
		ClearHref: r.URL.Path,
		CSVHref:   nav.Href(lang, "/stock-offers.csv") + encodeQuery(view.State.Values(base)),
		CloseHref: r.URL.Path + encodeQuery(view.State.Values(base)),
	}
	for _, slug := range a.catalog.OfferProducts() {
		data.Products = append(data.Products, SelectOption{Value: slug, Label: cp.ProductName(slug), Selected: slug == f.Product})
	}
	for _, o := range a.catalog.OfferOrigins() {
		data.Origins = append(data.Origins, SelectOption{Value: o, Label: o, Selected: o == f.Origin})
	}
	for _, t := range a.catalog.OfferTypes() {
		data.Types = append(data.Types, SelectOption{Value: string(t), Label: cp.OfferType(t), Selected: t == f.Type})
	}
	for _, c := range view.Columns {
		h := HeaderLink{Label: a.bundle.T(lang, c.LabelKey), Sortable: c.Sortable, Active: c.Active, Desc: c.Desc}
		if c.Sortable {
			h.Href = r.URL.Path + encodeQuery(c.State.Values(base))
		}
		data.Headers = append(data.Headers, h)
	}
	if view.HasPrev() {
		data.PrevHref = r.URL.Path + encodeQuery(view.State.WithPage(view.Page-1).Values(base))
	}
	if view.HasNext() {
		data.NextHref = r.URL.Path + encodeQuery(view.State.WithPage(view.Page+1).Values(base))
	}
	if id := q.Get("offer"); id != "" {
		if o, err := a.catalog.Offer(id); err == nil {
			row := newOfferRow(lang, cp, o)
			data.Selected = &row
		}
	}

	v := a.newView(r, "offers.title", "offers.description", data)
	a.renderer.Render(w, r, http.StatusOK, "stock-offers", v)
}

// stockOffersCSV exports the filtered and sorted offers, ignoring pagination.
func (a *app) stockOffersCSV(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	cp := catalog.CopyFor(lang)
	q := r.URL.Query()

	table := offerTable()
	rows := table.Process(a.offerRows(lang, cp, offerFilter(q)), ui.ParseTableState(q))
	header := make([]string, 0, len(offerColumns))
	for _, c := range offerColumns {
		header = append(header, a.bundle.T(lang, c.LabelKey))
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="stock-offers.csv"`)
	if err := table.WriteCSV(w, header, rows); err != nil {
		observability.FromContext(r.Context()).Error("stock offers csv failed", zap.Error(err))
	}
}

func filterValues(f catalog.OfferFilter) url.Values {
	v := url.Values{}
	if f.Product != "" {
		v.Set("product", f.Product)
	}
	if f.Origin != "" {
		v.Set("origin", f.Origin)
	}
	if f.Type != "" {
		v.Set("type", string(f.Type))
	}
	return v
}

func encodeQuery(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
