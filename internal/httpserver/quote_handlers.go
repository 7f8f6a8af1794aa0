package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpx"
	mw "github.com/Hilal-Ahmad786/PaperWebsite/internal/middleware"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/nav"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/quote"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/toast"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
)

// QuoteData backs the quote calculator page.
type QuoteData struct {
	Step        string
	Steps       []StepLink
	Request     quote.Request
	ProductName string
	Products    []SelectOption
	GSMOptions  []SelectOption
	Incoterms   []SelectOption
	Result      quote.Result
	HasResult   bool
	BelowLoad   bool
	MinQuantity int
	MaxQuantity int
	ContactHref string
	Action      string
	AtStart     bool
	AtTerminal  bool
}

func (a *app) knownProduct(slug string) bool {
	_, err := a.catalog.Product(slug)
	return err == nil
}

func (a *app) restoreQuote(w http.ResponseWriter, r *http.Request) (*quote.Machine, bool) {
	m, err := quote.NewFlow(a.jar.Store(w, r, quote.StorageKey), a.cfg.Pricing)
	if err != nil {
		logger := observability.FromContext(r.Context())
		if m == nil {
			logger.Error("quote restore failed", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return nil, false
		}
		if errors.Is(err, wizard.ErrCorruptState) {
			logger.Warn("quote state discarded", zap.Error(err))
			a.notify(r, toast.Warning, "quote.toast.corrupt")
		} else {
			logger.Error("quote state clear failed", zap.Error(err))
		}
	}
	return m, true
}

// quotePage renders the calculator. ?product and ?quantity prefill the first
// step, as linked from stock offers and finder results.
func (a *app) quotePage(w http.ResponseWriter, r *http.Request) {
	m, ok := a.restoreQuote(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	if m.AtStart() && (q.Has("product") || q.Has("quantity")) {
		err := m.Update(func(req *quote.Request) {
			if slug := q.Get("product"); a.knownProduct(slug) {
				req.ProductSlug = slug
				req.GSM = ""
			}
			if n, err := strconv.Atoi(q.Get("quantity")); err == nil && n > 0 {
				req.Quantity = n
			}
		})
		if err != nil {
			observability.FromContext(r.Context()).Error("quote prefill failed", zap.Error(err))
		}
	}
	lang := mw.Lang(r, a.bundle.Fallback())
	v := a.newView(r, "quote.title", "quote.description", a.quoteData(lang, m))
	a.renderer.Render(w, r, http.StatusOK, "quote", v)
}

func (a *app) quoteSubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	logger := observability.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	m, ok := a.restoreQuote(w, r)
	if !ok {
		return
	}

	action := r.PostFormValue("action")
	var err error
	if action != "reset" {
		err = m.Update(func(req *quote.Request) { a.applyQuoteForm(m.Step(), r.PostForm, req) })
	}
	if err == nil {
		switch action {
		case "next":
			if m.Step() == quote.StepShipment && len(quote.Validate(m.Input(), a.knownProduct)) > 0 {
				a.notify(r, toast.Warning, "quote.toast.invalid")
				break
			}
			err = m.Advance()
		case "back":
			err = m.Back()
		case "reset":
			err = m.Reset()
		}
	}
	switch {
	case errors.Is(err, wizard.ErrIncomplete):
		a.notify(r, toast.Warning, "quote.toast.incomplete")
	case err != nil:
		logger.Error("quote update failed", zap.String("action", action), zap.Error(err))
		a.notify(r, toast.Error, "quote.toast.error")
	}
	seeOther(w, r, nav.Href(lang, "/quote"))
}

func (a *app) applyQuoteForm(step string, form url.Values, req *quote.Request) {
	switch step {
	case quote.StepProduct:
		if form.Has("product") {
			slug := form.Get("product")
			if !a.knownProduct(slug) {
				slug = ""
			}
			if slug != req.ProductSlug {
				req.GSM = ""
			}
			req.ProductSlug = slug
		}
		if form.Has("gsm") {
			req.GSM = strings.TrimSpace(form.Get("gsm"))
		}
	case quote.StepShipment:
		if form.Has("quantity") {
			n, err := strconv.Atoi(strings.TrimSpace(form.Get("quantity")))
			if err != nil {
				n = 0
			}
			req.Quantity = n
		}
		if form.Has("port") {
			req.Port = strings.TrimSpace(form.Get("port"))
		}
		if v := strings.ToUpper(form.Get("incoterm")); slices.Contains(quote.Incoterms, v) {
			req.Incoterm = v
		}
	}
}

func (a *app) quoteData(lang string, m *quote.Machine) QuoteData {
	cp := catalog.CopyFor(lang)
	req := m.Input().Normalize()
	data := QuoteData{
		Step:        m.Step(),
		Request:     req,
		ProductName: cp.ProductName(req.ProductSlug),
		BelowLoad:   req.BelowContainerLoad(),
		MinQuantity: quote.MinQuantity,
		MaxQuantity: quote.MaxQuantity,
		Action:      nav.Href(lang, "/quote"),
		AtStart:     m.AtStart(),
		AtTerminal:  m.AtTerminal(),
	}
	for i, id := range m.Steps() {
		data.Steps = append(data.Steps, StepLink{ID: id, Number: i + 1, Done: i < m.Index(), Active: i == m.Index()})
	}
	for _, p := range a.catalog.Products() {
		data.Products = append(data.Products, SelectOption{Value: p.Slug, Label: cp.ProductName(p.Slug), Selected: p.Slug == req.ProductSlug})
		if p.Slug == req.ProductSlug {
			for _, g := range quote.GSMOptions(p) {
				data.GSMOptions = append(data.GSMOptions, SelectOption{Value: g, Label: g, Selected: g == req.GSM})
			}
		}
	}
	for _, t := range quote.Incoterms {
		data.Incoterms = append(data.Incoterms, SelectOption{Value: t, Label: t, Selected: t == req.Incoterm})
	}
	data.Result, data.HasResult = m.Result()

	contact := url.Values{}
	contact.Set("product", req.ProductSlug)
	if req.Quantity > 0 {
		contact.Set("quantity", strconv.Itoa(req.Quantity))
	}
	if req.GSM != "" {
		contact.Set("gsm", req.GSM)
	}
	data.ContactHref = nav.Href(lang, "/contact") + "?" + contact.Encode()
	return data
}

type quoteResponse struct {
	Estimate           quote.Estimate `json:"estimate"`
	BelowContainerLoad bool           `json:"belowContainerLoad"`
}

type quoteErrorResponse struct {
	Error  string             `json:"error"`
	Fields []quote.FieldError `json:"fields"`
}

// quoteAPI prices a posted request.
func (a *app) quoteAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := quote.DefaultRequest()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, apiBodyLimit)).Decode(&req); err != nil {
		httpx.WriteError(ctx, w, httpx.ErrBadRequest)
		return
	}
	req = req.Normalize()
	if errs := quote.Validate(req, a.knownProduct); len(errs) > 0 {
		httpx.WriteJSON(w, http.StatusBadRequest, quoteErrorResponse{Error: "Invalid quote request", Fields: errs})
		return
	}
	est, err := a.cfg.Pricing.Estimate(req)
	if err != nil {
		observability.FromContext(ctx).Error("quote pricing failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.ErrInternal)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, quoteResponse{Estimate: est, BelowContainerLoad: req.BelowContainerLoad()})
}
