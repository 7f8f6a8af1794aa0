package httpserver

import (
	"errors"
	"net"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/contact"
	mw "github.com/Hilal-Ahmad786/PaperWebsite/internal/middleware"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/nav"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/toast"
)

// ContactData backs the contact page and its form.
type ContactData struct {
	Form       contact.Submission
	Missing    []string
	Sent       bool
	Failed     bool
	Products   []SelectOption
	Offer      *OfferRow
	SalesEmail string
	Action     string
}

// HasError reports whether field was left empty on the last post.
func (d ContactData) HasError(field string) bool { return slices.Contains(d.Missing, field) }

// contactPage renders the form, prefilled from ?product, ?offerId and ?quantity.
func (a *app) contactPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := contact.Submission{
		Product:  q.Get("product"),
		OfferID:  q.Get("offerId"),
		Quantity: q.Get("quantity"),
		GSMRange: q.Get("gsm"),
	}
	a.renderContact(w, r, http.StatusOK, ContactData{Form: form, Sent: q.Get("sent") == "1"})
}

func (a *app) contactSubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	logger := observability.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, contact.DefaultBodyLimit)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := contact.Submission{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Message:         r.PostFormValue("message"),
		Company:         r.PostFormValue("company"),
		Phone:           r.PostFormValue("phone"),
		Country:         r.PostFormValue("country"),
		Product:         r.PostFormValue("product"),
		GSMRange:        r.PostFormValue("gsmRange"),
		Quantity:        r.PostFormValue("quantity"),
		DestinationPort: r.PostFormValue("destinationPort"),
		OfferID:         r.PostFormValue("offerId"),
	}

	if a.cfg.ContactLimiter != nil && !a.cfg.ContactLimiter.Allow(remoteHost(r)) {
		logger.Warn("contact form rate limited")
		a.notify(r, toast.Warning, "contact.toast.rateLimited")
		a.renderContact(w, r, http.StatusTooManyRequests, ContactData{Form: form})
		return
	}

	receipt, err := a.cfg.Contact.Submit(r.Context(), form)
	switch {
	case errors.Is(err, contact.ErrMissingFields):
		a.renderContact(w, r, http.StatusBadRequest, ContactData{Form: form, Missing: form.Missing()})
		return
	case err != nil:
		logger.Error("contact form delivery failed", zap.Error(err))
		a.notify(r, toast.Error, "contact.toast.error")
		a.renderContact(w, r, http.StatusInternalServerError, ContactData{Form: form, Failed: true})
		return
	}

	logger.Info("contact form accepted", zap.String("submission_id", receipt.ID))
	a.notify(r, toast.Success, "contact.toast.success")
	seeOther(w, r, nav.Href(lang, "/contact")+"?sent=1")
}

func (a *app) renderContact(w http.ResponseWriter, r *http.Request, status int, data ContactData) {
	lang := mw.Lang(r, a.bundle.Fallback())
	cp := catalog.CopyFor(lang)
	data.SalesEmail = a.cfg.SalesEmail
	data.Action = nav.Href(lang, "/contact")
	for _, p := range a.catalog.Products() {
		data.Products = append(data.Products, SelectOption{Value: p.Slug, Label: cp.ProductName(p.Slug), Selected: p.Slug == data.Form.Product})
	}
	if data.Form.OfferID != "" {
		if o, err := a.catalog.Offer(data.Form.OfferID); err == nil {
			row := newOfferRow(lang, cp, o)
			data.Offer = &row
		}
	}
	v := a.newView(r, "contact.title", "contact.description", data)
	a.renderer.Render(w, r, status, "contact", v)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
