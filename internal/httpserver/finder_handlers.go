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
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/finder"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/httpx"
	mw "github.com/Hilal-Ahmad786/PaperWebsite/internal/middleware"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/nav"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/toast"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
)

const apiBodyLimit = 64 << 10

// StepLink is one entry of a wizard progress bar.
type StepLink struct {
	ID     string
	Number int
	Done   bool
	Active bool
}

// Choice is a selectable option with its localized label.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// FinderMatch is a recommended product with follow-up links.
type FinderMatch struct {
	ProductCard
	ContactHref string
	QuoteHref   string
}

// FinderData backs the product finder page.
type FinderData struct {
	Step         string
	Steps        []StepLink
	Input        finder.Input
	Applications []Choice
	Grades       []Choice
	Origins      []Choice
	Budgets      []Choice
	MinGSM       int
	MaxGSM       int
	CanAdvance   bool
	AtStart      bool
	AtTerminal   bool
	Matches      []FinderMatch
	Action       string
}

// restoreFinder loads the finder from its cookie. Corrupt state is logged,
// cleared and reported to the visitor with a warning toast.
func (a *app) restoreFinder(w http.ResponseWriter, r *http.Request) (*finder.Machine, bool) {
	m, err := finder.New(a.jar.Store(w, r, finder.StorageKey), a.cfg.Recommender)
	if err != nil {
		logger := observability.FromContext(r.Context())
		if m == nil {
			logger.Error("finder restore failed", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return nil, false
		}
		if errors.Is(err, wizard.ErrCorruptState) {
			logger.Warn("finder state discarded", zap.Error(err))
			a.notify(r, toast.Warning, "finder.toast.corrupt")
		} else {
			logger.Error("finder state clear failed", zap.Error(err))
		}
	}
	return m, true
}

func (a *app) finderPage(w http.ResponseWriter, r *http.Request) {
	m, ok := a.restoreFinder(w, r)
	if !ok {
		return
	}
	lang := mw.Lang(r, a.bundle.Fallback())
	v := a.newView(r, "finder.title", "finder.description", a.finderData(lang, m))
	a.renderer.Render(w, r, http.StatusOK, "finder", v)
}

func (a *app) finderSubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, a.bundle.Fallback())
	logger := observability.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	m, ok := a.restoreFinder(w, r)
	if !ok {
		return
	}

	action := r.PostFormValue("action")
	var err error
	if action != "reset" {
		err = m.Update(func(in *finder.Input) { applyFinderForm(m.Step(), r.PostForm, in) })
	}
	if err == nil {
		switch action {
		case "next":
			err = m.Advance()
		case "back":
			err = m.Back()
		case "reset":
			err = m.Reset()
		}
	}
	switch {
	case errors.Is(err, wizard.ErrIncomplete):
		a.notify(r, toast.Warning, "finder.toast.incomplete")
	case err != nil:
		logger.Error("finder update failed", zap.String("action", action), zap.Error(err))
		a.notify(r, toast.Error, "finder.toast.error")
	}
	seeOther(w, r, nav.Href(lang, "/finder"))
}

// applyFinderForm copies the fields of step from form into in. Fields of
// other steps are left untouched. A "toggle" value of the form list:value
// flips one grade or origin.
func applyFinderForm(step string, form url.Values, in *finder.Input) {
	switch step {
	case finder.StepApplication:
		if v := form.Get("application"); slices.Contains(finder.Applications, v) {
			in.Application = v
		}
	case finder.StepSpecs:
		if form.Has("gsm_min") || form.Has("gsm_max") {
			lo, errLo := strconv.Atoi(form.Get("gsm_min"))
			hi, errHi := strconv.Atoi(form.Get("gsm_max"))
			if errLo != nil {
				lo = in.GSMRange[0]
			}
			if errHi != nil {
				hi = in.GSMRange[1]
			}
			in.GSMRange = finder.ClampGSM(lo, hi)
		}
		if v := form.Get("budget"); slices.Contains(finder.Budgets, v) {
			in.Budget = v
		}
		if list, value, ok := strings.Cut(form.Get("toggle"), ":"); ok && list == "grades" && slices.Contains(finder.Grades, value) {
			in.Grades = finder.Toggle(in.Grades, value)
		}
	case finder.StepOrigin:
		if list, value, ok := strings.Cut(form.Get("toggle"), ":"); ok && list == "origins" && slices.Contains(finder.Origins, value) {
			in.Origins = finder.Toggle(in.Origins, value)
		}
	}
}

func (a *app) finderData(lang string, m *finder.Machine) FinderData {
	in := m.Input()
	data := FinderData{
		Step:       m.Step(),
		Input:      in,
		MinGSM:     finder.MinGSM,
		MaxGSM:     finder.MaxGSM,
		CanAdvance: m.CanAdvance(),
		AtStart:    m.AtStart(),
		AtTerminal: m.AtTerminal(),
		Action:     nav.Href(lang, "/finder"),
	}
	for i, id := range m.Steps() {
		data.Steps = append(data.Steps, StepLink{ID: id, Number: i + 1, Done: i < m.Index(), Active: i == m.Index()})
	}
	cp := catalog.CopyFor(lang)
	for _, v := range finder.Applications {
		data.Applications = append(data.Applications, Choice{Value: v, Label: cp.Tag(v), Selected: v == in.Application})
	}
	for _, v := range finder.Grades {
		data.Grades = append(data.Grades, Choice{Value: v, Label: a.bundle.T(lang, "finder.grade."+v), Selected: slices.Contains(in.Grades, v)})
	}
	for _, v := range finder.Origins {
		data.Origins = append(data.Origins, Choice{Value: v, Label: a.bundle.T(lang, "finder.origin."+v), Selected: slices.Contains(in.Origins, v)})
	}
	for _, v := range finder.Budgets {
		data.Budgets = append(data.Budgets, Choice{Value: v, Label: a.bundle.T(lang, "finder.budget."+v), Selected: v == in.Budget})
	}
	if products, ok := m.Result(); ok {
		data.Matches = a.finderMatches(lang, cp, products)
	}
	return data
}

func (a *app) finderMatches(lang string, cp catalog.Copy, products []catalog.Product) []FinderMatch {
	out := make([]FinderMatch, 0, len(products))
	for _, card := range a.productCards(lang, cp, products) {
		q := url.Values{"product": {card.Product.Slug}}
		out = append(out, FinderMatch{
			ProductCard: card,
			ContactHref: nav.Href(lang, "/contact") + "?" + q.Encode(),
			QuoteHref:   nav.Href(lang, "/quote") + "?" + q.Encode(),
		})
	}
	return out
}

type finderMatchJSON struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	Image   string `json:"image"`
	URL     string `json:"url"`
}

type finderMatchesResponse struct {
	Matches []finderMatchJSON `json:"matches"`
}

// finderMatchesAPI recommends products for a posted finder selection.
// Missing lists and budget take the finder defaults.
func (a *app) finderMatchesAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := finder.Defaults()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, apiBodyLimit)).Decode(&in); err != nil {
		httpx.WriteError(ctx, w, httpx.ErrBadRequest)
		return
	}
	if in.Grades == nil {
		in.Grades = []string{}
	}
	if in.Origins == nil {
		in.Origins = []string{}
	}
	in.GSMRange = finder.ClampGSM(in.GSMRange[0], in.GSMRange[1])
	if err := finder.Validate(in); err != nil {
		observability.FromContext(ctx).Info("finder selection rejected", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError(err.Error(), http.StatusBadRequest))
		return
	}

	lang := a.apiLang(r)
	cp := catalog.CopyFor(lang)
	resp := finderMatchesResponse{Matches: []finderMatchJSON{}}
	for _, p := range a.cfg.Recommender.Recommend(in) {
		pc := productCopy(cp, p.Slug)
		resp.Matches = append(resp.Matches, finderMatchJSON{
			Slug:    p.Slug,
			Name:    pc.Name,
			Tagline: pc.Tagline,
			Image:   p.Image,
			URL:     nav.Href(lang, "/products/"+p.Slug),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// apiLang picks the locale for API responses: ?lang, then Accept-Language.
func (a *app) apiLang(r *http.Request) string {
	if l := strings.ToLower(r.URL.Query().Get("lang")); a.bundle.IsSupported(l) {
		return l
	}
	return a.bundle.Resolve(r.Header.Get("Accept-Language"))
}
