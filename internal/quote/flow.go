package quote

import (
	"strings"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
)

// StorageKey is the cookie name the quote flow is persisted under.
const StorageKey = "quoteCalculatorState"

// Result is what the estimate step shows.
type Result struct {
	Estimate Estimate
	OK       bool
}

// Machine is the quote wizard.
type Machine = wizard.Machine[Request, Result]

// NewFlow restores a quote wizard. Only the product step is guarded.
func NewFlow(store wizard.Store, engine PricingEngine) (*Machine, error) {
	if engine == nil {
		engine = NewMockPricingEngine(DefaultBaseRate)
	}
	return wizard.Restore(wizard.Config[Request, Result]{
		Steps:    Steps,
		Version:  1,
		Defaults: DefaultRequest,
		Ready:    func(r Request) bool { return strings.TrimSpace(r.ProductSlug) != "" },
		Compute: func(r Request) Result {
			est, err := engine.Estimate(r)
			return Result{Estimate: est, OK: err == nil}
		},
		Store: store,
	})
}

// GSMOptions returns the selectable GSM values for a product, taken from its
// GSM range spec split on commas.
func GSMOptions(p catalog.Product) []string {
	v, ok := p.Spec(catalog.SpecGSMRange)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
