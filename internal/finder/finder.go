// Package finder implements the product finder flow: application, specs,
// origin, then a short list of matching grades.
package finder

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
)

// StorageKey is the fixed name the finder state is persisted under.
const StorageKey = "productFinderState"

// SchemaVersion is bumped whenever Input changes shape.
const SchemaVersion = 1

const (
	StepApplication = "application"
	StepSpecs       = "specs"
	StepOrigin      = "origin"
	StepResults     = "results"
)

// Steps is the finder's step order.
var Steps = []string{StepApplication, StepSpecs, StepOrigin, StepResults}

const (
	MinGSM = 100
	MaxGSM = 600
)

// Budget tiers.
const (
	BudgetEconomy  = "economy"
	BudgetStandard = "standard"
	BudgetPremium  = "premium"
)

// Applications lists the selectable application tags.
var Applications = []string{"fmcg", "pharma", "ecommerce", "industrial"}

// Grades lists the selectable grade tags.
var Grades = []string{"Virgin", "Recycled", "Mixed", "Coated", "Uncoated"}

// Origins lists the selectable origin options.
var Origins = []string{"Turkey", "Europe", "Asia", "USA"}

// Budgets lists the budget tiers.
var Budgets = []string{BudgetEconomy, BudgetStandard, BudgetPremium}

// originCountries maps an origin option to the product origin names it covers.
var originCountries = map[string][]string{
	"Turkey": {"Turkey"},
	"Europe": {"EU", "Nordic"},
	"Asia":   {"India", "China"},
	"USA":    {"USA"},
}

// Input is the accumulated finder selection.
type Input struct {
	Application string   `json:"application"`
	GSMRange    [2]int   `json:"gsmRange"`
	Grades      []string `json:"grades"`
	Origins     []string `json:"origins"`
	Budget      string   `json:"budget"`
}

// Defaults returns the initial finder input.
func Defaults() Input {
	return Input{
		Application: "",
		GSMRange:    [2]int{100, 400},
		Grades:      []string{},
		Origins:     []string{},
		Budget:      BudgetStandard,
	}
}

// Ready reports whether the application step has a selection.
func Ready(in Input) bool {
	return strings.TrimSpace(in.Application) != ""
}

// Validate checks a restored input against the known option sets.
func Validate(in Input) error {
	var problems []string
	if in.Application != "" && !slices.Contains(Applications, in.Application) {
		problems = append(problems, "application "+in.Application)
	}
	lo, hi := in.GSMRange[0], in.GSMRange[1]
	if lo < MinGSM || hi > MaxGSM || lo > hi {
		problems = append(problems, fmt.Sprintf("gsm range %d-%d", lo, hi))
	}
	if in.Grades == nil || in.Origins == nil {
		problems = append(problems, "missing lists")
	}
	for _, g := range in.Grades {
		if !slices.Contains(Grades, g) {
			problems = append(problems, "grade "+g)
		}
	}
	for _, o := range in.Origins {
		if !slices.Contains(Origins, o) {
			problems = append(problems, "origin "+o)
		}
	}
	if !slices.Contains(Budgets, in.Budget) {
		problems = append(problems, "budget "+in.Budget)
	}
	if len(problems) > 0 {
		return errors.New("finder: invalid " + strings.Join(problems, ", "))
	}
	return nil
}

// Toggle adds v to list when absent and removes it when present.
func Toggle(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), v)
}

// ClampGSM orders and bounds a GSM range.
func ClampGSM(lo, hi int) [2]int {
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = max(MinGSM, min(lo, MaxGSM))
	hi = max(MinGSM, min(hi, MaxGSM))
	return [2]int{lo, hi}
}

// Machine is the finder wizard.
type Machine = wizard.Machine[Input, []catalog.Product]

// New restores a finder wizard backed by store. A nil recommender uses the
// static one over catalog.Default. The returned error may wrap
// wizard.ErrCorruptState while the machine is still usable.
func New(store wizard.Store, rec Recommender) (*Machine, error) {
	if rec == nil {
		rec = NewStaticRecommender(catalog.Default())
	}
	return wizard.Restore(wizard.Config[Input, []catalog.Product]{
		Steps:    Steps,
		Version:  SchemaVersion,
		Defaults: Defaults,
		Ready:    Ready,
		Validate: Validate,
		Compute:  rec.Recommend,
		Store:    store,
	})
}
