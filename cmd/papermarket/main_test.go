package main

import (
	"bytes"
	"encoding/csv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/finder"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
	"github.com/Hilal-Ahmad786/PaperWebsite/site"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestOffersCSV(t *testing.T) {
	out, err := run(t, "offers", "--origin", "Turkey", "--sort", "quantity", "--desc", "--csv")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, "Offer ID", records[0][0])
	require.Equal(t, "SO-2024-005", records[1][0])
	require.Equal(t, "SO-2024-002", records[2][0])
	require.Equal(t, "SO-2024-001", records[3][0])
}

func TestOffersTable(t *testing.T) {
	out, err := run(t, "offers", "--type", "stocklot", "--lang", "tr")
	require.NoError(t, err)
	require.Contains(t, out, "SO-2024-003")
	require.Contains(t, out, "SO-2024-006")
	require.NotContains(t, out, "SO-2024-001")

	_, err = run(t, "offers", "--type", "surplus")
	require.ErrorContains(t, err, "unknown offer type")
}

func TestQuoteCommand(t *testing.T) {
	out, err := run(t, "quote", "--product", "duplex-board", "--quantity", "100", "--port", "Jebel Ali")
	require.NoError(t, err)
	require.Contains(t, out, "$80,750")
	require.Contains(t, out, "Volume discount")
	require.Contains(t, out, "CIF Jebel Ali")

	out, err = run(t, "quote", "--product", "duplex-board", "--quantity", "10")
	require.NoError(t, err)
	require.Contains(t, out, "$8,500")
	require.Contains(t, out, "(20 tons)")

	_, err = run(t, "quote", "--product", "rockets")
	require.ErrorContains(t, err, "productSlug unknown")

	_, err = run(t, "quote")
	require.Error(t, err)
}

func press(t *testing.T, m finderModel, msgs ...tea.KeyMsg) finderModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(finderModel)
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyBack  = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestFinder(t *testing.T, store wizard.Store) finderModel {
	t.Helper()
	bundle, err := i18n.Load(site.Locales(), ".", "en", supportedLocales)
	require.NoError(t, err)
	machine, err := finder.New(store, finder.NewStaticRecommender(catalog.Default()))
	require.NoError(t, err)
	return newFinderModel(machine, bundle, "en")
}

func TestFinderModelWalksTheSteps(t *testing.T) {
	m := newTestFinder(t, wizard.NewMemoryStore())

	m = press(t, m, keyEnter)
	require.Equal(t, finder.StepApplication, m.machine.Step())
	require.Contains(t, m.View(), "Please choose an application first.")

	m = press(t, m, keySpace, keyEnter)
	require.Equal(t, "fmcg", m.machine.Input().Application)
	require.Equal(t, finder.StepSpecs, m.machine.Step())

	m = press(t, m, keyRight, keyRight)
	require.Equal(t, [2]int{120, 400}, m.machine.Input().GSMRange)

	m = press(t, m, keyBack)
	require.Equal(t, finder.StepApplication, m.machine.Step())

	// Turkey is the first origin option.
	m = press(t, m, keyEnter, keyEnter, keySpace, keyEnter)
	require.Equal(t, finder.StepResults, m.machine.Step())
	require.Equal(t, []string{"Turkey"}, m.machine.Input().Origins)

	products, ok := m.machine.Result()
	require.True(t, ok)
	require.NotEmpty(t, products)
	require.Equal(t, "duplex-board", products[0].Slug)
	require.Contains(t, m.View(), "duplex-board")
}

func TestFinderModelCursorStaysInRange(t *testing.T) {
	m := newTestFinder(t, wizard.NewMemoryStore())
	for range 10 {
		m = press(t, m, keyDown)
	}
	require.Equal(t, len(finder.Applications)-1, m.cursor)

	m = press(t, m, keySpace)
	require.Equal(t, finder.Applications[len(finder.Applications)-1], m.machine.Input().Application)
}

func TestFinderSelectionSurvivesRestart(t *testing.T) {
	store := wizard.NewFileStore(t.TempDir(), finder.StorageKey)

	m := newTestFinder(t, store)
	press(t, m, keySpace, keyEnter)

	restored := newTestFinder(t, store)
	require.Equal(t, "fmcg", restored.machine.Input().Application)
	require.Equal(t, finder.StepSpecs, restored.machine.Step())
}
