package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/finder"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/i18n"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
)

const gsmStep = 10

type finderKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Next   key.Binding
	Back   key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

var finderKeys = finderKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "gsm -10")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "gsm +10")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Next:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "start over")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

func (k finderKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Next, k.Back, k.Reset, k.Quit}
}

func (k finderKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.Toggle, k.Next, k.Back, k.Reset, k.Quit}}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f766e"))
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	activeStep    = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f766e")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d"))
)

// choice is one selectable line on the current step.
type choice struct {
	kind  string
	value string
}

type finderModel struct {
	machine *finder.Machine
	bundle  *i18n.Bundle
	lang    string
	help    help.Model

	cursor   int
	status   string
	quitting bool
}

func newFinderModel(m *finder.Machine, bundle *i18n.Bundle, lang string) finderModel {
	return finderModel{machine: m, bundle: bundle, lang: lang, help: help.New()}
}

func (m finderModel) Init() tea.Cmd { return nil }

func (m finderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m finderModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := m.choices()
	switch {
	case key.Matches(msg, finderKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, finderKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, finderKeys.Down):
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
	case key.Matches(msg, finderKeys.Toggle):
		if m.cursor < len(choices) {
			m.setErr(m.machine.Update(func(in *finder.Input) { selectChoice(in, choices[m.cursor]) }))
		}
	case key.Matches(msg, finderKeys.Left), key.Matches(msg, finderKeys.Right):
		delta := gsmStep
		if key.Matches(msg, finderKeys.Left) {
			delta = -gsmStep
		}
		if m.cursor < len(choices) {
			m.setErr(m.machine.Update(func(in *finder.Input) { nudgeGSM(in, choices[m.cursor], delta) }))
		}
	case key.Matches(msg, finderKeys.Next):
		err := m.machine.Advance()
		if errors.Is(err, wizard.ErrIncomplete) {
			m.status = m.bundle.T(m.lang, "finder.toast.incomplete")
			return m, nil
		}
		m.setErr(err)
		m.cursor = 0
	case key.Matches(msg, finderKeys.Back):
		m.setErr(m.machine.Back())
		m.cursor = 0
	case key.Matches(msg, finderKeys.Reset):
		m.setErr(m.machine.Reset())
		m.cursor = 0
	}
	return m, nil
}

func (m *finderModel) setErr(err error) {
	m.status = ""
	if err != nil {
		m.status = m.bundle.T(m.lang, "finder.toast.error")
	}
}

// choices lists the selectable lines of the current step.
func (m finderModel) choices() []choice {
	var out []choice
	switch m.machine.Step() {
	case finder.StepApplication:
		for _, a := range finder.Applications {
			out = append(out, choice{kind: "application", value: a})
		}
	case finder.StepSpecs:
		out = append(out, choice{kind: "gsm", value: "min"}, choice{kind: "gsm", value: "max"})
		for _, g := range finder.Grades {
			out = append(out, choice{kind: "grade", value: g})
		}
		for _, b := range finder.Budgets {
			out = append(out, choice{kind: "budget", value: b})
		}
	case finder.StepOrigin:
		for _, o := range finder.Origins {
			out = append(out, choice{kind: "origin", value: o})
		}
	}
	return out
}

func selectChoice(in *finder.Input, c choice) {
	switch c.kind {
	case "application":
		in.Application = c.value
	case "grade":
		in.Grades = finder.Toggle(in.Grades, c.value)
	case "origin":
		in.Origins = finder.Toggle(in.Origins, c.value)
	case "budget":
		in.Budget = c.value
	}
}

func nudgeGSM(in *finder.Input, c choice, delta int) {
	if c.kind != "gsm" {
		return
	}
	lo, hi := in.GSMRange[0], in.GSMRange[1]
	if c.value == "min" {
		lo = min(lo+delta, hi)
	} else {
		hi = max(hi+delta, lo)
	}
	in.GSMRange = finder.ClampGSM(lo, hi)
}

func (m finderModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.bundle.T(m.lang, "finder.title")))
	b.WriteString("\n")

	steps := make([]string, 0, len(finder.Steps))
	for i, s := range m.machine.Steps() {
		label := fmt.Sprintf("%d. %s", i+1, m.bundle.T(m.lang, "finder.step."+s))
		if i == m.machine.Index() {
			label = activeStep.Render(label)
		}
		steps = append(steps, label)
	}
	b.WriteString(stepStyle.Render(strings.Join(steps, "  ")))
	b.WriteString("\n\n")

	if m.machine.AtTerminal() {
		m.viewResults(&b)
	} else {
		m.viewChoices(&b)
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(finderKeys))
	b.WriteString("\n")
	return b.String()
}

func (m finderModel) viewChoices(b *strings.Builder) {
	in := m.machine.Input()
	switch m.machine.Step() {
	case finder.StepApplication:
		b.WriteString(m.bundle.T(m.lang, "finder.application.question") + "\n")
	case finder.StepOrigin:
		b.WriteString(m.bundle.T(m.lang, "finder.origin.question") + "\n")
		b.WriteString(stepStyle.Render(m.bundle.T(m.lang, "finder.origin.hint")) + "\n")
	}
	for i, c := range m.choices() {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		b.WriteString(pointer + m.choiceLine(in, c) + "\n")
	}
}

func (m finderModel) choiceLine(in finder.Input, c choice) string {
	mark := func(on bool, label string) string {
		if on {
			return selectedStyle.Render("[x] " + label)
		}
		return "[ ] " + label
	}
	switch c.kind {
	case "application":
		return mark(in.Application == c.value, catalog.CopyFor(m.lang).Tag(c.value))
	case "grade":
		return mark(slices.Contains(in.Grades, c.value), m.bundle.T(m.lang, "finder.grade."+c.value))
	case "origin":
		return mark(slices.Contains(in.Origins, c.value), m.bundle.T(m.lang, "finder.origin."+c.value))
	case "budget":
		return mark(in.Budget == c.value, m.bundle.T(m.lang, "finder.specs.budget")+": "+m.bundle.T(m.lang, "finder.budget."+c.value))
	case "gsm":
		if c.value == "min" {
			return fmt.Sprintf("%s %s: %d", m.bundle.T(m.lang, "finder.specs.gsm"), m.bundle.T(m.lang, "finder.specs.min"), in.GSMRange[0])
		}
		return fmt.Sprintf("%s %s: %d", m.bundle.T(m.lang, "finder.specs.gsm"), m.bundle.T(m.lang, "finder.specs.max"), in.GSMRange[1])
	}
	return c.value
}

func (m finderModel) viewResults(b *strings.Builder) {
	b.WriteString(m.bundle.T(m.lang, "finder.results.title") + "\n")
	products, _ := m.machine.Result()
	cp := catalog.CopyFor(m.lang)
	for _, p := range products {
		b.WriteString("  • " + cp.ProductName(p.Slug) + stepStyle.Render("  ("+p.Slug+")") + "\n")
	}
	b.WriteString(stepStyle.Render(m.bundle.T(m.lang, "finder.results.hint")) + "\n")
}
