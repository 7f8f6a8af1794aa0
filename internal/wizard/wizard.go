// Package wizard drives a fixed, linear sequence of steps over accumulated
// input and persists that input after every change.
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrIncomplete is returned by Advance when the first step's required
	// selection is still empty.
	ErrIncomplete = errors.New("wizard: step incomplete")
	// ErrCorruptState marks a persisted payload that could not be decoded,
	// has an unknown version, or fails validation.
	ErrCorruptState = errors.New("wizard: corrupt persisted state")
)

// Config describes a wizard flow over input S producing result R.
type Config[S, R any] struct {
	// Steps lists the step ids in order. The last one is terminal.
	Steps []string
	// Version is written with every persisted payload.
	Version int
	// Defaults returns a fresh initial input.
	Defaults func() S
	// Ready guards leaving the first step. Nil means always ready.
	Ready func(S) bool
	// Validate checks restored input. Nil skips validation.
	Validate func(S) error
	// Compute derives the result when the terminal step is entered.
	Compute func(S) R
	// Store persists the input. Nil keeps state in memory only.
	Store Store
}

// Machine is a single wizard instance. It is not safe for concurrent use.
type Machine[S, R any] struct {
	cfg    Config[S, R]
	pos    int
	input  S
	result R
	hasRes bool
}

// Restore builds a machine from the persisted payload, or from defaults when
// nothing is stored. When the payload is corrupt the returned machine is
// still usable (at defaults, store cleared) and the error wraps
// ErrCorruptState.
func Restore[S, R any](cfg Config[S, R]) (*Machine[S, R], error) {
	if len(cfg.Steps) < 2 {
		return nil, errors.New("wizard: at least two steps required")
	}
	if cfg.Defaults == nil {
		return nil, errors.New("wizard: defaults required")
	}
	if cfg.Compute == nil {
		return nil, errors.New("wizard: compute required")
	}
	m := &Machine[S, R]{cfg: cfg, input: cfg.Defaults()}
	if cfg.Store == nil {
		return m, nil
	}

	env, err := cfg.Store.Load()
	if errors.Is(err, ErrNoState) {
		return m, nil
	}
	if err == nil {
		err = m.apply(env)
	}
	if err != nil {
		m.input = cfg.Defaults()
		m.pos = 0
		if clearErr := cfg.Store.Clear(); clearErr != nil {
			return m, errors.Join(err, clearErr)
		}
		if !errors.Is(err, ErrCorruptState) {
			err = fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		return m, err
	}
	return m, nil
}

func (m *Machine[S, R]) apply(env Envelope) error {
	if env.Version != m.cfg.Version {
		return fmt.Errorf("%w: version %d, want %d", ErrCorruptState, env.Version, m.cfg.Version)
	}
	input := m.cfg.Defaults()
	if len(env.Input) > 0 {
		if err := json.Unmarshal(env.Input, &input); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
	}
	if m.cfg.Validate != nil {
		if err := m.cfg.Validate(input); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
	}
	pos := 0
	if env.Step != "" {
		pos = m.indexOf(env.Step)
		if pos < 0 {
			return fmt.Errorf("%w: unknown step %q", ErrCorruptState, env.Step)
		}
	}
	m.input = input
	m.pos = pos
	if m.AtTerminal() {
		m.result = m.cfg.Compute(m.input)
		m.hasRes = true
	}
	return nil
}

func (m *Machine[S, R]) indexOf(step string) int {
	for i, s := range m.cfg.Steps {
		if s == step {
			return i
		}
	}
	return -1
}

// Step returns the current step id.
func (m *Machine[S, R]) Step() string { return m.cfg.Steps[m.pos] }

// Index returns the zero-based position of the current step.
func (m *Machine[S, R]) Index() int { return m.pos }

// Steps returns the ordered step ids.
func (m *Machine[S, R]) Steps() []string { return append([]string(nil), m.cfg.Steps...) }

// Input returns a copy of the accumulated input.
func (m *Machine[S, R]) Input() S { return m.input }

// AtStart reports whether the machine is at the initial step.
func (m *Machine[S, R]) AtStart() bool { return m.pos == 0 }

// AtTerminal reports whether the machine is at the last step.
func (m *Machine[S, R]) AtTerminal() bool { return m.pos == len(m.cfg.Steps)-1 }

// Result returns the computed result once the terminal step was entered.
func (m *Machine[S, R]) Result() (R, bool) { return m.result, m.hasRes }

// CanAdvance reports whether Advance would move forward.
func (m *Machine[S, R]) CanAdvance() bool {
	if m.AtTerminal() {
		return false
	}
	if m.pos == 0 && m.cfg.Ready != nil && !m.cfg.Ready(m.input) {
		return false
	}
	return true
}

// Update mutates the input in place and persists it. Input is frozen at the
// terminal step.
func (m *Machine[S, R]) Update(fn func(*S)) error {
	if fn == nil || m.AtTerminal() {
		return nil
	}
	fn(&m.input)
	return m.persist()
}

// Advance moves to the next step. At the terminal step it is a no-op. It
// returns ErrIncomplete when the first step's guard blocks it.
func (m *Machine[S, R]) Advance() error {
	if m.AtTerminal() {
		return nil
	}
	if !m.CanAdvance() {
		return ErrIncomplete
	}
	m.pos++
	if m.AtTerminal() {
		m.result = m.cfg.Compute(m.input)
		m.hasRes = true
	}
	return m.persist()
}

// Back moves to the previous step. It is a no-op at the initial step and at
// the terminal step, which is only left through Reset.
func (m *Machine[S, R]) Back() error {
	if m.pos == 0 || m.AtTerminal() {
		return nil
	}
	m.pos--
	return m.persist()
}

// Reset returns to the initial step with default input and clears the store.
func (m *Machine[S, R]) Reset() error {
	var zero R
	m.pos = 0
	m.input = m.cfg.Defaults()
	m.result = zero
	m.hasRes = false
	if m.cfg.Store == nil {
		return nil
	}
	return m.cfg.Store.Clear()
}

func (m *Machine[S, R]) persist() error {
	if m.cfg.Store == nil {
		return nil
	}
	raw, err := json.Marshal(m.input)
	if err != nil {
		return fmt.Errorf("wizard: encode input: %w", err)
	}
	return m.cfg.Store.Save(Envelope{
		Version: m.cfg.Version,
		Step:    m.Step(),
		Input:   raw,
	})
}
