package diagram

import "fmt"

// Terminal is the pseudo-state used for initial and final transitions.
const Terminal = "[*]"

// Transition moves the machine from one state to another.
type Transition struct {
	From  string
	To    string
	Label string
}

// StateMachine is a state diagram. States are declared explicitly so that a
// typo in a transition is caught by Validate.
type StateMachine struct {
	States      []string
	Transitions []Transition
}

// Validate checks that every transition endpoint is a declared state or the
// terminal pseudo-state.
func (m *StateMachine) Validate() error {
	known := map[string]bool{Terminal: true}
	for _, s := range m.States {
		if known[s] {
			return fmt.Errorf("state machine: duplicate state %q", s)
		}
		known[s] = true
	}
	for _, t := range m.Transitions {
		if !known[t.From] || !known[t.To] {
			return fmt.Errorf("state machine: transition %s->%s references unknown state", t.From, t.To)
		}
	}
	return nil
}

// StateBuilder assembles a StateMachine.
type StateBuilder struct {
	m StateMachine
}

// NewStateMachine starts a machine with the given states.
func NewStateMachine(states ...string) *StateBuilder {
	return &StateBuilder{m: StateMachine{States: append([]string(nil), states...)}}
}

// Initial adds the transition from the terminal pseudo-state to s.
func (b *StateBuilder) Initial(s string) *StateBuilder {
	return b.On(Terminal, s, "")
}

// Go adds an unlabelled transition.
func (b *StateBuilder) Go(from, to string) *StateBuilder {
	return b.On(from, to, "")
}

// On adds a labelled transition.
func (b *StateBuilder) On(from, to, label string) *StateBuilder {
	b.m.Transitions = append(b.m.Transitions, Transition{From: from, To: to, Label: label})
	return b
}

// Build validates and returns the machine.
func (b *StateBuilder) Build() (*StateMachine, error) {
	m := StateMachine{
		States:      append([]string(nil), b.m.States...),
		Transitions: append([]Transition(nil), b.m.Transitions...),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// MustBuild panics on validation errors.
func (b *StateBuilder) MustBuild() *StateMachine {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
