package statemachine

import (
	"fmt"
	"slices"
)

// ResetEvent is reported to observers when Reset returns the machine to its
// initial state.
const ResetEvent Event = "reset"

// Machine is a finite state machine. The transition table is keyed by source
// state and event.
type Machine struct {
	initial     State
	current     State
	transitions map[State]map[Event][]Transition
	observers   []Observer
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Is reports whether the machine is in state s.
func (m *Machine) Is(s State) bool {
	return m.current == s
}

// AddTransition registers t. Transitions sharing a source and event are tried
// in registration order.
func (m *Machine) AddTransition(t Transition) error {
	if t.From == "" || t.To == "" || t.Event == "" {
		return ErrInvalidTransition
	}
	byEvent, ok := m.transitions[t.From]
	if !ok {
		byEvent = make(map[Event][]Transition)
		m.transitions[t.From] = byEvent
	}
	byEvent[t.Event] = append(byEvent[t.Event], t)
	return nil
}

// Fire takes the first transition from the current state on event whose
// guards pass. Enter hooks run in order before the state changes.
func (m *Machine) Fire(event Event, data any) error {
	if event == "" {
		return ErrInvalidEvent
	}

	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return NewErrNoTransitionAvailable(m.current, event)
	}

	idx := slices.IndexFunc(candidates, func(t Transition) bool {
		return t.allowed(event, data)
	})
	if idx < 0 {
		return NewErrTransitionRejected(m.current, event)
	}
	t := candidates[idx]

	for _, hook := range t.OnEnter {
		if hook == nil {
			continue
		}
		if err := hook(m.current, t.To, event, data); err != nil {
			return fmt.Errorf("enter %s: %w", t.To, err)
		}
	}

	m.move(t.To, event)
	return nil
}

// CanFire reports whether Fire would find an allowed transition. Hooks are
// not run.
func (m *Machine) CanFire(event Event, data any) bool {
	return slices.ContainsFunc(m.transitions[m.current][event], func(t Transition) bool {
		return t.allowed(event, data)
	})
}

// Events returns the events with at least one transition out of the current
// state, sorted by name. Guards are not consulted.
func (m *Machine) Events() []Event {
	events := make([]Event, 0, len(m.transitions[m.current]))
	for e, ts := range m.transitions[m.current] {
		if len(ts) > 0 {
			events = append(events, e)
		}
	}
	slices.Sort(events)
	return events
}

// Reset returns the machine to its initial state without running guards or
// hooks.
func (m *Machine) Reset() {
	m.move(m.initial, ResetEvent)
}

func (m *Machine) move(to State, event Event) {
	from := m.current
	m.current = to
	for _, o := range m.observers {
		o(from, to, event)
	}
}
