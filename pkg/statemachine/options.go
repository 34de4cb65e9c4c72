package statemachine

import (
	"errors"
	"fmt"
)

// Option configures a Machine during construction.
type Option func(*Machine) error

// TransitionOption configures a single transition.
type TransitionOption func(*Transition)

// New creates a machine in the initial state.
func New(initial State, opts ...Option) (*Machine, error) {
	if initial == "" {
		return nil, errors.New("initial state cannot be empty")
	}

	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[State]map[Event][]Transition),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New that panics when an option fails.
func MustNew(initial State, opts ...Option) *Machine {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithTransition adds a transition from one state to another on event.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *Machine) error {
		t := Transition{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return m.AddTransition(t)
	}
}

// WithTransitions adds every transition in order.
func WithTransitions(transitions []Transition) Option {
	return func(m *Machine) error {
		for i, t := range transitions {
			if err := m.AddTransition(t); err != nil {
				return fmt.Errorf("transition[%d] %q->%q on %q: %w", i, t.From, t.To, t.Event, err)
			}
		}
		return nil
	}
}

// WithObserver registers a callback invoked after every state change.
func WithObserver(o Observer) Option {
	return func(m *Machine) error {
		if o != nil {
			m.observers = append(m.observers, o)
		}
		return nil
	}
}

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard(guard Guard) TransitionOption {
	return func(t *Transition) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

// WithOnEnter adds an enter hook to a transition. Nil hooks are ignored.
func WithOnEnter(hook Hook) TransitionOption {
	return func(t *Transition) {
		if hook != nil {
			t.OnEnter = append(t.OnEnter, hook)
		}
	}
}
