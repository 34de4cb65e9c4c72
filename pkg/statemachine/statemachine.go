package statemachine

// State names a state of the machine.
type State string

// Event names an event that may trigger a transition.
type Event string

func (s State) String() string { return string(s) }

func (e Event) String() string { return string(e) }

// Guard decides whether a transition may be taken for the given payload.
type Guard func(from State, event Event, data any) bool

// Hook runs before the machine enters the target state. An error aborts the
// transition and leaves the current state unchanged.
type Hook func(from, to State, event Event, data any) error

// Observer is notified after every completed transition, including resets.
type Observer func(from, to State, event Event)

// Transition is a state change triggered by an event.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	OnEnter []Hook
}

func (t Transition) allowed(event Event, data any) bool {
	for _, guard := range t.Guards {
		if guard != nil && !guard(t.From, event, data) {
			return false
		}
	}
	return true
}
