package form

import "github.com/dmitrymomot/formkit/pkg/statemachine"

// Validation lifecycle of groups and forms.
const (
	StateUnvalidated statemachine.State = "unvalidated"
	StateValidated   statemachine.State = "validated"

	EventValidate statemachine.Event = "validate"
	EventReset    statemachine.Event = "reset"
)

func newLifecycle(observer statemachine.Observer) *statemachine.Machine {
	return statemachine.MustNew(StateUnvalidated,
		statemachine.WithTransition(StateUnvalidated, StateValidated, EventValidate),
		statemachine.WithTransition(StateValidated, StateValidated, EventValidate),
		statemachine.WithTransition(StateValidated, StateUnvalidated, EventReset),
		statemachine.WithTransition(StateUnvalidated, StateUnvalidated, EventReset),
		statemachine.WithObserver(observer),
	)
}

// fire drives a lifecycle built by newLifecycle, where every event is
// accepted in every state.
func fire(m *statemachine.Machine, event statemachine.Event) {
	if err := m.Fire(event, nil); err != nil {
		panic(err)
	}
}
