// Package statemachine provides a small finite state machine for lifecycles
// owned by a single goroutine.
//
// States and events are strings. A transition connects a source state to a
// target state on an event and may carry guards, which must all pass for the
// transition to be taken, and enter hooks, which run before the state
// changes and abort the transition on error. Several transitions may share a
// source state and event; the first one whose guards pass wins.
//
// A Machine does no locking. Share it between goroutines only with external
// synchronisation.
//
//	m := statemachine.MustNew("unvalidated",
//		statemachine.WithTransition("unvalidated", "validated", "validate"),
//		statemachine.WithTransition("validated", "unvalidated", "reset"),
//	)
//	if err := m.Fire("validate", nil); err != nil {
//		return err
//	}
//
// Fire returns *ErrNoTransitionAvailable when the current state has no
// transition for the event and *ErrTransitionRejected when guards block every
// candidate. Use IsNoTransitionAvailableError and IsTransitionRejectedError
// to test for them.
package statemachine
