package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedChoose is returned when a Choose is built with no branches
	// or with an Otherwise anywhere but the last position.
	ErrMalformedChoose = errors.New("malformed choose")

	// ErrNilCondition is returned by Init of a gate whose condition is nil.
	ErrNilCondition = errors.New("condition is nil")

	// ErrNilValidator is returned by Init of a combinator holding a nil child.
	ErrNilValidator = errors.New("validator is nil")
)

// InitError reports a validator that failed to initialise for a field.
// It is a configuration-time fault.
type InitError struct {
	ValidatorID string
	Field       string
	Err         error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init validator %q for field %q: %v", e.ValidatorID, e.Field, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

func IsInitError(err error) bool {
	var e *InitError
	return errors.As(err, &e)
}
