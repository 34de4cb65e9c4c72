package form

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedKey      = errors.New("malformed field key")
	ErrUnknownGroup      = errors.New("unknown group")
	ErrDuplicateInstance = errors.New("duplicate group instance")
	ErrFieldNotFound     = errors.New("field not found")
	ErrDuplicateField    = errors.New("duplicate field")
	ErrDuplicateGroup    = errors.New("duplicate group")
	ErrInvalidAbbrev     = errors.New("invalid abbreviation")
	ErrInvalidKeyFormat  = errors.New("invalid key format")

	// ErrCustomErrorNotFound matches every *CustomErrorNotFoundError.
	ErrCustomErrorNotFound = errors.New("custom error not found")
)

// CustomErrorNotFoundError reports a custom error message id that neither the
// form configuration nor the message provider can resolve. It is a
// configuration bug and is returned to the caller as is.
type CustomErrorNotFoundError struct {
	ID string
}

func (e *CustomErrorNotFoundError) Error() string {
	return fmt.Sprintf("custom error %q not found", e.ID)
}

func (e *CustomErrorNotFoundError) Is(target error) bool {
	return target == ErrCustomErrorNotFound
}

func IsCustomErrorNotFound(err error) bool {
	var e *CustomErrorNotFoundError
	return errors.As(err, &e)
}
