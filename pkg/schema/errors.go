package schema

import "errors"

var (
	ErrUnknownValidator = errors.New("unknown validator type")
	ErrUnknownCondition = errors.New("unknown condition")
	ErrInvalidSchema    = errors.New("invalid form schema")
	ErrNoSchemas        = errors.New("no form schemas found")
	ErrDuplicateForm    = errors.New("duplicate form name")
)
