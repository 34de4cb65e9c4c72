package schema

import (
	"fmt"
	"math"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Common holds the parameters accepted by every built-in leaf. Custom
// parameter structs can embed it with `mapstructure:",squash"`.
type Common struct {
	// Message overrides the message id recorded on failure.
	Message string `mapstructure:"message"`
}

// Options converts the parameters into validator options.
func (c Common) Options() []validator.Option {
	if c.Message == "" {
		return nil
	}
	return []validator.Option{validator.WithMessageID(c.Message)}
}

type lengthParams struct {
	Common `mapstructure:",squash"`
	Min    int `mapstructure:"min"`
	Max    int `mapstructure:"max"`
}

type patternParams struct {
	Common `mapstructure:",squash"`
	Expr   string `mapstructure:"expr"`
}

type urlParams struct {
	Common  `mapstructure:",squash"`
	Schemes []string `mapstructure:"schemes"`
}

type rangeParams struct {
	Common `mapstructure:",squash"`
	Min    *float64 `mapstructure:"min"`
	Max    *float64 `mapstructure:"max"`
}

type inListParams struct {
	Common     `mapstructure:",squash"`
	Values     []string `mapstructure:"values"`
	IgnoreCase bool     `mapstructure:"ignore_case"`
}

type equalsFieldParams struct {
	Common `mapstructure:",squash"`
	Field  string `mapstructure:"field"`
}

// leaf adapts a constructor taking a decoded params struct into a Factory.
func leaf[P any](build func(P) validator.Validator) Factory {
	return func(params map[string]any) (validator.Validator, error) {
		var p P
		if err := DecodeParams(params, &p); err != nil {
			return nil, err
		}
		return build(p), nil
	}
}

func builtinLeaves() map[string]Factory {
	return map[string]Factory{
		"required": leaf(func(p Common) validator.Validator {
			return validator.NewRequired(p.Options()...)
		}),
		"length": leaf(func(p lengthParams) validator.Validator {
			return validator.NewLength(p.Min, p.Max, p.Options()...)
		}),
		"pattern": func(params map[string]any) (validator.Validator, error) {
			var p patternParams
			if err := DecodeParams(params, &p); err != nil {
				return nil, err
			}
			if p.Expr == "" {
				return nil, fmt.Errorf("pattern: expr is required")
			}
			return validator.NewPattern(p.Expr, p.Options()...), nil
		},
		"email": leaf(func(p Common) validator.Validator {
			return validator.NewEmail(p.Options()...)
		}),
		"url": leaf(func(p urlParams) validator.Validator {
			return validator.NewURL(p.Schemes, p.Options()...)
		}),
		"range": leaf(func(p rangeParams) validator.Validator {
			lo, hi := -math.MaxFloat64, math.MaxFloat64
			if p.Min != nil {
				lo = *p.Min
			}
			if p.Max != nil {
				hi = *p.Max
			}
			return validator.NewRange(lo, hi, p.Options()...)
		}),
		"integer": leaf(func(p Common) validator.Validator {
			return validator.NewInteger(p.Options()...)
		}),
		"inList": leaf(func(p inListParams) validator.Validator {
			if p.IgnoreCase {
				return validator.NewInListFold(p.Values, p.Options()...)
			}
			return validator.NewInList(p.Values, p.Options()...)
		}),
		"equalsField": leaf(func(p equalsFieldParams) validator.Validator {
			return validator.NewEqualsField(p.Field, p.Options()...)
		}),
	}
}
